package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/charlerive/pricing/report"
)

// Output writes command results to the command's stdout.
type Output struct {
	writer   io.Writer
	jsonMode bool
}

func NewOutput(cmd *cobra.Command) *Output {
	jsonMode, _ := cmd.Flags().GetBool("json")
	return &Output{writer: cmd.OutOrStdout(), jsonMode: jsonMode}
}

func (o *Output) IsJSON() bool {
	return o.jsonMode
}

func (o *Output) JSON(data any) error {
	return report.WriteJSON(o.writer, data)
}

func (o *Output) Printf(format string, args ...any) {
	fmt.Fprintf(o.writer, format, args...)
}

// Report renders r as JSON or banner text.
func (o *Output) Report(r report.Report) error {
	if o.jsonMode {
		return report.WriteJSON(o.writer, r)
	}
	return report.WriteText(o.writer, r)
}
