package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "warn"
	log := WithModel(NewWithWriter(cfg, &buf), "binomial")

	log.Info().Msg("lattice ready")
	log.Warn().Msg("probability outside unit interval")

	out := buf.String()
	if strings.Contains(out, "lattice ready") {
		t.Errorf("info event written at warn level: %q", out)
	}
	if !strings.Contains(out, "probability outside unit interval") || !strings.Contains(out, "binomial") {
		t.Errorf("warn event missing or untagged: %q", out)
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pricer.log")
	cfg := Config{Level: "debug", File: true, FilePath: path, MaxSize: 1}
	log := NewWithWriter(cfg, nil)
	log.Debug().Int("steps", 252).Msg("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"steps":252`) {
		t.Errorf("log file = %q", data)
	}
}

func TestNoWritersIsNop(t *testing.T) {
	log := NewWithWriter(Config{Level: "debug"}, nil)
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", log.GetLevel())
	}
}
