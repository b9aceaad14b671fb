// Package option holds the contract, payoff and Greek plumbing shared by
// every pricing model.
package option

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the direction of a vanilla European option.
type Kind int

const (
	Call Kind = iota
	Put
)

// Kinds lists both directions in report order.
var Kinds = []Kind{Call, Put}

func (k Kind) String() string {
	switch k {
	case Call:
		return "Call"
	case Put:
		return "Put"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "call"/"c" and "put"/"p" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, fmt.Errorf("option: unknown kind %q", s)
}

// Payoff is the exercise value at terminal price spot.
func (k Kind) Payoff(spot, strike float64) float64 {
	switch k {
	case Call:
		return math.Max(spot-strike, 0)
	case Put:
		return math.Max(strike-spot, 0)
	}
	panic(fmt.Sprintf("option: unknown kind %d", int(k)))
}
