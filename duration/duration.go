// Package duration converts between "M:SS" labels and second counts.
package duration

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatError reports a label that is not of the form "M:SS".
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("duration %q: %s", e.Input, e.Reason)
}

// Parse converts a "M:SS" label into seconds.
// Both segments must be unsigned base-10 integers and exactly one separator must be present.
func Parse(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &FormatError{Input: s, Reason: fmt.Sprintf("expected one separator, found %d", len(parts)-1)}
	}

	minutes, err := segment(parts[0])
	if err != nil {
		return 0, &FormatError{Input: s, Reason: "minutes: " + err.Error()}
	}

	seconds, err := segment(parts[1])
	if err != nil {
		return 0, &FormatError{Input: s, Reason: "seconds: " + err.Error()}
	}

	if minutes > (math.MaxInt-seconds)/60 {
		return 0, &FormatError{Input: s, Reason: "value out of range"}
	}

	return minutes*60 + seconds, nil
}

func segment(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty segment")
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a base-10 integer", s)
		}
	}

	return strconv.Atoi(s)
}

// Format renders seconds as "M:SS".
// NaN, infinite and negative input renders as "0:00".
func Format(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}
	minutes := math.Floor(seconds / 60)
	secs := math.Floor(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", int(minutes), int(secs))
}
