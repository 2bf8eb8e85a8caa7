package assaytable

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind says how a cell's value should be read.
type Kind uint8

const (
	// Measured cells hold a reading.
	Measured Kind = iota

	// BelowLimit cells were reported as "< limit".
	BelowLimit

	// AboveLimit cells were reported as "> limit" (saturated).
	AboveLimit
)

func (k Kind) String() string {
	switch k {
	case Measured:
		return "measured"
	case BelowLimit:
		return "below limit"
	case AboveLimit:
		return "above limit"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Legacy float encodings of censored cells, as used by the spreadsheets these
// tables come from.
const (
	SentinelBelow = -1.0
	SentinelAbove = -2.0
)

// Cell is one entry of a Table. For censored cells, Value is the detection
// limit that was reported.
type Cell struct {
	Kind  Kind
	Value float64
}

// Measure returns a measured cell.
func Measure(v float64) Cell { return Cell{Kind: Measured, Value: v} }

// Below returns a cell known only to be below limit.
func Below(limit float64) Cell { return Cell{Kind: BelowLimit, Value: limit} }

// Above returns a cell known only to be above limit.
func Above(limit float64) Cell { return Cell{Kind: AboveLimit, Value: limit} }

// Censored reports whether the cell is below or above a detection limit.
func (c Cell) Censored() bool { return c.Kind != Measured }

// Positive reports whether the cell carries real signal.
func (c Cell) Positive() bool { return c.Kind == Measured && c.Value > 0 }

// Sentinel returns the legacy float encoding: the value for measured cells,
// SentinelBelow or SentinelAbove for censored ones.
func (c Cell) Sentinel() float64 {
	switch c.Kind {
	case BelowLimit:
		return SentinelBelow
	case AboveLimit:
		return SentinelAbove
	}
	return c.Value
}

// String renders the cell the way it would be written in an input file.
func (c Cell) String() string {
	v := strconv.FormatFloat(c.Value, 'g', -1, 64)
	switch c.Kind {
	case BelowLimit:
		return "<" + v
	case AboveLimit:
		return ">" + v
	}
	return v
}

var (
	belowPattern = regexp.MustCompile(`^<\s?(\d+(?:\.\d*)?|\.\d+)$`)
	abovePattern = regexp.MustCompile(`^>\s?(\d+(?:\.\d*)?|\.\d+)$`)
	plainNumber  = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// Tokens (compared case-insensitively) that mean "no value". Such cells read
// as a measured zero.
var missingTokens = map[string]struct{}{
	"":     {},
	"nd":   {},
	"n.d.": {},
	"na":   {},
	"n/a":  {},
	"#n/a": {},
	"nan":  {},
	"null": {},
}

// ParseCell interprets one cell of an input table.
func ParseCell(text string) (Cell, error) {
	s := strings.TrimSpace(text)

	if _, missing := missingTokens[strings.ToLower(s)]; missing {
		return Measure(0), nil
	}

	if m := belowPattern.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Cell{}, err
		}
		return Below(v), nil
	}

	if m := abovePattern.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Cell{}, err
		}
		return Above(v), nil
	}

	if !plainNumber.MatchString(s) {
		return Cell{}, fmt.Errorf("%q is not a number, a censored value or a missing-value token", text)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return Cell{}, fmt.Errorf("%q is not a finite number", text)
	}

	return Measure(v), nil
}
