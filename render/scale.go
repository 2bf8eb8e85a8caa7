package render

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// valueScale maps data values onto [0, 1] of an axis.
type valueScale struct {
	log bool

	// For log scales, min and max are powers of ten.
	min, max float64

	// Linear tick spacing.
	step float64
}

// newScale fits a scale to values. Linear scales start at zero (or the most
// negative value) and end at a round number; log scales span whole decades
// of the positive values.
func newScale(values []float64, logScale bool) valueScale {
	if logScale {
		positive := make([]float64, 0, len(values))
		for _, v := range values {
			if v > 0 {
				positive = append(positive, v)
			}
		}
		if len(positive) == 0 {
			return valueScale{log: true, min: 1, max: 10}
		}

		lo := math.Floor(math.Log10(floats.Min(positive)))
		hi := math.Ceil(math.Log10(floats.Max(positive)))
		if hi <= lo {
			hi = lo + 1
		}
		return valueScale{log: true, min: math.Pow(10, lo), max: math.Pow(10, hi)}
	}

	lo, hi := 0.0, 0.0
	if len(values) > 0 {
		lo = math.Min(0, floats.Min(values))
		hi = math.Max(0, floats.Max(values))
	}
	if hi <= lo {
		hi = lo + 1
	}

	step := niceStep((hi - lo) / 5)
	return valueScale{
		min:  math.Floor(lo/step) * step,
		max:  math.Ceil(hi/step) * step,
		step: step,
	}
}

// spanScale fits a linear scale exactly to the range of values, for color
// mapping where padding to round numbers would waste part of the map.
func spanScale(values []float64, logScale bool) valueScale {
	if logScale {
		s := newScale(values, true)
		positive := make([]float64, 0, len(values))
		for _, v := range values {
			if v > 0 {
				positive = append(positive, v)
			}
		}
		if len(positive) > 1 && floats.Max(positive) > floats.Min(positive) {
			s.min, s.max = floats.Min(positive), floats.Max(positive)
		}
		return s
	}

	if len(values) == 0 {
		return valueScale{min: 0, max: 1}
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if hi <= lo {
		return valueScale{min: lo, max: lo + 1}
	}
	return valueScale{min: lo, max: hi}
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*magnitude {
			return m * magnitude
		}
	}
	return 10 * magnitude
}

// fraction places v on the scale, clamped to [0, 1]. On a log scale values at
// or below zero land on the baseline.
func (s valueScale) fraction(v float64) float64 {
	var f float64
	if s.log {
		if v <= 0 {
			return 0
		}
		f = (math.Log10(v) - math.Log10(s.min)) / (math.Log10(s.max) - math.Log10(s.min))
	} else {
		f = (v - s.min) / (s.max - s.min)
	}

	if math.IsNaN(f) {
		return 0
	}
	return math.Max(0, math.Min(1, f))
}

func (s valueScale) ticks() []float64 {
	var out []float64
	if s.log {
		for v := s.min; v <= s.max*1.0001; v *= 10 {
			out = append(out, v)
		}
		return out
	}

	step := s.step
	if step <= 0 {
		step = niceStep((s.max - s.min) / 5)
	}
	first := math.Round(s.min / step)
	for i := 0.0; (first+i)*step <= s.max+step/1000; i++ {
		out = append(out, (first+i)*step)
	}
	return out
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
