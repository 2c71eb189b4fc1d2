// Package scoring turns a complete answer set into per-dimension totals and a
// winning dimension. Everything here is pure: no I/O, no shared state.
package scoring

import (
	"careertest/internal/model"
	"math"
)

// Normalize expands an authored score mapping into a full score vector.
// Dimensions the author omitted, or gave a non-numeric value, contribute 0.
// Keys that are not dimensions are ignored. Fractional numbers are truncated
// toward zero. Non-finite numbers and numbers outside the int range read as 0.
func Normalize(raw map[string]any) model.Scores {
	var s model.Scores
	for i, d := range model.Dimensions {
		v, ok := raw[string(d)]
		if !ok {
			continue
		}
		s[i] = toInt(v)
	}
	return s
}

// NormalizeQuestion builds a bank question from its authored form.
func NormalizeQuestion(raw model.RawQuestion) model.Question {
	q := model.Question{
		ID:      raw.ID,
		Title:   raw.Title,
		Choices: make([]model.Choice, len(raw.Choices)),
	}
	for i, c := range raw.Choices {
		q.Choices[i] = model.Choice{Label: c.Label, Score: Normalize(c.Score)}
	}
	return q
}

// NormalizeBank normalizes every question once, preserving bank order.
func NormalizeBank(raw []model.RawQuestion) []model.Question {
	bank := make([]model.Question, len(raw))
	for i, q := range raw {
		bank[i] = NormalizeQuestion(q)
	}
	return bank
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0
		}
		return int(n)
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return uintToInt(uint64(n))
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	default:
		return 0
	}
}

func uintToInt(u uint64) int {
	if u > math.MaxInt {
		return 0
	}
	return int(u)
}

// float64(math.MaxInt) rounds up to a power of two that int cannot hold.
func floatToInt(f float64) int {
	if math.IsNaN(f) || f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0
	}
	return int(f)
}
