package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Dimension is one of the six growth-type categories a choice scores against.
type Dimension string

const (
	DimensionA Dimension = "A"
	DimensionB Dimension = "B"
	DimensionC Dimension = "C"
	DimensionD Dimension = "D"
	DimensionE Dimension = "E"
	DimensionF Dimension = "F"
)

// Dimensions lists every dimension in canonical order. Ties between equal
// totals are resolved in favour of the earlier entry.
var Dimensions = [...]Dimension{
	DimensionA,
	DimensionB,
	DimensionC,
	DimensionD,
	DimensionE,
	DimensionF,
}

// Index returns the canonical position of d, or -1 if d is not a known dimension.
func (d Dimension) Index() int {
	for i, k := range Dimensions {
		if k == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d belongs to the closed dimension set.
func (d Dimension) Valid() bool {
	return d.Index() >= 0
}

// ParseDimension converts a key such as "C" into a Dimension.
func ParseDimension(s string) (Dimension, bool) {
	d := Dimension(s)
	return d, d.Valid()
}

// Scores holds one integer per dimension, indexed by canonical order.
// A fixed-size array means a score vector can never be missing an entry.
type Scores [len(Dimensions)]int

// Get returns the value recorded for d. Unknown dimensions read as 0.
func (s Scores) Get(d Dimension) int {
	i := d.Index()
	if i < 0 {
		return 0
	}
	return s[i]
}

// Set records v for d. Unknown dimensions are ignored.
func (s *Scores) Set(d Dimension, v int) {
	if i := d.Index(); i >= 0 {
		s[i] = v
	}
}

// Add accumulates o into s pointwise.
func (s *Scores) Add(o Scores) {
	for i := range s {
		s[i] += o[i]
	}
}

// Map returns the scores keyed by dimension.
func (s Scores) Map() map[Dimension]int {
	m := make(map[Dimension]int, len(s))
	for i, d := range Dimensions {
		m[d] = s[i]
	}
	return m
}

// MarshalJSON encodes the scores as an object whose keys follow canonical order.
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range Dimensions {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(d)))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(s[i]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by dimension. Missing keys read as 0.
func (s *Scores) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = Scores{}
	for k, v := range m {
		d, ok := ParseDimension(k)
		if !ok {
			return fmt.Errorf("unknown dimension %q", k)
		}
		s.Set(d, v)
	}
	return nil
}
