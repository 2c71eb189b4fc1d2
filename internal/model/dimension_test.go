package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionIndex(t *testing.T) {
	for i, d := range Dimensions {
		assert.Equal(t, i, d.Index())
		assert.True(t, d.Valid())
	}
	assert.Equal(t, -1, Dimension("G").Index())
	assert.False(t, Dimension("a").Valid())

	d, ok := ParseDimension("E")
	assert.True(t, ok)
	assert.Equal(t, DimensionE, d)
}

func TestScoresJSON(t *testing.T) {
	s := Scores{3, 0, -1, 0, 12, 0}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"A":3,"B":0,"C":-1,"D":0,"E":12,"F":0}`, string(data))

	var back Scores
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)

	var partial Scores
	require.NoError(t, json.Unmarshal([]byte(`{"D":4}`), &partial))
	assert.Equal(t, 4, partial.Get(DimensionD))
	assert.Equal(t, 0, partial.Get(DimensionA))

	assert.Error(t, json.Unmarshal([]byte(`{"Q":1}`), &partial))
}

func TestScoresSetIgnoresUnknown(t *testing.T) {
	var s Scores
	s.Set("Z", 5)
	s.Set(DimensionC, 2)
	assert.Equal(t, Scores{0, 0, 2, 0, 0, 0}, s)
	assert.Equal(t, 0, s.Get("Z"))
}

func TestAnswerSet(t *testing.T) {
	a := NewAnswerSet(3)
	assert.Equal(t, AnswerSet{Unselected, Unselected, Unselected}, a)
	assert.Equal(t, 0, a.Answered())

	a[1] = 2
	assert.Equal(t, 1, a.Answered())

	c := a.Clone()
	c[0] = 0
	assert.Equal(t, Unselected, a[0])
	assert.Nil(t, AnswerSet(nil).Clone())
}
