package content

import (
	"careertest/internal/model"
	"careertest/internal/scoring"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilesYAML = `
profiles:
  - {dimension: A, title: a, oneLiner: a, strengths: [s], cautions: [c], questions: [q1, q2, q3], actions: [a1, a2, a3]}
  - {dimension: B, title: b, oneLiner: b, strengths: [s], cautions: [c], questions: [q1, q2, q3], actions: [a1, a2, a3]}
  - {dimension: C, title: c, oneLiner: c, strengths: [s], cautions: [c], questions: [q1, q2, q3], actions: [a1, a2, a3]}
  - {dimension: D, title: d, oneLiner: d, strengths: [s], cautions: [c], questions: [q1, q2, q3], actions: [a1, a2, a3]}
  - {dimension: E, title: e, oneLiner: e, strengths: [s], cautions: [c], questions: [q1, q2, q3], actions: [a1, a2, a3]}
  - {dimension: F, title: f, oneLiner: f, strengths: [s], cautions: [c], questions: [q1, q2, q3], actions: [a1, a2, a3]}
`

func TestEmbedded(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	assert.Equal(t, "career-growth-v1", c.Version)
	require.Len(t, c.Questions, 12)
	for _, q := range c.Questions {
		assert.NotEmpty(t, q.ID)
		assert.Len(t, q.Choices, 4, "question %s", q.ID)
	}

	profiles := c.Profiles()
	require.Len(t, profiles, len(model.Dimensions))
	for i, d := range model.Dimensions {
		assert.Equal(t, d, profiles[i].Dimension)
		p, ok := c.Profile(d)
		require.True(t, ok)
		assert.NotEmpty(t, p.Title)
	}
}

func TestBuildNormalizesScores(t *testing.T) {
	data := []byte(`
version: test
questions:
  - id: only
    title: Pick one
    choices:
      - label: first
        score: {A: 3, Z: 9}
      - label: second
        score: {B: 5}
      - label: third
` + profilesYAML)

	b, err := Decode(data)
	require.NoError(t, err)
	c, err := Build(b)
	require.NoError(t, err)

	want := []model.Question{{
		ID:    "only",
		Title: "Pick one",
		Choices: []model.Choice{
			{Label: "first", Score: model.Scores{3, 0, 0, 0, 0, 0}},
			{Label: "second", Score: model.Scores{0, 5, 0, 0, 0, 0}},
			{Label: "third", Score: model.Scores{}},
		},
	}}
	if diff := cmp.Diff(want, c.Questions); diff != "" {
		t.Errorf("normalized bank mismatch (-want +got):\n%s", diff)
	}

	res, err := scoring.Aggregate(c.Questions, model.AnswerSet{1})
	require.NoError(t, err)
	assert.Equal(t, model.DimensionB, res.Winner)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name:    "empty bank",
			yaml:    "questions: []\n" + profilesYAML,
			wantMsg: "question bank is empty",
		},
		{
			name: "duplicate question id",
			yaml: `questions:
  - {id: q, title: t, choices: [{label: x}, {label: y}]}
  - {id: q, title: t, choices: [{label: x}, {label: y}]}
` + profilesYAML,
			wantMsg: `duplicate id "q"`,
		},
		{
			name: "too few choices",
			yaml: `questions:
  - {id: q, title: t, choices: [{label: x}]}
` + profilesYAML,
			wantMsg: `"min"`,
		},
		{
			name: "missing profile",
			yaml: `questions:
  - {id: q, title: t, choices: [{label: x}, {label: y}]}
profiles:
  - {dimension: A, title: a, oneLiner: a, strengths: [s], cautions: [c], questions: [q1, q2, q3], actions: [a1, a2, a3]}
`,
			wantMsg: "missing profile for dimension F",
		},
		{
			name: "unknown dimension",
			yaml: `questions:
  - {id: q, title: t, choices: [{label: x}, {label: y}]}
` + profilesYAML + `
  - {dimension: G, title: g, oneLiner: g, strengths: [s], cautions: [c], questions: [q1, q2, q3], actions: [a1, a2, a3]}
`,
			wantMsg: `unknown dimension "G"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Decode([]byte(tc.yaml))
			require.NoError(t, err)

			_, err = Build(b)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tc.wantMsg)
		})
	}
}

func TestValidateNil(t *testing.T) {
	err := Validate(nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"bundle is nil"}, verr.Errors)
}

func TestDecodeRejectsMalformedYAML(t *testing.T) {
	_, err := Decode([]byte("questions: [unterminated"))
	assert.Error(t, err)
}
