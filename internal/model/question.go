package model

// RawChoice is an answer option as authored. Score is loosely shaped: any
// dimension may be omitted and unknown keys may appear.
type RawChoice struct {
	Label string         `json:"label" yaml:"label" bson:"label" validate:"required"`
	Score map[string]any `json:"score" yaml:"score" bson:"score"`
}

// RawQuestion is a question as authored, before score normalization.
type RawQuestion struct {
	ID      string      `json:"id" yaml:"id" bson:"id" validate:"required"`
	Title   string      `json:"title" yaml:"title" bson:"title" validate:"required"`
	Choices []RawChoice `json:"choices" yaml:"choices" bson:"choices" validate:"min=2,dive"`
}

// Choice is a selectable option whose score carries an entry for every dimension.
type Choice struct {
	Label string `json:"label"`
	Score Scores `json:"score"`
}

// Question is a normalized question in the bank.
type Question struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Choices []Choice `json:"choices"`
}
