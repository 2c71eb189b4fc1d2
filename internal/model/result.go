package model

// Result is the outcome of scoring a complete AnswerSet.
type Result struct {
	Totals Scores    `json:"totals"`
	Winner Dimension `json:"winner"`
}

// ResultView pairs a Result with the profile of its winning dimension.
type ResultView struct {
	Result
	Profile *Profile `json:"profile"`
}
