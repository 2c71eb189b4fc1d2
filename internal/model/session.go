package model

// SessionState is what the questionnaire screen needs to render the current step.
type SessionState struct {
	RespondentID string    `json:"respondentId"`
	Index        int       `json:"index"`
	Total        int       `json:"total"`
	Question     *Question `json:"question"`
	Selected     int       `json:"selected"`
	Answers      AnswerSet `json:"answers"`
	Progress     int       `json:"progress"` // percent of answered slots
	CanGoPrev    bool      `json:"canGoPrev"`
	CanGoNext    bool      `json:"canGoNext"`
	IsLast       bool      `json:"isLast"`
	Finished     bool      `json:"finished,omitempty"`
}
