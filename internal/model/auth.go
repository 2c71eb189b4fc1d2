package model

import "github.com/golang-jwt/jwt/v5"

// RespondentClaims are JWT claims scoping stored answers to one respondent
type RespondentClaims struct {
	RespondentID string `json:"respondentId"`
	jwt.RegisteredClaims
}

// StartResponse is returned when a respondent starts a questionnaire
type StartResponse struct {
	Token        string        `json:"token"`
	RespondentID string        `json:"respondentId"`
	State        *SessionState `json:"state"`
}
