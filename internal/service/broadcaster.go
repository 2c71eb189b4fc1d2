package service

// Broadcaster pushes session events to a respondent's open sockets (avoids import cycle)
type Broadcaster interface {
	BroadcastToRespondent(respondentID string, msgType string, payload interface{})
}

// Event types pushed to respondents
const (
	EventProgressUpdate = "progress_update"
	EventResultReady    = "result_ready"
)
