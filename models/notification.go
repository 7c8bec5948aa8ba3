package models

// EmailPayload is the payload of a queued outgoing email task.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
