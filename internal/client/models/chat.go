package models

// ChatMessage is one message in the conversation attached to a match.
type ChatMessage struct {
	ID        int64  `json:"id"`
	Sender    *User  `json:"sender,omitempty"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp,omitempty"`
	IsRead    bool   `json:"is_read,omitempty"`
}
