package model

import "time"

// ConversationTurn is one question/answer exchange recorded against a
// document. Turns are stored in the order they happened.
type ConversationTurn struct {
	DocumentID    string    `json:"document_id"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Justification string    `json:"justification"`
	CreatedAt     time.Time `json:"created_at"`
}
