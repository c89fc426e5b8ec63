package dto

import "time"

// ReindexRequestMessage is the bus payload asking for a whole-corpus
// knowledge-base rebuild.
type ReindexRequestMessage struct {
	RequestedAt time.Time `json:"requested_at"`
}
