package types

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in-progress"
	RequestStatusHelped     RequestStatus = "helped"
)

// Rank orders statuses for NGO-facing listings: open work first, finished
// work last. Ties between equal statuses keep insertion order.
func (s RequestStatus) Rank() int {
	switch s {
	case RequestStatusPending:
		return 0
	case RequestStatusInProgress:
		return 1
	case RequestStatusHelped:
		return 2
	}
	return 3
}

// AidRequest is a submitted need-for-help record. JSON tags match the
// persisted uploads.json layout. Timestamp is set once at submission and
// never changes; HelpedBy is non-empty exactly when the request has left
// the pending state.
type AidRequest struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl"`
	Timestamp   time.Time     `json:"timestamp"`
	Status      RequestStatus `json:"status"`
	HelpedBy    string        `json:"helpedBy"`
}
