package domain

import "time"

// State is the classified availability of the monitored target.
type State bool

const (
	StateDown State = false
	StateUp   State = true
)

func (s State) String() string {
	if s {
		return "up"
	}
	return "down"
}

// Event is a rendered notification for a single state transition.
type Event struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Up        bool      `json:"up"`
	Target    string    `json:"target"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
