package domain

import "time"

// Comment is a free-text note attached to a request. It never
// interacts with the review state machine.
type Comment struct {
	ID   string
	Who  string
	When time.Time
	Text string
}

func (c Comment) String() string {
	return c.ID + ": " + c.Text
}
