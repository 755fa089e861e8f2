package survey

import "sync/atomic"

// Participant is a community member identified by a numeric chat id.
type Participant struct {
	ID   int64
	Name string

	// voted is scoped to the survey that is currently open and is cleared
	// when that survey closes.
	voted atomic.Bool
}

// NewParticipant returns a participant that has not voted.
func NewParticipant(id int64, name string) *Participant {
	return &Participant{ID: id, Name: name}
}

// HasVoted reports whether the participant completed the open survey.
func (p *Participant) HasVoted() bool {
	return p.voted.Load()
}

func (p *Participant) markVoted() { p.voted.Store(true) }
func (p *Participant) resetVote() { p.voted.Store(false) }
