// Package survey holds the community context, the survey lifecycle and its
// tallies, the compiler that validates new surveys and the result ranking.
package survey

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

// State is a survey lifecycle state.
type State string

const (
	StateDraft  State = "draft"
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// Reason records which trigger closed a survey.
type Reason string

const (
	ReasonQuorum  Reason = "quorum"
	ReasonTimeout Reason = "timeout"
)

const (
	eventOpen  = "open"
	eventClose = "close"
)

// Survey is a question set offered to a fixed snapshot of community members.
type Survey struct {
	ID        string
	Creator   *Participant
	Questions []*Question
	CreatedAt time.Time

	community *Community
	machine   *fsm.FSM
	done      chan struct{}

	mu        sync.Mutex
	openedAt  time.Time
	closedAt  time.Time
	duration  time.Duration
	order     []*Participant
	snapshot  map[int64]*Participant
	submitted map[int64][]int
	reason    Reason
	result    *Result
	onClose   []func(*Survey)
}

func newSurvey(id string, drafts []Draft, creator *Participant, c *Community) *Survey {
	s := &Survey{
		ID:        id,
		Creator:   creator,
		CreatedAt: time.Now(),
		community: c,
		done:      make(chan struct{}),
		submitted: make(map[int64][]int),
	}
	for _, d := range drafts {
		s.Questions = append(s.Questions, newQuestion(d.Text, d.Options))
	}
	s.machine = fsm.NewFSM(
		string(StateDraft),
		fsm.Events{
			{Name: eventOpen, Src: []string{string(StateDraft)}, Dst: string(StateOpen)},
			{Name: eventClose, Src: []string{string(StateOpen)}, Dst: string(StateClosed)},
		},
		fsm.Callbacks{},
	)
	return s
}

// State returns the current lifecycle state.
func (s *Survey) State() State {
	return State(s.machine.Current())
}

// Done is closed once the survey reaches StateClosed.
func (s *Survey) Done() <-chan struct{} {
	return s.done
}

// Open distributes the survey to members: it freezes the participant
// snapshot and starts the answer window. The requested window is clamped to
// the community settings and the effective window is returned. Members who
// join later are not part of this survey.
func (s *Survey) Open(members []*Participant, requested time.Duration) (time.Duration, error) {
	if len(members) == 0 {
		return 0, ErrNoParticipants
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.machine.Event(context.Background(), eventOpen); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotDraft, s.machine.Current())
	}

	s.order = make([]*Participant, 0, len(members))
	s.snapshot = make(map[int64]*Participant, len(members))
	for _, p := range members {
		if _, dup := s.snapshot[p.ID]; dup {
			continue
		}
		s.snapshot[p.ID] = p
		s.order = append(s.order, p)
	}
	s.openedAt = time.Now()
	s.duration = s.community.settings.Clamp(requested)
	return s.duration, nil
}

// Participants returns the snapshot taken when the survey opened.
func (s *Survey) Participants() []*Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Participant, len(s.order))
	copy(out, s.order)
	return out
}

// Participant returns the snapshot member with the given id.
func (s *Survey) Participant(id int64) (*Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.snapshot[id]
	return p, ok
}

// HasSubmitted reports whether id already completed the survey.
func (s *Survey) HasSubmitted(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.submitted[id]
	return ok
}

// SubmittedCount returns the number of completed submissions.
func (s *Survey) SubmittedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submitted)
}

// Deadline returns when the answer window ends; zero before Open.
func (s *Survey) Deadline() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openedAt.IsZero() {
		return time.Time{}
	}
	return s.openedAt.Add(s.duration)
}

// Window returns the effective answer window set by Open.
func (s *Survey) Window() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// CollectResponse records a participant's complete answer set, one option
// index per question. Only one call per participant can succeed. When the
// response completes the snapshot the survey closes by quorum and closed is
// true.
func (s *Survey) CollectResponse(p *Participant, answers []int) (closed bool, err error) {
	s.mu.Lock()
	if s.State() != StateOpen {
		s.mu.Unlock()
		return false, ErrSurveyClosed
	}
	if _, ok := s.snapshot[p.ID]; !ok {
		s.mu.Unlock()
		return false, ErrNotParticipant
	}
	if _, dup := s.submitted[p.ID]; dup {
		s.mu.Unlock()
		return false, ErrAlreadyVoted
	}
	if len(answers) != len(s.Questions) {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: got %d, want %d", ErrAnswerCount, len(answers), len(s.Questions))
	}
	for i, a := range answers {
		if a < 0 || a >= len(s.Questions[i].Options) {
			s.mu.Unlock()
			return false, fmt.Errorf("%w: question %d option %d", ErrAnswerRange, i, a)
		}
	}

	for i, a := range answers {
		s.Questions[i].vote(a)
	}
	s.submitted[p.ID] = append([]int(nil), answers...)
	p.markVoted()
	quorum := len(s.submitted) == len(s.snapshot)
	s.mu.Unlock()

	if quorum {
		return s.Close(ReasonQuorum), nil
	}
	return false, nil
}

// OnClose registers fn to run once after the survey closes. If the survey is
// already closed fn runs immediately.
func (s *Survey) OnClose(fn func(*Survey)) {
	s.mu.Lock()
	if s.State() != StateClosed {
		s.onClose = append(s.onClose, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	fn(s)
}

// Close moves an open survey to StateClosed. Exactly one caller wins and
// gets true; every later call, from either trigger, is a no-op. The winner
// freezes the tallies, clears the participants' voted flags, frees the
// community slot and runs the OnClose hooks.
func (s *Survey) Close(reason Reason) bool {
	s.mu.Lock()
	if err := s.machine.Event(context.Background(), eventClose); err != nil {
		s.mu.Unlock()
		return false
	}
	s.reason = reason
	s.closedAt = time.Now()
	s.result = s.finalizeLocked()
	hooks := s.onClose
	s.onClose = nil
	participants := s.order
	close(s.done)
	s.mu.Unlock()

	for _, p := range participants {
		p.resetVote()
	}
	s.community.release(s)
	for _, fn := range hooks {
		fn(s)
	}
	return true
}

// Abandon frees the community slot held by a survey that never opened. It
// reports whether the slot was freed; an opened survey keeps it.
func (s *Survey) Abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State() != StateDraft {
		return false
	}
	return s.community.release(s)
}

// Result returns the frozen results once the survey is closed.
func (s *Survey) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

func (s *Survey) finalizeLocked() *Result {
	r := &Result{
		SurveyID:     s.ID,
		Reason:       s.reason,
		Respondents:  len(s.submitted),
		Participants: len(s.snapshot),
		OpenedAt:     s.openedAt,
		ClosedAt:     s.closedAt,
	}
	if s.Creator != nil {
		r.CreatorID = s.Creator.ID
		r.CreatorName = s.Creator.Name
	}
	for _, q := range s.Questions {
		tallies := q.tallies()
		total := 0
		for _, t := range tallies {
			total += t.Votes
		}
		r.Questions = append(r.Questions, QuestionResult{
			Text:   q.Text,
			Total:  total,
			Ranked: Rank(tallies),
		})
	}
	return r
}
