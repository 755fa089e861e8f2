package vote

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"surveybot/survey"
)

// Reason explains why a submission was rejected.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonNoActiveSurvey     Reason = "no_active_survey"
	ReasonSurveyIDMismatch   Reason = "survey_id_mismatch"
	ReasonAlreadyVoted       Reason = "already_voted"
	ReasonQuestionOutOfRange Reason = "question_out_of_range"
	ReasonOptionOutOfRange   Reason = "option_out_of_range"
	ReasonMalformedToken     Reason = "malformed_token"
	ReasonNotParticipant     Reason = "not_participant"
	ReasonSurveyClosed       Reason = "survey_closed"
)

// Outcome is the result of one partial submission.
type Outcome struct {
	Accepted bool
	Reason   Reason
	Question int
	Option   int
	// Completed is set when this choice filled the participant's last empty
	// slot and the answer set was accepted by the survey.
	Completed bool
	// Closed is set when that completion closed the survey by quorum.
	Closed bool
}

func rejected(r Reason) Outcome {
	return Outcome{Reason: r}
}

type bufferKey struct {
	participant int64
	surveyID    string
}

const emptySlot = -1

// buffer holds one participant's pending choices for one survey.
type buffer struct {
	mu        sync.Mutex
	slots     []int
	handedOff bool
	discarded bool
}

func newBuffer(questions int) *buffer {
	b := &buffer{slots: make([]int, questions)}
	for i := range b.slots {
		b.slots[i] = emptySlot
	}
	return b
}

// set stores a choice and, the first time every slot is filled, returns a
// copy of the answers with complete set. A buffer that was handed off or
// discarded takes no more choices and reports why.
func (b *buffer) set(question, option int) (answers []int, complete bool, reason Reason) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.discarded:
		return nil, false, ReasonSurveyClosed
	case b.handedOff:
		return nil, false, ReasonAlreadyVoted
	}
	b.slots[question] = option
	for _, v := range b.slots {
		if v == emptySlot {
			return nil, false, ReasonNone
		}
	}
	b.handedOff = true
	return append([]int(nil), b.slots...), true, ReasonNone
}

func (b *buffer) discard() {
	b.mu.Lock()
	b.discarded = true
	b.mu.Unlock()
}

// Collector gathers per-question choices from participants and hands each
// participant's full answer set to the open survey exactly once.
type Collector struct {
	community *survey.Community
	logger    *zap.Logger
	buffers   sync.Map // bufferKey -> *buffer
}

// NewCollector creates a collector for the community's active survey.
func NewCollector(c *survey.Community, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{community: c, logger: logger.Named("collector")}
}

// SubmitToken decodes an answer button token and submits it.
func (c *Collector) SubmitToken(participantID int64, raw string) Outcome {
	tok, ok := ParseToken(raw)
	if !ok {
		return rejected(ReasonMalformedToken)
	}
	return c.SubmitPartial(participantID, tok.SurveyID, tok.Question, tok.Option)
}

// SubmitPartial records one choice. A choice may be changed until the
// participant's last slot is filled; that final choice hands the whole set to
// the survey.
func (c *Collector) SubmitPartial(participantID int64, surveyID string, question, option int) Outcome {
	active := c.community.Active()
	if active == nil || active.State() != survey.StateOpen {
		return rejected(ReasonNoActiveSurvey)
	}
	if active.ID != surveyID {
		return rejected(ReasonSurveyIDMismatch)
	}
	p, ok := active.Participant(participantID)
	if !ok {
		return rejected(ReasonNotParticipant)
	}
	if active.HasSubmitted(participantID) {
		return rejected(ReasonAlreadyVoted)
	}
	if question < 0 || question >= len(active.Questions) {
		return rejected(ReasonQuestionOutOfRange)
	}
	if option < 0 || option >= len(active.Questions[question].Options) {
		return rejected(ReasonOptionOutOfRange)
	}

	key := bufferKey{participant: participantID, surveyID: surveyID}
	buf := c.buffer(key, len(active.Questions))
	if active.State() != survey.StateOpen {
		// The survey closed after the checks above; its buffers are gone.
		c.buffers.Delete(key)
		return rejected(ReasonSurveyClosed)
	}

	answers, complete, reason := buf.set(question, option)
	if reason != ReasonNone {
		return rejected(reason)
	}
	out := Outcome{Accepted: true, Question: question, Option: option}
	if !complete {
		return out
	}

	// The handed-off buffer stays in place until the survey has recorded the
	// answers, so a racing click still finds it and is rejected.
	closed, err := active.CollectResponse(p, answers)
	c.buffers.CompareAndDelete(key, buf)
	if err != nil {
		c.logger.Debug("completed answers not accepted",
			zap.String("survey_id", surveyID),
			zap.Int64("participant", participantID),
			zap.Error(err))
		return rejected(reasonFor(err))
	}
	out.Completed = true
	out.Closed = closed
	return out
}

func (c *Collector) buffer(key bufferKey, questions int) *buffer {
	if v, ok := c.buffers.Load(key); ok {
		return v.(*buffer)
	}
	v, _ := c.buffers.LoadOrStore(key, newBuffer(questions))
	return v.(*buffer)
}

// Discard drops every pending buffer of a survey. A submitter still holding
// one of them is told the survey closed.
func (c *Collector) Discard(surveyID string) {
	c.buffers.Range(func(k, v any) bool {
		if k.(bufferKey).surveyID == surveyID {
			v.(*buffer).discard()
			c.buffers.Delete(k)
		}
		return true
	})
}

// Pending returns the number of buffers still waiting for completion.
func (c *Collector) Pending() int {
	n := 0
	c.buffers.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func reasonFor(err error) Reason {
	switch {
	case errors.Is(err, survey.ErrAlreadyVoted):
		return ReasonAlreadyVoted
	case errors.Is(err, survey.ErrNotParticipant):
		return ReasonNotParticipant
	case errors.Is(err, survey.ErrAnswerRange):
		return ReasonOptionOutOfRange
	default:
		return ReasonSurveyClosed
	}
}
