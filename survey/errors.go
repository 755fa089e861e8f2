package survey

import "errors"

// Validation errors returned by Compile and Community.CheckCreate.
var (
	ErrTooFewQuestions     = errors.New("survey must contain at least 1 question")
	ErrTooManyQuestions    = errors.New("survey must contain at most 3 questions")
	ErrBadOptionCount      = errors.New("each question must have 2-4 options")
	ErrAlreadyActive       = errors.New("a survey is already active in this community")
	ErrInsufficientMembers = errors.New("not enough community members to open a survey")
)

// Lifecycle errors.
var (
	ErrNotDraft       = errors.New("survey is not a draft")
	ErrNoParticipants = errors.New("survey needs at least one participant")
	ErrSurveyClosed   = errors.New("survey is not open")
	ErrAlreadyVoted   = errors.New("participant already voted in this survey")
	ErrNotParticipant = errors.New("participant is not part of this survey")
	ErrAnswerCount    = errors.New("answer count does not match question count")
	ErrAnswerRange    = errors.New("answer index out of range")
)
