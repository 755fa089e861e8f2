package survey

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	MinQuestions = 1
	MaxQuestions = 3
	MinOptions   = 2
	MaxOptions   = 4
)

// Draft is an unvalidated question.
type Draft struct {
	Text    string
	Options []string
}

// ValidateQuestions checks the question and option counts.
func ValidateQuestions(drafts []Draft) error {
	switch {
	case len(drafts) < MinQuestions:
		return fmt.Errorf("%w: got %d", ErrTooFewQuestions, len(drafts))
	case len(drafts) > MaxQuestions:
		return fmt.Errorf("%w: got %d", ErrTooManyQuestions, len(drafts))
	}
	for i, d := range drafts {
		if n := len(d.Options); n < MinOptions || n > MaxOptions {
			return fmt.Errorf("%w: question %d has %d", ErrBadOptionCount, i+1, n)
		}
	}
	return nil
}

// Compile validates drafts and binds a new Draft-state survey to the
// community's active slot. Checks run in order: question count, option
// counts, no active survey, enough members.
func Compile(drafts []Draft, creator *Participant, c *Community) (*Survey, error) {
	if err := ValidateQuestions(drafts); err != nil {
		return nil, err
	}
	return c.bind(func() *Survey {
		return newSurvey(uuid.NewString(), drafts, creator, c)
	})
}
