package survey

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveybot/service"
	core "surveybot/survey"
	"surveybot/vote"
)

func TestFeedback(t *testing.T) {
	tests := []struct {
		name string
		out  vote.Outcome
		want string
	}{
		{
			name: "partial",
			out:  vote.Outcome{Accepted: true, Question: 1, Option: 0},
			want: "✅ Choice 1 recorded for question 2.",
		},
		{
			name: "completed",
			out:  vote.Outcome{Accepted: true, Question: 0, Option: 2, Completed: true},
			want: "✅ Choice 3 recorded for question 1.\n🙏 Thank you! Your answers were received.",
		},
		{
			name: "closed by quorum",
			out:  vote.Outcome{Accepted: true, Completed: true, Closed: true},
			want: "✅ Choice 1 recorded for question 1.\n🙏 Thank you! Your answers were received.\n📊 Everyone has answered, the survey is now closed.",
		},
		{name: "already voted", out: vote.Outcome{Reason: vote.ReasonAlreadyVoted}, want: "ℹ️ You have already answered this survey."},
		{name: "malformed", out: vote.Outcome{Reason: vote.ReasonMalformedToken}, want: "⚠️ Choice invalid."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Feedback(tt.out))
		})
	}
}

func TestFeedbackCoversEveryReason(t *testing.T) {
	reasons := []vote.Reason{
		vote.ReasonNoActiveSurvey, vote.ReasonSurveyIDMismatch, vote.ReasonAlreadyVoted,
		vote.ReasonQuestionOutOfRange, vote.ReasonOptionOutOfRange, vote.ReasonMalformedToken,
		vote.ReasonNotParticipant, vote.ReasonSurveyClosed,
	}
	seen := map[string]vote.Reason{}
	for _, r := range reasons {
		msg := Feedback(vote.Outcome{Reason: r})
		require.NotEmpty(t, msg)
		if r != vote.ReasonMalformedToken {
			_, dup := seen[msg]
			assert.False(t, dup, "reason %s shares its message", r)
		}
		seen[msg] = r
	}
}

func TestCreateErrorMessage(t *testing.T) {
	settings := core.Settings{MinMembers: 3}
	assert.Equal(t, "❌ At least 3 members are needed to open a survey.",
		CreateErrorMessage(fmt.Errorf("wrap: %w", core.ErrInsufficientMembers), settings))
	assert.Contains(t, CreateErrorMessage(core.ErrAlreadyActive, settings), "already an active survey")
	assert.Contains(t, CreateErrorMessage(fmt.Errorf("%w (generator: HTTP_503)", core.ErrTooFewQuestions), settings), "usable questions")
	assert.Contains(t, CreateErrorMessage(core.ErrBadOptionCount, settings), "Invalid survey")
	assert.Contains(t, CreateErrorMessage(service.ErrNoGenerator, settings), "not configured")
}

func TestPresetChoices(t *testing.T) {
	got := presetChoices([]string{"Lunch", "lunar", "Dinner"}, "LU")
	require.Len(t, got, 2)
	assert.Equal(t, "Lunch", got[0].Name)
	assert.Equal(t, "lunar", got[1].Value)

	assert.Len(t, presetChoices([]string{"a", "b"}, ""), 2)
	assert.Empty(t, presetChoices(nil, "x"))
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "👥 Community members: 0\n📋 No active survey.", StatusMessage(0, nil))

	c := core.NewCommunity(core.DefaultSettings())
	c.Join(1, "a")
	c.Join(2, "b")
	s, err := core.Compile([]core.Draft{{Text: "q", Options: []string{"x", "y"}}}, nil, c)
	require.NoError(t, err)
	assert.Contains(t, StatusMessage(2, s), "(draft)")

	_, err = s.Open(c.Members(), time.Minute)
	require.NoError(t, err)
	msg := StatusMessage(2, s)
	assert.Contains(t, msg, "Answered: 0 / 2")
	assert.Contains(t, msg, fmt.Sprintf("<t:%d:R>", s.Deadline().Unix()))
	s.Close(core.ReasonTimeout)
}

func TestCreatorFallsBackToDetachedParticipant(t *testing.T) {
	c := core.NewCommunity(core.DefaultSettings())
	member, _ := c.Join(1, "member")
	h := New(context.Background(), Options{Manager: service.NewManager(c, service.Options{})})

	assert.Same(t, member, h.creator(1, "ignored"))
	outsider := h.creator(9, "outsider")
	assert.Equal(t, int64(9), outsider.ID)
	assert.Equal(t, "outsider", outsider.Name)
	_, isMember := c.Member(9)
	assert.False(t, isMember)
}

func TestOpenedMessage(t *testing.T) {
	assert.Equal(t, "📣 Survey sent to 3 participants. It closes in 2m0s or when everyone has answered.",
		OpenedMessage(3, 2*time.Minute))
}
