package survey

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"surveybot/service"
	core "surveybot/survey"
	"surveybot/vote"
)

const (
	msgAlreadyMember = "ℹ️ You are already a member of the community!"
	msgNotAllowed    = "❌ You are not allowed to create surveys."
	msgBadUser       = "⚠️ Could not read your user id."
	msgNoPresets     = "❌ No survey presets are configured."
	maxChoices       = 25
)

// Feedback is the reply shown to a participant after an answer click.
func Feedback(out vote.Outcome) string {
	if out.Accepted {
		msg := fmt.Sprintf("✅ Choice %d recorded for question %d.", out.Option+1, out.Question+1)
		if out.Completed {
			msg += "\n🙏 Thank you! Your answers were received."
		}
		if out.Closed {
			msg += "\n📊 Everyone has answered, the survey is now closed."
		}
		return msg
	}

	switch out.Reason {
	case vote.ReasonNoActiveSurvey:
		return "ℹ️ There is no open survey right now."
	case vote.ReasonSurveyIDMismatch:
		return "⚠️ This survey is no longer active."
	case vote.ReasonAlreadyVoted:
		return "ℹ️ You have already answered this survey."
	case vote.ReasonQuestionOutOfRange:
		return "⚠️ Invalid question."
	case vote.ReasonOptionOutOfRange:
		return "⚠️ Invalid option."
	case vote.ReasonNotParticipant:
		return "⚠️ You are not part of this survey. Use /join to take part in the next one."
	case vote.ReasonSurveyClosed:
		return "⌛ The survey has closed, your answers were not counted."
	default:
		return "⚠️ Choice invalid."
	}
}

// WelcomeMessage greets a new member.
func WelcomeMessage(name string, size int) string {
	return fmt.Sprintf("👋 Welcome, %s! Community size now: %d", name, size)
}

// OpenedMessage confirms a survey was sent out.
func OpenedMessage(participants int, window time.Duration) string {
	return fmt.Sprintf("📣 Survey sent to %d participants. It closes in %s or when everyone has answered.",
		participants, window.Round(time.Second))
}

// CreateErrorMessage explains why a survey could not be created or opened.
func CreateErrorMessage(err error, settings core.Settings) string {
	switch {
	case errors.Is(err, core.ErrInsufficientMembers):
		return fmt.Sprintf("❌ At least %d members are needed to open a survey.", settings.MinMembers)
	case errors.Is(err, core.ErrAlreadyActive):
		return "❌ There is already an active survey, wait for it to close."
	case errors.Is(err, core.ErrTooFewQuestions):
		return "❌ Could not get usable questions for this topic, try rephrasing it."
	case errors.Is(err, core.ErrTooManyQuestions), errors.Is(err, core.ErrBadOptionCount):
		return fmt.Sprintf("❌ Invalid survey: %v", err)
	case errors.Is(err, service.ErrNoGenerator):
		return "❌ Survey generation is not configured."
	default:
		return fmt.Sprintf("❌ Failed to create the survey: %v", err)
	}
}

// presetChoices lists preset names starting with prefix, case-insensitively.
func presetChoices(names []string, prefix string) []*discordgo.ApplicationCommandOptionChoice {
	prefix = strings.ToLower(prefix)
	choices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, n := range names {
		if !strings.HasPrefix(strings.ToLower(n), prefix) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: n, Value: n})
		if len(choices) == maxChoices {
			break
		}
	}
	return choices
}
