package survey

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	core "surveybot/survey"
)

// SurveyStatusCommandHandler handles /survey_status.
func (h *Handlers) SurveyStatusCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	c := h.manager.Community()
	h.respond(s, i, StatusMessage(c.Size(), c.Active()))
}

// StatusMessage describes the community and its active survey.
func StatusMessage(members int, active *core.Survey) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 Community members: %d\n", members)
	if active == nil {
		sb.WriteString("📋 No active survey.")
		return sb.String()
	}

	fmt.Fprintf(&sb, "📋 Active survey `%s` (%s)\n", active.ID, active.State())
	if active.State() == core.StateOpen {
		fmt.Fprintf(&sb, "✍️ Answered: %d / %d\n", active.SubmittedCount(), len(active.Participants()))
		fmt.Fprintf(&sb, "⏱ Closes <t:%d:R>", active.Deadline().Unix())
	}
	return strings.TrimRight(sb.String(), "\n")
}
