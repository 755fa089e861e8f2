package survey

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"surveybot/utils"
	"surveybot/vote"
)

// AnswerButtonHandler handles a click on an answer button.
func (h *Handlers) AnswerButtonHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := utils.InteractionUser(i)
	if user == nil {
		return
	}
	id, ok := utils.ParseSnowflake(user.ID)
	if !ok {
		h.respond(s, i, Feedback(vote.Outcome{Reason: vote.ReasonNotParticipant}))
		return
	}

	out := h.collector.SubmitToken(id, i.MessageComponentData().CustomID)
	if out.Completed {
		h.logger.Debug("answers completed", zap.Int64("participant", id), zap.Bool("closed", out.Closed))
	}
	h.respond(s, i, Feedback(out))
}
