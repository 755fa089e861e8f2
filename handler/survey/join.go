package survey

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"surveybot/utils"
)

// JoinCommandHandler handles /join.
func (h *Handlers) JoinCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := utils.InteractionUser(i)
	if user == nil {
		return
	}
	id, ok := utils.ParseSnowflake(user.ID)
	if !ok {
		h.respond(s, i, msgBadUser)
		return
	}

	name := utils.DisplayName(i)
	c := h.manager.Community()
	p, added := c.Join(id, name)
	if !added {
		h.respond(s, i, msgAlreadyMember)
		return
	}

	members := c.Members()
	h.logger.Info("member joined", zap.Int64("participant", id), zap.Int("size", len(members)))
	h.respond(s, i, WelcomeMessage(name, len(members)))

	if h.announcer != nil {
		go h.announcer.Announce(h.ctx, p, members)
	}
}
