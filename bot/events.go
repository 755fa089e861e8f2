package bot

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"surveybot/handler"
)

func registerEventHandlers(s *discordgo.Session, router *handler.Router, health *HealthServer, logger *zap.Logger) {
	s.AddHandler(router.OnInteractionCreate)
	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.Info("discord session ready", zap.String("user", r.User.Username))
		if health != nil {
			health.SetServing(true)
		}
	})
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Resumed) {
		if health != nil {
			health.SetServing(true)
		}
	})
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) {
		logger.Warn("discord session disconnected")
		if health != nil {
			health.SetServing(false)
		}
	})

	// 设置必要的intents
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
}
