package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"surveybot/survey"
	"surveybot/utils"
)

// messenger is the part of *discordgo.Session the notifier needs.
type messenger interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier delivers survey messages as direct messages.
type Notifier struct {
	session messenger
	logger  *zap.Logger
	dms     sync.Map // user id -> DM channel id
}

// NewNotifier creates a Notifier on top of a Discord session.
func NewNotifier(s messenger, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{session: s, logger: logger.Named("notifier")}
}

// DeliverOpening sends the survey header.
func (n *Notifier) DeliverOpening(ctx context.Context, p *survey.Participant, s *survey.Survey, window time.Duration) error {
	return n.send(ctx, p.ID, &discordgo.MessageSend{Content: OpeningMessage(window)})
}

// DeliverQuestion sends one question with its answer buttons.
func (n *Notifier) DeliverQuestion(ctx context.Context, p *survey.Participant, s *survey.Survey, index int) error {
	return n.send(ctx, p.ID, QuestionMessage(s.ID, index, s.Questions[index]))
}

// DeliverResult sends the ranked results to the survey creator.
func (n *Notifier) DeliverResult(ctx context.Context, creator *survey.Participant, r survey.Result) error {
	return n.send(ctx, creator.ID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{ResultEmbed(r)}})
}

// Announce tells every member except the newcomer that someone joined.
// Failures are logged and otherwise ignored.
func (n *Notifier) Announce(ctx context.Context, newcomer *survey.Participant, members []*survey.Participant) {
	msg := &discordgo.MessageSend{Content: AnnounceMessage(newcomer.Name, len(members))}
	for _, m := range members {
		if m.ID == newcomer.ID {
			continue
		}
		if err := n.send(ctx, m.ID, msg); err != nil {
			n.logger.Debug("announce failed", zap.Int64("participant", m.ID), zap.Error(err))
		}
	}
}

// Send delivers a plain text direct message.
func (n *Notifier) Send(ctx context.Context, userID int64, content string) error {
	return n.send(ctx, userID, &discordgo.MessageSend{Content: content})
}

func (n *Notifier) send(ctx context.Context, userID int64, msg *discordgo.MessageSend) error {
	channelID, err := n.dmChannel(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := n.session.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("bot: send dm to %d: %w", userID, err)
	}
	return nil
}

func (n *Notifier) dmChannel(ctx context.Context, userID int64) (string, error) {
	if id, ok := n.dms.Load(userID); ok {
		return id.(string), nil
	}
	ch, err := n.session.UserChannelCreate(utils.FormatSnowflake(userID), discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("bot: open dm with %d: %w", userID, err)
	}
	n.dms.Store(userID, ch.ID)
	return ch.ID, nil
}
