package survey

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	core "surveybot/survey"
	"surveybot/utils"
)

// SurveyCommandHandler handles /survey: generate questions about a topic,
// then open the survey.
func (h *Handlers) SurveyCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	creator, ok := h.authorizedCreator(s, i)
	if !ok {
		return
	}
	opts := optionMap(i.ApplicationCommandData().Options)
	topic := ""
	if o, ok := opts["topic"]; ok {
		topic = o.StringValue()
	}
	requested := requestedWindow(opts)

	// Generation can take longer than the interaction deadline.
	if !h.deferResponse(s, i) {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(h.ctx, createTimeout)
		defer cancel()

		sv, err := h.manager.CreateAuto(ctx, topic, creator)
		if err != nil {
			h.logger.Info("auto survey rejected", zap.String("topic", topic), zap.Error(err))
			h.editResponse(s, i, CreateErrorMessage(err, h.manager.Community().Settings()))
			return
		}
		h.openAndReport(s, i, sv, requested)
	}()
}

// SurveyPresetCommandHandler handles /survey_preset.
func (h *Handlers) SurveyPresetCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	creator, ok := h.authorizedCreator(s, i)
	if !ok {
		return
	}
	opts := optionMap(i.ApplicationCommandData().Options)
	name := ""
	if o, ok := opts["name"]; ok {
		name = o.StringValue()
	}

	if h.presets == nil {
		h.respond(s, i, msgNoPresets)
		return
	}
	drafts, found := h.presets.Lookup(name)
	if !found {
		h.respond(s, i, fmt.Sprintf("❌ Unknown preset %q.", name))
		return
	}

	// Answer first so a compiled survey is never left without a reply path.
	if !h.deferResponse(s, i) {
		return
	}
	sv, err := h.manager.CreateManual(drafts, creator)
	if err != nil {
		h.editResponse(s, i, CreateErrorMessage(err, h.manager.Community().Settings()))
		return
	}
	h.openAndReport(s, i, sv, requestedWindow(opts))
}

// PresetAutocompleteHandler suggests preset names.
func (h *Handlers) PresetAutocompleteHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var prefix string
	if o, ok := optionMap(i.ApplicationCommandData().Options)["name"]; ok && o.Focused {
		prefix = o.StringValue()
	}
	var names []string
	if h.presets != nil {
		names = h.presets.Names()
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: presetChoices(names, prefix)},
	})
	if err != nil {
		h.logger.Debug("autocomplete respond failed", zap.Error(err))
	}
}

func (h *Handlers) openAndReport(s *discordgo.Session, i *discordgo.InteractionCreate, sv *core.Survey, requested time.Duration) {
	window, err := h.manager.Open(h.ctx, sv, requested)
	if err != nil {
		h.logger.Error("open survey failed", zap.String("survey_id", sv.ID), zap.Error(err))
		h.editResponse(s, i, CreateErrorMessage(err, h.manager.Community().Settings()))
		return
	}
	h.editResponse(s, i, OpenedMessage(len(sv.Participants()), window))
}

// authorizedCreator checks the caller's permission and answers the
// interaction itself when it fails.
func (h *Handlers) authorizedCreator(s *discordgo.Session, i *discordgo.InteractionCreate) (*core.Participant, bool) {
	user := utils.InteractionUser(i)
	if user == nil {
		return nil, false
	}
	if !h.auth.CheckAuth(user.ID, utils.InteractionRoles(i)) {
		h.respond(s, i, msgNotAllowed)
		return nil, false
	}
	id, ok := utils.ParseSnowflake(user.ID)
	if !ok {
		h.respond(s, i, msgBadUser)
		return nil, false
	}
	return h.creator(id, utils.DisplayName(i)), true
}

// requestedWindow reads the optional "minutes" option; 0 selects the default.
func requestedWindow(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) time.Duration {
	o, ok := opts["minutes"]
	if !ok {
		return 0
	}
	n := o.IntValue()
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Minute
}
