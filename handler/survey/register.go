// Package survey holds the Discord handlers for joining the community,
// creating surveys and answering them.
package survey

import (
	"context"
	"time"

	"go.uber.org/zap"

	"surveybot/command/def"
	"surveybot/handler"
	"surveybot/model"
	"surveybot/preset"
	"surveybot/service"
	core "surveybot/survey"
	"surveybot/utils"
	"surveybot/vote"
)

const createTimeout = 2 * time.Minute

// Announcer sends community notices by direct message.
type Announcer interface {
	Announce(ctx context.Context, newcomer *core.Participant, members []*core.Participant)
}

// Handlers serves the survey commands and answer buttons.
type Handlers struct {
	ctx       context.Context
	manager   *service.Manager
	collector *vote.Collector
	presets   *preset.Set
	auth      *utils.Authorizer
	announcer Announcer
	logger    *zap.Logger
}

// Options wires the handler dependencies. Presets and Announcer are optional.
type Options struct {
	Manager   *service.Manager
	Collector *vote.Collector
	Presets   *preset.Set
	Auth      *utils.Authorizer
	Announcer Announcer
	Logger    *zap.Logger
}

// New creates the handlers. ctx bounds the background work they start, such
// as survey timers and question generation.
func New(ctx context.Context, opts Options) *Handlers {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Auth == nil {
		opts.Auth = utils.NewAuthorizer(model.Auth{})
	}
	return &Handlers{
		ctx:       ctx,
		manager:   opts.Manager,
		collector: opts.Collector,
		presets:   opts.Presets,
		auth:      opts.Auth,
		announcer: opts.Announcer,
		logger:    opts.Logger.Named("handler"),
	}
}

// Register registers all handlers for the survey package.
func (h *Handlers) Register(r *handler.Router) {
	r.AddCommandHandler(def.JoinCommand.Name, h.JoinCommandHandler)
	r.AddCommandHandler(def.SurveyCommand.Name, h.SurveyCommandHandler)
	r.AddCommandHandler(def.SurveyPresetCommand.Name, h.SurveyPresetCommandHandler)
	r.AddAutocompleteHandler(def.SurveyPresetCommand.Name, h.PresetAutocompleteHandler)
	r.AddCommandHandler(def.SurveyStatusCommand.Name, h.SurveyStatusCommandHandler)

	// Answer buttons carry the vote token as custom id.
	r.AddComponentHandler(vote.TokenPrefix, h.AnswerButtonHandler)
}

// creator returns the community member behind id, or a detached participant
// that only receives the results.
func (h *Handlers) creator(id int64, name string) *core.Participant {
	if p, ok := h.manager.Community().Member(id); ok {
		return p
	}
	return core.NewParticipant(id, name)
}
