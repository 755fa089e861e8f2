package handler

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// HandlerFunc handles one interaction.
type HandlerFunc func(s *discordgo.Session, i *discordgo.InteractionCreate)

// Router dispatches interactions to registered handlers. Component custom
// ids are routed by their prefix before the first ':' or '|'.
type Router struct {
	commandHandlers   map[string]HandlerFunc
	componentHandlers map[string]HandlerFunc
	autocomplete      map[string]HandlerFunc
	logger            *zap.Logger
}

// NewRouter creates an empty router.
func NewRouter(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		commandHandlers:   make(map[string]HandlerFunc),
		componentHandlers: make(map[string]HandlerFunc),
		autocomplete:      make(map[string]HandlerFunc),
		logger:            logger.Named("router"),
	}
}

// AddCommandHandler registers a handler for a slash command.
func (r *Router) AddCommandHandler(name string, handler HandlerFunc) {
	r.commandHandlers[name] = handler
}

// AddComponentHandler registers a handler for a message component prefix.
func (r *Router) AddComponentHandler(prefix string, handler HandlerFunc) {
	r.componentHandlers[prefix] = handler
}

// AddAutocompleteHandler registers an option autocomplete handler for a
// slash command.
func (r *Router) AddAutocompleteHandler(command string, handler HandlerFunc) {
	r.autocomplete[command] = handler
}

// OnInteractionCreate is the main interaction router. Register it on the
// Discord session.
func (r *Router) OnInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if handler, ok := r.commandHandlers[name]; ok {
			handler(s, i)
			return
		}
		r.logger.Debug("unhandled command", zap.String("name", name))
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		if handler, ok := r.componentHandlers[ComponentKey(customID)]; ok {
			handler(s, i)
			return
		}
		r.logger.Debug("unhandled component", zap.String("custom_id", customID))
	case discordgo.InteractionApplicationCommandAutocomplete:
		if handler, ok := r.autocomplete[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	}
}

// ComponentKey returns the routing prefix of a component custom id.
func ComponentKey(customID string) string {
	if idx := strings.IndexAny(customID, ":|"); idx >= 0 {
		return customID[:idx]
	}
	return customID
}
