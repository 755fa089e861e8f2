package def

import (
	"github.com/bwmarrin/discordgo"
)

var minMinutes float64 = 1

var JoinCommand = &discordgo.ApplicationCommand{
	Name:        "join",
	Description: "Join the survey community",
}

var SurveyCommand = &discordgo.ApplicationCommand{
	Name:        "survey",
	Description: "Generate a survey about a topic and send it to the community",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "topic",
			Description: "What the survey should be about",
			Required:    true,
			MaxLength:   200,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "minutes",
			Description: "Answer window in minutes (clamped to the configured range)",
			Required:    false,
			MinValue:    &minMinutes,
			MaxValue:    60,
		},
	},
}

var SurveyPresetCommand = &discordgo.ApplicationCommand{
	Name:        "survey_preset",
	Description: "Send a prepared survey to the community",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "name",
			Description:  "Preset name",
			Required:     true,
			Autocomplete: true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "minutes",
			Description: "Answer window in minutes (clamped to the configured range)",
			Required:    false,
			MinValue:    &minMinutes,
			MaxValue:    60,
		},
	},
}

var SurveyStatusCommand = &discordgo.ApplicationCommand{
	Name:        "survey_status",
	Description: "Show the community size and the active survey",
}
