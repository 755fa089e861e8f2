package command

import (
	"surveybot/command/def"

	"github.com/bwmarrin/discordgo"
)

// AllCommands contains all of the commands
var AllCommands = []*discordgo.ApplicationCommand{
	def.JoinCommand,
	def.SurveyCommand,
	def.SurveyPresetCommand,
	def.SurveyStatusCommand,
}
