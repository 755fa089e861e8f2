package bot

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"surveybot/survey"
	"surveybot/vote"
)

const (
	colorSurvey     = 0x5865F2 // Discord Blurple
	maxButtonLabel  = 80
	maxEmbedField   = 1024
	resultBarLength = 10
)

// OpeningMessage is the header sent to every participant before the
// questions.
func OpeningMessage(window time.Duration) string {
	return fmt.Sprintf("📣 A new survey has opened\n"+
		"⏱ Answering time: %s.\n"+
		"Please answer all questions (press a button for each question).", formatWindow(window))
}

func formatWindow(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	case minutes == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}

// QuestionMessage builds the message for question index of s, one button per
// option. Each button carries the answer token as its custom id.
func QuestionMessage(surveyID string, index int, q *survey.Question) *discordgo.MessageSend {
	buttons := make([]discordgo.MessageComponent, 0, len(q.Options))
	for i, opt := range q.Options {
		buttons = append(buttons, discordgo.Button{
			Label:    truncate(fmt.Sprintf("%d. %s", i+1, opt), maxButtonLabel),
			Style:    discordgo.PrimaryButton,
			CustomID: vote.FormatToken(surveyID, index, i),
		})
	}
	return &discordgo.MessageSend{
		Content: fmt.Sprintf("%d) %s", index+1, q.Text),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: buttons},
		},
	}
}

// ResultEmbed renders a closed survey's ranked results.
func ResultEmbed(r survey.Result) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📊 Survey results",
		Description: fmt.Sprintf("%d of %d participants answered (%s).",
			r.Respondents, r.Participants, reasonText(r.Reason)),
		Color:  colorSurvey,
		Fields: []*discordgo.MessageEmbedField{},
		Footer: &discordgo.MessageEmbedFooter{Text: "Survey " + r.SurveyID},
	}
	if !r.ClosedAt.IsZero() {
		embed.Timestamp = r.ClosedAt.Format(time.RFC3339)
	}

	for i, q := range r.Questions {
		var sb strings.Builder
		for _, o := range q.Ranked {
			fmt.Fprintf(&sb, "%s %s: %.1f%% (%d)\n", bar(o.Percent), o.Option, o.Percent, o.Votes)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  truncate(fmt.Sprintf("%d) %s", i+1, q.Text), 256),
			Value: truncate(sb.String(), maxEmbedField),
		})
	}
	return embed
}

func reasonText(r survey.Reason) string {
	switch r {
	case survey.ReasonQuorum:
		return "everyone answered"
	case survey.ReasonTimeout:
		return "time is up"
	default:
		return string(r)
	}
}

func bar(percent float64) string {
	filled := int(math.Round(percent / 100 * resultBarLength))
	if filled < 0 {
		filled = 0
	}
	if filled > resultBarLength {
		filled = resultBarLength
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", resultBarLength-filled)
}

// AnnounceMessage tells existing members about a newcomer.
func AnnounceMessage(name string, size int) string {
	return fmt.Sprintf("👋 A new member has joined: %s (total: %d)", name, size)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
