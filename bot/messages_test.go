package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveybot/survey"
	"surveybot/vote"
)

func TestOpeningMessage(t *testing.T) {
	assert.Contains(t, OpeningMessage(3*time.Minute), "3 minutes")
	assert.Contains(t, OpeningMessage(time.Minute), "1 minute.")
	assert.Contains(t, OpeningMessage(30*time.Second), "30 seconds")
}

func TestQuestionMessage(t *testing.T) {
	q := &survey.Question{Text: "Tea or coffee?", Options: []string{"tea", strings.Repeat("x", 100)}}
	msg := QuestionMessage("abc", 1, q)

	assert.Equal(t, "2) Tea or coffee?", msg.Content)
	require.Len(t, msg.Components, 1)
	row, ok := msg.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)

	first := row.Components[0].(discordgo.Button)
	assert.Equal(t, "1. tea", first.Label)
	tok, ok := vote.ParseToken(first.CustomID)
	require.True(t, ok)
	assert.Equal(t, vote.Token{SurveyID: "abc", Question: 1, Option: 0}, tok)

	second := row.Components[1].(discordgo.Button)
	assert.Len(t, []rune(second.Label), maxButtonLabel)
	assert.Equal(t, "sv|abc|q|1|o|1", second.CustomID)
}

func TestResultEmbed(t *testing.T) {
	r := survey.Result{
		SurveyID:     "abc",
		Reason:       survey.ReasonQuorum,
		Respondents:  4,
		Participants: 4,
		ClosedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Questions: []survey.QuestionResult{{
			Text:  "Tea or coffee?",
			Total: 4,
			Ranked: []survey.RankedOption{
				{Option: "tea", Votes: 3, Percent: 75},
				{Option: "coffee", Votes: 1, Percent: 25},
			},
		}},
	}
	e := ResultEmbed(r)

	assert.Contains(t, e.Description, "4 of 4 participants answered (everyone answered)")
	assert.Equal(t, "2026-01-02T03:04:05Z", e.Timestamp)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "1) Tea or coffee?", e.Fields[0].Name)
	lines := strings.Split(strings.TrimSpace(e.Fields[0].Value), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "tea: 75.0% (3)"))
	assert.True(t, strings.HasSuffix(lines[1], "coffee: 25.0% (1)"))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", bar(0))
	assert.Equal(t, "█████░░░░░", bar(50))
	assert.Equal(t, "██████████", bar(100))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
