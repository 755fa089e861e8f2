package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionsJSON(n int) (string, []Question) {
	var objs []string
	var want []Question
	for i := 1; i <= n; i++ {
		q := Question{
			Text:    fmt.Sprintf("Question %d?", i),
			Options: []string{fmt.Sprintf("yes %d", i), fmt.Sprintf("no %d", i)},
		}
		want = append(want, q)
		objs = append(objs, fmt.Sprintf(`{"text": %q, "options": [%q, %q]}`, q.Text, q.Options[0], q.Options[1]))
	}
	return `{"questions": [` + strings.Join(objs, ",\n  ") + `]}`, want
}

func TestQuestionsFromFencedProse(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d objects", n), func(t *testing.T) {
			body, want := questionsJSON(n)
			raw := "Sure! {not this} Here is the survey:\n" + fence + "json\n" + body + "\n" + fence + "\nHope it helps } {"

			got := Questions(raw)
			if n > maxQuestions {
				want = want[:maxQuestions]
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestQuestionsEscapesAndBrackets(t *testing.T) {
	raw := `{"questions":[{"text":"Pick [one] {now}","options":["a [b] \"c\"","plain","}{]["]}]}`
	got := Questions(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Pick [one] {now}", got[0].Text)
	assert.Equal(t, []string{`a [b] "c"`, "plain", "}{]["}, got[0].Options)
}

func TestQuestionsDropsMalformedEntries(t *testing.T) {
	raw := `{"questions":[
		{"options":["a","b"]},
		{"text":"one option","options":["a"]},
		{"text":"five options","options":["a","b","c","d","e"]},
		{"text":"no options"},
		{"text":"kept","options":["a","b","c","d"]},
		"stray string",
		{"text":"options not array","options":"a,b"}
	]}`
	got := Questions(raw)
	assert.Equal(t, []Question{{Text: "kept", Options: []string{"a", "b", "c", "d"}}}, got)
}

func TestQuestionsGreedyFallbackWithTrailingGarbage(t *testing.T) {
	raw := `Result: {"questions":[{"text":"Lunch?","options":["pizza","sushi"]}]} -- note: {ignore me}`
	got := Questions(raw)
	assert.Equal(t, []Question{{Text: "Lunch?", Options: []string{"pizza", "sushi"}}}, got)
}

func TestQuestionsTruncatedOutput(t *testing.T) {
	raw := `{"questions":[{"text":"A?","options":["x","y"]},{"text":"B?","options":["x","`
	got := Questions(raw)
	assert.Equal(t, []Question{{Text: "A?", Options: []string{"x", "y"}}}, got)
}

func TestQuestionsKeyOnlyInsideString(t *testing.T) {
	raw := `{"note":"the \"questions\" key is below","questions":[{"text":"Q","options":["a","b"]}]}`
	got := Questions(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "Q", got[0].Text)
}

func TestQuestionsNothingUsable(t *testing.T) {
	assert.Empty(t, Questions(""))
	assert.Empty(t, Questions("no structured data here"))
	assert.Empty(t, Questions(`{"items":[{"text":"Q","options":["a","b"]}]}`))
	assert.Empty(t, Questions(`{"questions": "none"}`))
	assert.Empty(t, ParseQuestions(`{"questions":[]}`))
}

func TestQuestionsDuplicateLabelsKept(t *testing.T) {
	got := Questions(`{"questions":[{"text":"Q","options":["same","same"]}]}`)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"same", "same"}, got[0].Options)
}
