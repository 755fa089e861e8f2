package generator

import "fmt"

const questionFormat = `{"questions":[{"text":"question","options":["option 1","option 2"]}]}`

// Prompt asks for a survey about topic.
func Prompt(topic string) string {
	return fmt.Sprintf("Return only clean JSON (no explanations, no code fences) in the format: %s "+
		"Topic: %q. Limits: 1-3 questions; each question has 2-4 short options.", questionFormat, topic)
}

// StrictPrompt is the retry prompt used when the first reply held no usable
// questions. It repeats only the format.
func StrictPrompt(topic string) string {
	return fmt.Sprintf("%s Topic: %q. Return only clean JSON matching the format above exactly.",
		questionFormat, topic)
}
