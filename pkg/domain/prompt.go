package domain

// QuestionSeparator joins an instruction and the user's text in text-only prompts.
const QuestionSeparator = "\n\nQuestion:\n"

// TextPrompt builds the single prompt sent for text-only requests.
func TextPrompt(instruction, userText string) string {
	return instruction + QuestionSeparator + userText
}
