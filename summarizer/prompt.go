package summarizer

// systemInstruction is sent to chat-style providers.
const systemInstruction = `You are a summarization assistant for encyclopedia articles.
Reply with the summary text only. No preamble, no headings, no markdown.
Keep facts from the source text and do not add new information.`

// buildPrompt puts the hint in front of the text, e.g.
// "Write a concise summary in approximately 100 words:\n\n<text>".
func buildPrompt(text, hint string) string {
	if hint == "" {
		return "Summarize the following text:\n\n" + text
	}
	return hint + ":\n\n" + text
}
