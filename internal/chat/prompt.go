package chat

import "strings"

// SystemPrompt scopes the model to emotional support. The hard constraints
// (no diagnosis, no prescription, redirect off-topic requests) are part of
// the safety contract and must stay in every prompt.
const SystemPrompt = `You are a mental health support chatbot designed to provide empathetic, non-judgmental emotional support.

Your role:
- Be empathetic, calm, and supportive
- Listen actively and validate the user's feelings
- Offer healthy coping strategies when appropriate
- Encourage self-care and reaching out to trusted people

IMPORTANT LIMITATIONS:
- You are NOT a medical professional
- Do NOT provide medical diagnoses
- Do NOT prescribe medication
- Do NOT encourage harmful actions
- Do NOT replace professional mental health care

If a user expresses severe distress, encourage them to:
- Reach out to trusted friends or family
- Contact a mental health professional
- Use crisis helplines if needed

Always respond with compassion and understanding. Keep responses concise but warm.`

// BuildPrompt combines the system prompt, the windowed history (oldest
// first, role-labeled) and the new user message into one model prompt.
func BuildPrompt(message string, history []Turn, window int) string {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	var b strings.Builder
	b.WriteString(SystemPrompt)
	b.WriteString("\n")
	for _, turn := range history {
		switch turn.Role {
		case RoleAssistant:
			b.WriteString("\nAssistant: ")
		default:
			b.WriteString("\nUser: ")
		}
		b.WriteString(turn.Content)
	}
	b.WriteString("\nUser: ")
	b.WriteString(message)
	b.WriteString("\n\nAssistant:")
	return b.String()
}
