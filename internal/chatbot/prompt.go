package chatbot

import (
	"fmt"
	"strings"

	"faqbot/internal/domain"
)

// systemPrompt establishes the agent persona and the grounding
// constraint: answer only from the supplied FAQs, admit when they don't
// cover the question instead of inventing facts.
const systemPrompt = "You are AURORA, an advanced customer support agent for an e-commerce website. " +
	"Your answers should be helpful, accurate and concise. " +
	"Use the provided FAQs to ground your answers in factual information. " +
	"If the FAQs don't contain the exact answer, use what is most relevant " +
	"and indicate when you're extrapolating. If nothing is relevant, admit " +
	"you don't know rather than making up information. " +
	"Keep your answers to a maximum of 3-4 sentences unless more detail is required."

// apologyText is the fixed user-safe reply when the completion backend
// fails. It must never be replaced by a raw error.
const apologyText = "I'm experiencing a temporary glitch. Please try your question again later."

const noContextPlaceholder = "No specific FAQ matches found for this query."

// buildUserPrompt renders the retrieved FAQs, in retrieval order,
// followed by the original query.
func buildUserPrompt(matches []domain.Match, query string) string {
	var b strings.Builder
	b.WriteString("Based on these relevant FAQs:\n\n")
	if len(matches) == 0 {
		b.WriteString(noContextPlaceholder)
	} else {
		for i, m := range matches {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "FAQ %d:\nQuestion: %s\nAnswer: %s\nCategory: %s",
				i+1, m.Entry.Question, m.Entry.Answer, m.Entry.Category)
		}
	}
	b.WriteString("\n\nPlease answer this question: ")
	b.WriteString(query)
	return b.String()
}
