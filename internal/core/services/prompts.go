package services

import (
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/domain"
	"github.com/tabletalk-labs/tabletalk-cli/internal/core/ports/driven"
)

// rephraseInstruction turns a follow-up question into a standalone one.
// The model's output is used verbatim; if it echoes the question
// unchanged, that is accepted.
const rephraseInstruction = `Given the conversation so far, rephrase the user's follow-up question ` +
	`into a standalone question that can be understood without the conversation. ` +
	`Return only the rephrased question, nothing else.`

// answerInstruction directs the model to answer only from the supplied
// context. This is a prompting policy, not an enforced constraint.
const answerInstruction = `You are a support assistant. Answer the user's question using only the ` +
	`context below. If the context does not contain the answer, say you don't know ` +
	`and suggest contacting human support.

Context:
`

// buildRephrasePrompt assembles the rephrasing conversation: a fixed
// system instruction, the full ordered history, then the follow-up.
func buildRephrasePrompt(history []domain.Message, followUp string) []driven.ChatMessage {
	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{
		Role:    driven.ChatRoleSystem,
		Content: rephraseInstruction,
	})
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, driven.ChatMessage{
		Role:    driven.ChatRoleUser,
		Content: followUp,
	})
	return messages
}

// buildAnswerPrompt assembles the answering conversation: the system
// instruction with the retrieved context embedded verbatim, the full
// ordered history, then the user's original question.
func buildAnswerPrompt(contextText string, history []domain.Message, question string) []driven.ChatMessage {
	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{
		Role:    driven.ChatRoleSystem,
		Content: answerInstruction + contextText,
	})
	messages = append(messages, historyMessages(history)...)
	messages = append(messages, driven.ChatMessage{
		Role:    driven.ChatRoleUser,
		Content: question,
	})
	return messages
}

// historyMessages converts domain history into chat messages,
// preserving order.
func historyMessages(history []domain.Message) []driven.ChatMessage {
	out := make([]driven.ChatMessage, len(history))
	for i, msg := range history {
		out[i] = driven.ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}
	return out
}
