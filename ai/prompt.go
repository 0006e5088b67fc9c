package ai

import (
	"strings"

	"github.com/sashabaranov/go-openai"
)

// User roles understood by the prompt builder.
const (
	RolePatient      = "patient"
	RoleProfessional = "professional"
)

// BuildPrompt assembles the messages for the language model. The system
// message carries the role-appropriate register and the retrieved context;
// the question goes in as the user turn.
func BuildPrompt(question string, contextDocs []string, userRole string) []openai.ChatCompletionMessage {
	roleInstruction := "Provide a detailed answer with clinical insights."
	if userRole == RolePatient {
		roleInstruction = "Explain in easy-to-understand terms suitable for a patient."
	}

	systemMsg := "You are a helpful medical assistant. " + roleInstruction
	if len(contextDocs) > 0 {
		systemMsg += "\nUse the following information to answer:\n" + strings.Join(contextDocs, "\n\n")
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemMsg},
		{Role: openai.ChatMessageRoleUser, Content: question},
	}
}
