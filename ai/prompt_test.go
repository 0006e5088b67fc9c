package ai

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt_PatientRole(t *testing.T) {
	req := require.New(t)

	contexts := []string{
		"The chest radiograph shows clear lung fields.",
		"No acute cardiopulmonary findings.",
	}
	messages := BuildPrompt("What does my x-ray show?", contexts, RolePatient)

	req.Len(messages, 2)
	req.Equal(openai.ChatMessageRoleSystem, messages[0].Role)
	req.Contains(messages[0].Content, "You are a helpful medical assistant.")
	req.Contains(messages[0].Content, "easy-to-understand terms suitable for a patient")
	req.Contains(messages[0].Content, "Use the following information to answer:")
	req.Contains(messages[0].Content, "clear lung fields")
	req.Contains(messages[0].Content, "No acute cardiopulmonary findings")

	req.Equal(openai.ChatMessageRoleUser, messages[1].Role)
	req.Equal("What does my x-ray show?", messages[1].Content)
}

func TestBuildPrompt_ProfessionalRole(t *testing.T) {
	req := require.New(t)

	messages := BuildPrompt("Differential for bilateral infiltrates?", nil, RoleProfessional)

	req.Len(messages, 2)
	req.Contains(messages[0].Content, "detailed answer with clinical insights")
	req.NotContains(messages[0].Content, "Use the following information")
}

func TestBuildPrompt_UnknownRoleDefaultsToProfessional(t *testing.T) {
	req := require.New(t)

	messages := BuildPrompt("Question", nil, "admin")

	req.Contains(messages[0].Content, "clinical insights")
}
