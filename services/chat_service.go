//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"med-lab/ai"
	"med-lab/domain/chat"
	"med-lab/domain/document"
	"med-lab/errors"
	"med-lab/repositories"
)

const (
	noContextAnswer  = "No stored documents matched your question. Upload the relevant medical documents and ask again."
	fallbackPreamble = "No language model is configured, so here is the most relevant stored context instead:"
)

type IChatService interface {
	Ask(ctx context.Context, cmd chat.AskCommand) (chat.Answer, error)
	History(cmd chat.HistoryCommand) ([]repositories.ChatMessage, *string, error)
}

// ChatService answers questions from the stored document corpus. Retrieval
// always runs; the language model is optional and the service degrades to
// returning the retrieved context when none is configured.
type ChatService struct {
	documents IDocumentService
	llm       ai.ILLM
	messages  repositories.IMessageRepository
	log       *slog.Logger
}

// NewChatService wires the chat flow. llm may be nil: answers then carry
// the retrieved context verbatim instead of a generated reply.
func NewChatService(documents IDocumentService, llm ai.ILLM,
	messages repositories.IMessageRepository, log *slog.Logger) *ChatService {
	return &ChatService{
		documents: documents,
		llm:       llm,
		messages:  messages,
		log:       log,
	}
}

// Ask retrieves the chunks most relevant to the question, generates an
// answer in the register matching the user role, and appends a medical
// disclaimer when the supporting images carry conflicting confidence
// scores. Both turns are recorded when the command names a conversation.
func (s *ChatService) Ask(ctx context.Context, cmd chat.AskCommand) (chat.Answer, error) {
	question := strings.TrimSpace(cmd.Question)
	if question == "" {
		return chat.Answer{}, errors.ErrEmptyQuestion
	}

	chunks, contextBlock, err := s.documents.RetrieveContext(ctx, question, defaultTopK)
	if err != nil {
		return chat.Answer{}, err
	}

	answer, err := s.answer(ctx, question, cmd.Role, chunks, contextBlock)
	if err != nil {
		return chat.Answer{}, err
	}
	answer = AppendDisclaimer(answer, chunks, cmd.Role)

	s.record(cmd.Conversation, question, answer)

	return chat.Answer{Answer: answer, Sources: sourcesOf(chunks)}, nil
}

func (s *ChatService) History(cmd chat.HistoryCommand) ([]repositories.ChatMessage, *string, error) {
	return s.messages.GetMessages(cmd.Conversation, cmd.Cursor)
}

func (s *ChatService) answer(ctx context.Context, question, role string,
	chunks []document.Chunk, contextBlock string) (string, error) {
	if s.llm == nil {
		s.log.Debug("Answering from retrieved context only", "reason", errors.ErrLLMNotConfigured)
		return fallbackAnswer(contextBlock), nil
	}

	contents := lo.Map(chunks, func(chunk document.Chunk, _ int) string {
		return chunk.Content
	})
	answer, err := s.llm.Answer(ctx, ai.BuildPrompt(question, contents, role))
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}
	return answer, nil
}

// fallbackAnswer is the deterministic reply used without a language model:
// the retrieved context blocks, or a hint to upload documents when nothing
// matched.
func fallbackAnswer(contextBlock string) string {
	if contextBlock == "" {
		return noContextAnswer
	}
	return fallbackPreamble + "\n\n" + contextBlock
}

// record appends both turns to the conversation history. A history failure
// does not void an already generated answer.
func (s *ChatService) record(conversation, question, answer string) {
	if conversation == "" {
		return
	}
	now := time.Now().UTC()
	turns := []repositories.ChatMessage{
		{ID: uuid.New(), Conversation: conversation, Role: repositories.RoleUser, Content: question, At: now},
		// Keep the answer strictly after the question in the reverse scan.
		{ID: uuid.New(), Conversation: conversation, Role: repositories.RoleAssistant, Content: answer, At: now.Add(time.Nanosecond)},
	}
	for _, turn := range turns {
		if err := s.messages.StoreMessage(turn); err != nil {
			s.log.Warn("Failed to record conversation turn",
				"conversation", conversation,
				"error", err)
		}
	}
}

func sourcesOf(chunks []document.Chunk) []chat.Source {
	return lo.Map(chunks, func(chunk document.Chunk, _ int) chat.Source {
		source := chat.Source{Source: chunk.Source}
		if page, err := strconv.Atoi(chunk.Metadata[document.MetaPage]); err == nil {
			source.Page = &page
		}
		return source
	})
}
