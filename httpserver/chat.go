package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"med-lab/ai"
	"med-lab/domain/chat"
	"med-lab/errors"
	"med-lab/repositories"
)

type askRequest struct {
	Question     string `json:"question" validate:"required"`
	Role         string `json:"role" validate:"omitempty,oneof=patient professional"`
	Conversation string `json:"conversation"`
}

// POST /api/chat
// Body: {"question": "...", "role": "patient|professional", "conversation": "..."}
// Role defaults to patient; naming a conversation keeps the turns in history.
func (rt *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	var body askRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if err := validate.Struct(body); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if body.Role == "" {
		body.Role = ai.RolePatient
	}

	answer, err := rt.chat.Ask(req.Context(), chat.AskCommand{
		Question:     body.Question,
		Role:         body.Role,
		Conversation: body.Conversation,
	})
	if err != nil {
		return err
	}
	if answer.Sources == nil {
		answer.Sources = []chat.Source{}
	}
	return respondJSON(w, http.StatusOK, answer)
}

type historyResponse struct {
	Messages []repositories.ChatMessage `json:"messages"`
	Cursor   *string                    `json:"cursor,omitempty"`
}

// GET /api/chat/{conversation}/history?cursor=
// Turns come back newest first; pass the returned cursor to keep paging.
func (rt *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	cmd := chat.HistoryCommand{Conversation: chi.URLParam(req, "conversation")}
	if cursor := req.URL.Query().Get("cursor"); cursor != "" {
		cmd.Cursor = &cursor
	}

	messages, next, err := rt.chat.History(cmd)
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []repositories.ChatMessage{}
	}
	return respondJSON(w, http.StatusOK, historyResponse{Messages: messages, Cursor: next})
}
