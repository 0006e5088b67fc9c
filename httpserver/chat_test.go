package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"med-lab/ai"
	"med-lab/domain/chat"
	"med-lab/errors"
	"med-lab/repositories"
)

func TestRouter_Chat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, chatSvc, _ := newTestRouter(t, ctrl)

	t.Run("should answer a question with sources", func(t *testing.T) {
		req := require.New(t)

		// An absent role defaults to patient
		chatSvc.EXPECT().
			Ask(gomock.Any(), chat.AskCommand{
				Question:     "What does my scan show?",
				Role:         ai.RolePatient,
				Conversation: "consult-1",
			}).
			Return(chat.Answer{
				Answer:  "All clear.",
				Sources: []chat.Source{{Source: "scan.pdf", Page: lo.ToPtr(2)}},
			}, nil)

		body := strings.NewReader(`{"question": "What does my scan show?", "conversation": "consult-1"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))

		req.Equal(http.StatusOK, rec.Code)
		resp := decodeBody[chat.Answer](t, rec)
		req.Equal("All clear.", resp.Answer)
		req.Len(resp.Sources, 1)
		req.Equal("scan.pdf", resp.Sources[0].Source)
		req.Equal(2, *resp.Sources[0].Page)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		req := require.New(t)

		chatSvc.EXPECT().Ask(gomock.Any(), gomock.Any()).Times(0)

		body := strings.NewReader(`{"question": "hello", "role": "wizard"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))

		req.Equal(http.StatusBadRequest, rec.Code)
		req.Contains(decodeBody[errorResponse](t, rec).Error, "invalid request")
	})

	t.Run("should reject a missing question", func(t *testing.T) {
		req := require.New(t)

		chatSvc.EXPECT().Ask(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`)))

		req.Equal(http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		req := require.New(t)

		chatSvc.EXPECT().Ask(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"question":`)))

		req.Equal(http.StatusBadRequest, rec.Code)
	})

	t.Run("should map a blank question to a bad request", func(t *testing.T) {
		req := require.New(t)

		chatSvc.EXPECT().Ask(gomock.Any(), gomock.Any()).Return(chat.Answer{}, errors.ErrEmptyQuestion)

		body := strings.NewReader(`{"question": "   "}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", body))

		req.Equal(http.StatusBadRequest, rec.Code)
		req.Contains(decodeBody[errorResponse](t, rec).Error, "question is empty")
	})
}

func TestRouter_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, chatSvc, _ := newTestRouter(t, ctrl)

	t.Run("should page through a conversation", func(t *testing.T) {
		req := require.New(t)

		turns := []repositories.ChatMessage{{
			ID:           uuid.New(),
			Conversation: "consult-1",
			Role:         repositories.RoleAssistant,
			Content:      "All clear.",
			At:           time.Now().UTC(),
		}}
		chatSvc.EXPECT().
			History(chat.HistoryCommand{Conversation: "consult-1", Cursor: lo.ToPtr("abc")}).
			Return(turns, lo.ToPtr("next-page"), nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat/consult-1/history?cursor=abc", nil))

		req.Equal(http.StatusOK, rec.Code)
		resp := decodeBody[historyResponse](t, rec)
		req.Len(resp.Messages, 1)
		req.Equal("All clear.", resp.Messages[0].Content)
		req.Equal("next-page", *resp.Cursor)
	})

	t.Run("should answer a fresh conversation with an empty page", func(t *testing.T) {
		req := require.New(t)

		chatSvc.EXPECT().
			History(chat.HistoryCommand{Conversation: "consult-2"}).
			Return(nil, nil, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat/consult-2/history", nil))

		req.Equal(http.StatusOK, rec.Code)
		req.Contains(rec.Body.String(), `"messages":[]`)
	})
}
