package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"med-lab/internal/logs"
	"med-lab/mocks"
)

const testMaxUpload = 1 << 20

func newTestRouter(tb testing.TB, ctrl *gomock.Controller) (http.Handler, *mocks.MockIDocumentService, *mocks.MockIChatService, *mocks.MockJobSink) {
	tb.Helper()
	documents := mocks.NewMockIDocumentService(ctrl)
	chatSvc := mocks.NewMockIChatService(ctrl)
	uploads := mocks.NewMockJobSink(ctrl)
	router := NewRouter(logs.GetLoggerFromLevel(slog.LevelError),
		documents, chatSvc, uploads, testMaxUpload, nil)
	return router, documents, chatSvc, uploads
}

// multipartBody builds a request body with a single "file" part.
func multipartBody(tb testing.TB, filename string, data []byte) (*bytes.Buffer, string) {
	tb.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(tb, err)
	_, err = part.Write(data)
	require.NoError(tb, err)
	require.NoError(tb, writer.Close())
	return &buf, writer.FormDataContentType()
}

func decodeBody[T any](tb testing.TB, rec *httptest.ResponseRecorder) T {
	tb.Helper()
	var out T
	require.NoError(tb, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestRouter_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _, _ := newTestRouter(t, ctrl)
	req := require.New(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	req.Equal(http.StatusOK, rec.Code)
	resp := decodeBody[healthResponse](t, rec)
	req.Equal("healthy", resp.Status)
	req.Equal("med-lab", resp.Service)
}
