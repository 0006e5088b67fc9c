package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoteEmbedder_Success(t *testing.T) {
	req := require.New(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/embed", r.URL.Path)

		var body embedRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("pulmonary nodule follow-up", body.Input)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"embedding": [0.1, 0.2, 0.3]}`))
	}))
	defer ts.Close()

	embedder := NewRemoteEmbedder(ts.URL, 3, slog.Default())
	req.Equal(3, embedder.Dimension())

	vec, err := embedder.Embed(context.Background(), "pulmonary nodule follow-up")
	req.NoError(err)
	req.Equal([]float64{0.1, 0.2, 0.3}, vec)
}

func TestRemoteEmbedder_ServerError(t *testing.T) {
	req := require.New(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	embedder := NewRemoteEmbedder(ts.URL, 3, slog.Default())

	_, err := embedder.Embed(context.Background(), "anything")
	req.Error(err)
	req.Contains(err.Error(), "status: 500")
}

func TestRemoteEmbedder_EmptyVector(t *testing.T) {
	req := require.New(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"embedding": []}`))
	}))
	defer ts.Close()

	embedder := NewRemoteEmbedder(ts.URL, 3, slog.Default())

	_, err := embedder.Embed(context.Background(), "anything")
	req.Error(err)
	req.Contains(err.Error(), "empty vector")
}
