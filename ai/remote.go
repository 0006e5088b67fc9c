package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteEmbedder calls an external embedding service over HTTP. The wire
// contract is a minimal JSON POST compatible with common sentence-transformer
// serving layers: {"input": "..."} in, {"embedding": [...]} out.
type RemoteEmbedder struct {
	httpClient *resty.Client
	log        *slog.Logger
	dimension  int
}

type embedRequest struct {
	Input string `json:"input"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func NewRemoteEmbedder(baseURL string, dimension int, log *slog.Logger) *RemoteEmbedder {
	httpClient := resty.New().
		SetDebug(false).
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &RemoteEmbedder{httpClient: httpClient, log: log, dimension: dimension}
}

func (r *RemoteEmbedder) Dimension() int {
	return r.dimension
}

func (r *RemoteEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	result := &embedResponse{}
	res, err := r.httpClient.
		NewRequest().
		SetContext(ctx).
		SetBody(embedRequest{Input: text}).
		SetResult(result).
		Post("/embed")
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("embedding request failed: %s %s (status: %d)",
			res.Request.Method, res.Request.URL, res.StatusCode())
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("embedding service returned an empty vector")
	}
	return result.Embedding, nil
}
