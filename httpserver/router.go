// Package httpserver exposes the document and chat services over a JSON API.
package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"med-lab/contract"
	"med-lab/errors"
	"med-lab/services"
)

var validate = validator.New()

type Router struct {
	documents      services.IDocumentService
	chat           services.IChatService
	uploads        contract.JobSink
	maxUploadBytes int64
	log            *slog.Logger
}

// NewRouter builds the API surface. Uploads are queued through the sink and
// processed by the ingestion workers; everything else answers synchronously.
// The debug handler is mounted under /debug when provided.
func NewRouter(log *slog.Logger, documents services.IDocumentService, chat services.IChatService,
	uploads contract.JobSink, maxUploadBytes int64, debug http.Handler) http.Handler {
	rt := &Router{
		documents:      documents,
		chat:           chat,
		uploads:        uploads,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	mux.Use(RequestLogger(log))

	mux.Route("/api", func(api chi.Router) {
		api.Get("/health", rt.wrap(rt.handleHealth))

		api.Post("/documents", rt.wrap(rt.handleUpload))
		api.Get("/documents", rt.wrap(rt.handleListDocuments))
		api.Delete("/documents/{source}", rt.wrap(rt.handleDeleteDocument))
		api.Post("/analyze", rt.wrap(rt.handleAnalyze))
		api.Get("/search", rt.wrap(rt.handleSearch))

		api.Post("/chat", rt.wrap(rt.handleChat))
		api.Get("/chat/{conversation}/history", rt.wrap(rt.handleHistory))
	})

	if debug != nil {
		mux.Mount("/debug", debug)
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

type errorResponse struct {
	Error string `json:"error"`
}

func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status := errors.MapToHTTPStatus(err)
			if status >= http.StatusInternalServerError {
				rt.log.Error("Request failed",
					"method", req.Method,
					"path", req.URL.Path,
					"error", err)
			}
			_ = respondJSON(w, status, errorResponse{Error: err.Error()})
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
