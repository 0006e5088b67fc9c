package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"

	"med-lab/ai"
	"med-lab/domain/document"
	"med-lab/domain/imaging"
	"med-lab/httpserver"
	"med-lab/internal"
	"med-lab/internal/logs"
	"med-lab/observability"
	"med-lab/repositories"
	"med-lab/runtime/workers"
	"med-lab/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so that every deferred cleanup executes
// before the process exits.
func run() error {
	// 1. Configuration & Logger
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage (BadgerDB for chunks and messages, Bluge for full text)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing Bluge index...")
		_ = writer.Close()
	}()

	// 3. Domain components
	tunables := imaging.DefaultTunables()
	if config.TunablesPath != "" {
		if tunables, err = imaging.LoadTunables(config.TunablesPath); err != nil {
			return fmt.Errorf("tunables loading failed: %w", err)
		}
	}
	classifier, err := imaging.NewClassifier(log, tunables)
	if err != nil {
		return fmt.Errorf("classifier setup failed: %w", err)
	}

	splitter, err := document.NewSplitter(config.ChunkSize, config.ChunkOverlap)
	if err != nil {
		return fmt.Errorf("splitter setup failed: %w", err)
	}

	var embedder ai.IEmbedder
	if config.EmbeddingEndpoint != "" {
		embedder = ai.NewRemoteEmbedder(config.EmbeddingEndpoint, config.EmbeddingDimension, log)
	} else {
		embedder = ai.NewHashingEmbedder(config.EmbeddingDimension)
	}

	var llm ai.ILLM
	if config.OpenAIAPIKey != "" {
		llm = ai.NewLLMClient(config.OpenAIAPIKey, config.OpenAIModel, config.OpenAIBaseURL)
	} else {
		log.Warn("No language model configured, chat answers will carry raw context")
	}

	// 4. Repositories & Services
	chunkRepository := repositories.NewChunkRepository(db, writer, log, config.LimitChunks, config.SearchPageSize)
	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)

	documentService := services.NewDocumentService(classifier, splitter, embedder, chunkRepository, log)
	chatService := services.NewChatService(documentService, llm, messageRepository, log)

	// 5. Upload queue & supervised workers
	queue := workers.NewIngestQueue(config.QueueCapacity)
	monitoring := observability.NewMonitor(log, queue.Len, config.QueueCapacity)

	sup := workers.NewSupervisor(log)
	sup.Add(monitoring)
	for i := 0; i < config.NumberOfWorkers; i++ {
		sup.Add(workers.NewIngestWorker(log, documentService, queue, monitoring, config.IngestTimeout))
	}

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 7. HTTP server with the debug pages mounted alongside the API
	statsProvider := func() map[string]any {
		stats := monitoring.GetLatest()
		return map[string]any{
			"documents_ingested": stats.DocumentsIngested,
			"chunks_stored":      stats.ChunksStored,
			"ingestion_failures": stats.IngestionFailures,
			"queue_depth":        stats.QueueDepth,
			"queue_capacity":     stats.QueueCapacity,
			"alloc_mem_mb":       stats.AllocMemMb,
			"num_gc":             stats.NumGC,
			"recent_ingestions":  stats.RecentIngestions,
		}
	}
	debug := internal.DebugHandler(db, internal.DefaultMapper, statsProvider)

	handler := httpserver.NewRouter(log, documentService, chatService, queue, config.MaxUploadBytes, debug)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup. Queued uploads that have not been picked up yet
	// are dropped; the store only holds fully ingested documents.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}

	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}
