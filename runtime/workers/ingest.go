package workers

import (
	"context"
	"log/slog"
	"time"

	"med-lab/contract"
	"med-lab/observability"
	"med-lab/services"
)

// IngestWorker drains the upload queue and turns each job into stored
// chunks. Several instances can run side by side on the same queue.
type IngestWorker struct {
	log        *slog.Logger
	documents  services.IDocumentService
	jobs       contract.JobSource
	monitoring *observability.Monitor
	timeout    time.Duration
}

var _ contract.Worker = (*IngestWorker)(nil)

func NewIngestWorker(
	log *slog.Logger,
	documents services.IDocumentService,
	jobs contract.JobSource,
	monitoring *observability.Monitor,
	timeout time.Duration,
) *IngestWorker {
	return &IngestWorker{
		log:        log,
		documents:  documents,
		jobs:       jobs,
		monitoring: monitoring,
		timeout:    timeout,
	}
}

func (w *IngestWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job, ok := <-w.jobs.Jobs():
			if !ok {
				w.log.Info("Upload queue closed")
				return nil
			}
			w.process(ctx, job)
		}
	}
}

// process ingests one upload. A failed job is logged and dropped; it
// never stops the worker.
func (w *IngestWorker) process(ctx context.Context, job contract.IngestJob) {
	start := time.Now()

	// A dedicated context per job keeps one slow upload from blocking the
	// queue behind it forever.
	jobCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	firstChunk, chunks, err := w.documents.Ingest(jobCtx, job.Data, job.Filename)
	if err != nil {
		w.monitoring.IncrIngestionFailures()
		w.monitoring.RecordIngestion(job.ID.String(), job.Filename, "failed", 0)
		w.log.Error("Ingestion failed",
			"job", job.ID,
			"source", job.Filename,
			"error", err)
		return
	}

	w.monitoring.IncrDocumentsIngested()
	w.monitoring.AddChunksStored(uint64(chunks))
	w.monitoring.RecordIngestion(job.ID.String(), job.Filename, "stored", chunks)
	w.log.Info("Ingestion finished",
		"job", job.ID,
		"source", job.Filename,
		"first_chunk", firstChunk,
		"chunks", chunks,
		"duration", time.Since(start))
}
