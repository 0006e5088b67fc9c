package workers

import (
	"context"

	"med-lab/contract"
	"med-lab/errors"
)

// IngestQueue is the in-memory buffer between the upload endpoint and
// the ingestion workers.
type IngestQueue struct {
	jobs chan contract.IngestJob
}

var _ contract.JobSink = (*IngestQueue)(nil)
var _ contract.JobSource = (*IngestQueue)(nil)

func NewIngestQueue(capacity int) *IngestQueue {
	return &IngestQueue{jobs: make(chan contract.IngestJob, capacity)}
}

// Submit never blocks: a full queue pushes back on the caller right
// away instead of holding the upload request open.
func (q *IngestQueue) Submit(ctx context.Context, job contract.IngestJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return errors.ErrQueueFull
	}
}

func (q *IngestQueue) Jobs() <-chan contract.IngestJob {
	return q.jobs
}

// Len reports how many jobs are waiting.
func (q *IngestQueue) Len() int {
	return len(q.jobs)
}

// Close retires the queue. Workers drain what is left and finish, so
// close only after the upload endpoint stopped accepting requests.
func (q *IngestQueue) Close() {
	close(q.jobs)
}
