//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IngestJob is one uploaded file waiting to be processed into chunks.
type IngestJob struct {
	ID       uuid.UUID
	Filename string
	Data     []byte
	QueuedAt time.Time
}

// JobSink receives ingestion jobs from the transport layer.
type JobSink interface {
	Submit(ctx context.Context, job IngestJob) error
}

// JobSource hands queued jobs to the ingestion workers.
type JobSource interface {
	Jobs() <-chan IngestJob
}
