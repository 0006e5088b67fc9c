package main

import "time"

type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
	Host           string `env:"HOST,default=localhost"`
	Port           int    `env:"PORT,default=8080"`

	NumberOfWorkers int           `env:"NUMBER_OF_WORKERS,default=2"`
	QueueCapacity   int           `env:"QUEUE_CAPACITY,default=64"`
	IngestTimeout   time.Duration `env:"INGEST_TIMEOUT,default=2m"`
	MaxUploadBytes  int64         `env:"MAX_UPLOAD_BYTES,default=26214400"`

	ChunkSize      int  `env:"CHUNK_SIZE,default=1000"`
	ChunkOverlap   int  `env:"CHUNK_OVERLAP,default=200"`
	LimitChunks    *int `env:"LIMIT_CHUNKS"`
	LimitMessages  *int `env:"LIMIT_MESSAGES"`
	SearchPageSize int  `env:"SEARCH_PAGE_SIZE,default=10"`

	// Optional JSON file overriding the classifier thresholds.
	TunablesPath string `env:"CLASSIFIER_TUNABLES_PATH"`

	// When no endpoint is set the local hashing embedder is used.
	EmbeddingEndpoint  string `env:"EMBEDDING_ENDPOINT"`
	EmbeddingDimension int    `env:"EMBEDDING_DIMENSION,default=256"`

	// Chat falls back to returning raw context when no key is set.
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
}
