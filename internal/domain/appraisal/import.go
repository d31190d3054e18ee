package appraisal

type FailureKind string

const (
	FailurePermission FailureKind = "permission"
	FailureGeneric    FailureKind = "generic"
)

type ChunkFailure struct {
	Chunk   int         `json:"chunk"`
	Rows    int         `json:"rows"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// ImportSummary aggregates one import run. Total counts the rows left after
// deduplication; Skipped counts rows the store already held by the time
// their chunk was written. A finished run has Successful+Failed+Skipped
// equal to Total.
type ImportSummary struct {
	Total         int            `json:"total"`
	Successful    int            `json:"successful"`
	Failed        int            `json:"failed"`
	Warnings      int            `json:"warnings"`
	Duplicates    int            `json:"duplicates"`
	Invalid       int            `json:"invalid"`
	Skipped       int            `json:"skipped"`
	Message       string         `json:"message,omitempty"`
	ChunkFailures []ChunkFailure `json:"chunk_failures,omitempty"`
}

func (s ImportSummary) Attempted() int {
	return s.Successful + s.Failed + s.Skipped
}
