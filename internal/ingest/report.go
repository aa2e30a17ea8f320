package ingest

import "sync"

// Failure records why one document could not be ingested.
type Failure struct {
	Source string
	Err    error
}

// Report summarizes one ingestion run. Per-document failures never abort the
// batch; they accumulate here instead.
type Report struct {
	mu       sync.Mutex
	Indexed  int
	Skipped  int
	Chunks   int
	Failures []Failure
}

// Failed returns the number of documents that could not be ingested.
func (r *Report) Failed() int {
	return len(r.Failures)
}

func (r *Report) addIndexed(chunks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Indexed++
	r.Chunks += chunks
}

func (r *Report) addSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Skipped++
}

func (r *Report) addFailure(source string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, Failure{Source: source, Err: err})
}
