// Package fileproc provides concurrent, order-preserving file
// processing. Report comparisons treat file order as meaningful, so
// results always come back in input order regardless of which worker
// finished first.
package fileproc

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ProcessingError) Unwrap() error {
	return e.Err
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker count.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// MapOrdered processes files in parallel and returns one result per
// input path, in input order. All files are attempted; failures are
// collected and returned alongside the results that succeeded (the
// result slot for a failed file holds the zero value).
func MapOrdered[T any](files []string, fn func(string) (T, error)) ([]T, *ProcessingErrors) {
	return MapOrderedWithProgress(files, fn, nil)
}

// MapOrderedWithProgress is MapOrdered with an optional progress callback.
func MapOrderedWithProgress[T any](files []string, fn func(string) (T, error), onProgress ProgressFunc) ([]T, *ProcessingErrors) {
	return MapOrderedN(files, 0, fn, onProgress)
}

// MapOrderedN processes files with a configurable worker count.
// If maxWorkers is <= 0, defaults to 2x NumCPU.
func MapOrderedN[T any](files []string, maxWorkers int, fn func(string) (T, error), onProgress ProgressFunc) ([]T, *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, len(files))
	errs := &ProcessingErrors{}

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, path := range files {
		p.Go(func() {
			result, err := fn(path)
			if err != nil {
				errs.Add(path, err)
			} else {
				results[i] = result
			}
			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}
