// Package session holds the working set of parsed reports for a single
// comparison session. The store is in-memory only and sized for one
// user; analysis results are cached and recomputed whenever the file
// set changes.
package session

import (
	"encoding/hex"

	"github.com/oculab/vng/internal/analyzer"
	"github.com/oculab/vng/pkg/models"
	"github.com/zeebo/blake3"
)

// Store keeps parsed reports in upload order and lazily computes the
// cross-file analysis over them.
type Store struct {
	reports  []models.FileReport
	digests  map[string]string // content digest -> report name
	analyzer *analyzer.Analyzer
	cached   *models.Analysis
}

// New creates an empty session store.
func New() *Store {
	return &Store{
		digests:  make(map[string]string),
		analyzer: analyzer.New(),
	}
}

// digest computes a BLAKE3 content digest as a hex string.
func digest(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Add appends a report to the session unless a report with identical
// raw content is already present. It returns false for duplicates.
func (s *Store) Add(report models.FileReport, rawContent []byte) bool {
	d := digest(rawContent)
	if _, ok := s.digests[d]; ok {
		return false
	}
	s.digests[d] = report.Name
	s.reports = append(s.reports, report)
	s.cached = nil
	return true
}

// Remove drops the first report with the given name and returns whether
// one was removed.
func (s *Store) Remove(name string) bool {
	for i, r := range s.reports {
		if r.Name != name {
			continue
		}
		s.reports = append(s.reports[:i], s.reports[i+1:]...)
		for d, n := range s.digests {
			if n == name {
				delete(s.digests, d)
				break
			}
		}
		s.cached = nil
		return true
	}
	return false
}

// Clear removes all reports and any cached analysis.
func (s *Store) Clear() {
	s.reports = nil
	s.digests = make(map[string]string)
	s.cached = nil
}

// Reports returns the current reports in upload order.
func (s *Store) Reports() []models.FileReport {
	return s.reports
}

// Len returns the number of reports in the session.
func (s *Store) Len() int {
	return len(s.reports)
}

// Analysis returns the comparison over the current report set,
// recomputing it only when the set has changed since the last call.
func (s *Store) Analysis() *models.Analysis {
	if s.cached == nil {
		s.cached = s.analyzer.Compare(s.reports)
	}
	return s.cached
}
