// Package service orchestrates report loading, parsing, and analysis
// for the CLI. Parse- and analysis-level anomalies degrade silently per
// the core semantics; caller-level problems (unreadable, oversized, or
// disallowed files) surface as wrapped errors.
package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oculab/vng/internal/analyzer"
	"github.com/oculab/vng/internal/fileproc"
	"github.com/oculab/vng/internal/parser"
	"github.com/oculab/vng/pkg/config"
	"github.com/oculab/vng/pkg/models"
)

// ErrEmptyContent is returned when a report file has no content.
var ErrEmptyContent = errors.New("report is empty")

// Service wires the parser and analyzer together behind input validation.
type Service struct {
	config   *config.Config
	parser   *parser.Parser
	analyzer *analyzer.Analyzer
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// New creates a new service.
func New(opts ...Option) *Service {
	s := &Service{config: config.LoadOrDefault()}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = parser.New(parser.WithDefaultCategory(s.config.Parse.DefaultCategory))
	s.analyzer = analyzer.New()
	return s
}

// validate applies the configured input limits to a named report.
func (s *Service) validate(name string, size int64) error {
	if !s.config.AllowsExtension(name) {
		return fmt.Errorf("file type of %q not allowed (allowed: %v)", name, s.config.Limits.AllowedExtensions)
	}
	if max := s.config.MaxFileSizeBytes(); size > max {
		return fmt.Errorf("file %q is %s, exceeds limit of %s",
			name, models.FormatFileSize(size), models.FormatFileSize(max))
	}
	return nil
}

// ParseReport validates and parses one report's raw content.
func (s *Service) ParseReport(name string, content []byte) (models.FileReport, error) {
	if len(content) == 0 {
		return models.FileReport{}, fmt.Errorf("parse %s: %w", name, ErrEmptyContent)
	}
	if err := s.validate(name, int64(len(content))); err != nil {
		return models.FileReport{}, fmt.Errorf("parse %s: %w", name, err)
	}

	return models.FileReport{
		Name:       name,
		Categories: s.parser.Parse(string(content)),
		SizeBytes:  int64(len(content)),
		UploadedAt: time.Now(),
	}, nil
}

// LoadReports reads and parses report files concurrently, returning
// reports in path order. Any unreadable or invalid file fails the whole
// load.
func (s *Service) LoadReports(paths []string, onProgress func()) ([]models.FileReport, error) {
	reports, errs := fileproc.MapOrderedWithProgress(paths, func(path string) (models.FileReport, error) {
		content, err := os.ReadFile(path)
		if err != nil {
			return models.FileReport{}, err
		}
		return s.ParseReport(filepath.Base(path), content)
	}, onProgress)
	if errs != nil {
		return nil, fmt.Errorf("loading reports: %w", errs)
	}
	return reports, nil
}

// Analyze compares the given reports. An empty set yields an empty
// analysis rather than an error; the operation is all-or-nothing.
func (s *Service) Analyze(reports []models.FileReport) (*models.Analysis, error) {
	for _, r := range reports {
		if r.Categories == nil {
			return nil, fmt.Errorf("analyze: report %q has no parsed data", r.Name)
		}
	}
	return s.analyzer.Compare(reports), nil
}

// Config returns the active configuration.
func (s *Service) Config() *config.Config {
	return s.config
}
