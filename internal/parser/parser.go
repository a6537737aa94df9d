// Package parser converts the raw text of a diagnostic report into the
// structured category/metric map consumed by the analyzer. Parsing is
// line-oriented and lossy: lines that match neither the value grammar
// nor the header grammar are skipped, never reported as errors.
package parser

import (
	"strings"

	"github.com/oculab/vng/pkg/models"
)

// DefaultCategory is the category assigned to value lines that appear
// before any header.
const DefaultCategory = "General"

// Parser turns report text into a models.CategoryMap.
type Parser struct {
	defaultCategory string
}

// Option configures a Parser.
type Option func(*Parser)

// WithDefaultCategory overrides the category used before the first header.
func WithDefaultCategory(name string) Option {
	return func(p *Parser) {
		if name != "" {
			p.defaultCategory = name
		}
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{defaultCategory: DefaultCategory}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts raw report text into a category/metric map. A header
// line moves the category cursor; a value line stores a reading under
// the current category, overwriting any earlier reading for the same
// (category, metric) pair. Empty or unrecognizable input yields an
// empty map.
func (p *Parser) Parse(text string) models.CategoryMap {
	data := make(models.CategoryMap)
	if text == "" {
		return data
	}

	current := p.defaultCategory
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch c := classifyLine(trimmed); c.kind {
		case kindValue:
			data.Set(current, c.metric, models.MetricReading{
				Value:   c.value,
				Flagged: c.flagged,
			})
		case kindHeader:
			current = c.category
		}
	}

	return data
}
