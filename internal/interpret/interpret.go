// Package interpret builds a clinical-interpretation prompt from
// analysis results and sends it to a chat-completion API. Prompt
// construction is pure; only Interpret touches the network.
package interpret

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oculab/vng/pkg/models"
	openai "github.com/sashabaranov/go-openai"
)

const systemPromptTemplate = `Act as an expert clinical audiologist specializing in vestibular disorders. Your task is to provide a high-level clinical interpretation of VNG test data. The user will provide a summary of %d tests compared metric by metric.

Your response MUST follow this structure:
1. Executive Summary (TL;DR): 2-3 sentences covering the most significant findings.
2. Detailed Analysis: acknowledge the number of tests compared; comment on each metric's values; note any flagged values as outside the normative range in that report; for 2 tests comment on the change (delta and percent change); for 3+ tests comment on the variability (standard deviation).
3. Overall Summary: synthesize the detailed findings.
4. Disclaimer: conclude with a clear statement that this is not medical advice and a formal diagnosis requires a qualified healthcare professional.`

// Interpreter calls a chat-completion API for clinical interpretation.
type Interpreter struct {
	client     *openai.Client
	model      string
	maxMetrics int
	maxRetries int
	backoff    time.Duration
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithModel overrides the chat model.
func WithModel(model string) Option {
	return func(i *Interpreter) {
		if model != "" {
			i.model = model
		}
	}
}

// WithMaxMetrics caps how many metrics are included in the prompt.
func WithMaxMetrics(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxMetrics = n
		}
	}
}

// WithMaxRetries sets the number of attempts for transient failures.
func WithMaxRetries(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxRetries = n
		}
	}
}

// New creates an interpreter for the given API key.
func New(apiKey string, opts ...Option) *Interpreter {
	i := &Interpreter{
		client:     openai.NewClient(apiKey),
		model:      openai.GPT4o,
		maxMetrics: 15,
		maxRetries: 3,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// BuildPrompt constructs the system and user prompts from an analysis.
// Categories and metrics are emitted in sorted order so the prompt is
// deterministic, capped at maxMetrics entries.
func BuildPrompt(a *models.Analysis, maxMetrics int) (system, user string) {
	system = fmt.Sprintf(systemPromptTemplate, a.Summary.FileCount)

	var b strings.Builder
	count := 0
	truncated := false

	categories := make([]string, 0, len(a.ByCategory))
	for category := range a.ByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		if count >= maxMetrics {
			truncated = true
			break
		}
		fmt.Fprintf(&b, "\nCategory: %q\n", category)

		metrics := make([]string, 0, len(a.ByCategory[category]))
		for metric := range a.ByCategory[category] {
			metrics = append(metrics, metric)
		}
		sort.Strings(metrics)

		for _, metric := range metrics {
			if count >= maxMetrics {
				truncated = true
				break
			}
			series := a.ByCategory[category][metric]

			values := make([]string, len(series.Values))
			for i, v := range series.Values {
				values[i] = fmt.Sprintf("%.2f", v)
			}
			fmt.Fprintf(&b, "  - Test: %q\n", metric)
			fmt.Fprintf(&b, "    - Values: [%s]\n", strings.Join(values, ", "))

			var flagged []string
			for i, f := range series.Flags {
				if f {
					flagged = append(flagged, fmt.Sprintf("File %d: Flagged", i+1))
				}
			}
			if len(flagged) > 0 {
				fmt.Fprintf(&b, "    - Flags: [%s]\n", strings.Join(flagged, ", "))
			}

			if series.Delta != nil {
				fmt.Fprintf(&b, "    - Abs. Change (Delta): %.2f\n", *series.Delta)
			}
			if series.PercentChange != nil {
				fmt.Fprintf(&b, "    - Perc. Change: %.2f%%\n", *series.PercentChange)
			}
			if series.StdDev != nil {
				fmt.Fprintf(&b, "    - Standard Deviation: %.2f\n", *series.StdDev)
			}
			count++
		}
	}

	if truncated {
		b.WriteString("\n... and more ...\n")
	}

	user = fmt.Sprintf(`I have analyzed %d VNG reports. Here is a summary of the metrics that were common across all files:
%s
Please provide a high-level clinical interpretation of these findings. Focus on whether the changes (for 2 tests) or variability (for 3+ tests) are clinically significant. Pay attention to any 'Flagged' items, as these were outside normative ranges on the report.`,
		a.Summary.FileCount, b.String())

	return system, user
}

// Interpret sends the analysis summary for interpretation, retrying
// transient failures with exponential backoff.
func (i *Interpreter) Interpret(ctx context.Context, a *models.Analysis) (string, error) {
	system, user := BuildPrompt(a, i.maxMetrics)

	req := openai.ChatCompletionRequest{
		Model: i.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	var lastErr error
	delay := i.backoff
	for attempt := 0; attempt < i.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		resp, err := i.client.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			lastErr = fmt.Errorf("empty completion response")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("interpretation failed after %d attempts: %w", i.maxRetries, lastErr)
}
