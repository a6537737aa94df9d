package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// lineKind is the outcome of classifying one trimmed report line.
type lineKind int

const (
	kindIgnored lineKind = iota
	kindValue
	kindHeader
)

// summaryHeaderPrefix marks the findings-summary section header, which
// is skipped rather than treated as a category.
const summaryHeaderPrefix = "Summary of Flagged Findings"

var (
	// valueLineRe matches "Metric Name: 123.45 | FLAG" and
	// "Metric Name: 123.45 ms". The numeric token may still fail to
	// parse (e.g. "1.2.3"), in which case the line is ignored.
	valueLineRe = regexp.MustCompile(`: ([\d.-]+)[\s%a-zA-Z]*?(\| FLAG)?$`)

	// unitSuffixRe strips a trailing parenthesized unit from a metric
	// name, e.g. "Latency (ms)" -> "Latency".
	unitSuffixRe = regexp.MustCompile(`\s*\([^)]+\)$`)
)

// classified holds the parsed parts of a line. Only the fields for the
// detected kind are set.
type classified struct {
	kind     lineKind
	metric   string
	value    float64
	flagged  bool
	category string
}

// classifyLine decides whether a trimmed, non-empty line is a value
// line, a category header, or noise. The value pattern wins over the
// ends-with-colon header rule when a line could match both.
func classifyLine(line string) classified {
	if m := valueLineRe.FindStringSubmatch(line); m != nil && m[1] != "" {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return classified{kind: kindIgnored}
		}

		name := line[:strings.Index(line, ":")]
		name = strings.TrimSpace(unitSuffixRe.ReplaceAllString(strings.TrimSpace(name), ""))

		return classified{
			kind:    kindValue,
			metric:  name,
			value:   value,
			flagged: m[2] != "",
		}
	}

	if strings.HasSuffix(line, ":") {
		if strings.HasPrefix(line, summaryHeaderPrefix) {
			return classified{kind: kindIgnored}
		}
		category := strings.TrimSpace(strings.TrimSuffix(line, ":"))
		category = strings.TrimSpace(strings.TrimSuffix(category, " //"))
		return classified{kind: kindHeader, category: category}
	}

	return classified{kind: kindIgnored}
}
