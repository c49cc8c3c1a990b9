package report

import (
	"regexp"
	"strings"
)

// Markers that introduce the per-product results section of a report.
// Header parsing stops there; everything after is out of scope.
const (
	resultsMarker    = "Test results by"
	sectionSeparator = "#############################"
)

var slePrefix = regexp.MustCompile(`^SLE-`)

// LogEntries is the parsed header of a test report. Known headers are
// materialized into typed fields; everything else lands in Extra.
// Keys preserves the order headers were encountered in.
type LogEntries struct {
	Summary          string
	Comment          string
	Category         string
	Rating           Rating
	Packages         []string
	SRCRPMs          []string
	Bugs             []string
	Products         []string
	TestPlanReviewer string
	Extra            map[string]string
	Keys             []string
}

// Parse reads the header block of a test report log. Header lines have
// the form "Key: Value"; lines without a colon continue the previous
// header's value; anything else is skipped without failing the parse.
func Parse(log string) *LogEntries {
	raw := make(map[string]string)
	var keys []string
	currentKey := ""

	for _, line := range strings.Split(log, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, sectionSeparator) || strings.HasPrefix(trimmed, resultsMarker) {
			break
		}
		if trimmed == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			// Continuation of a multi-line value, e.g. a comment
			// spanning several lines.
			if currentKey != "" {
				raw[currentKey] += "\n" + trimmed
			}

			continue
		}

		if _, seen := raw[key]; !seen {
			keys = append(keys, key)
		}
		raw[key] = strings.TrimSpace(value)
		currentKey = key
	}

	return typedEntries(raw, keys)
}

func typedEntries(raw map[string]string, keys []string) *LogEntries {
	entries := &LogEntries{
		Extra: make(map[string]string),
		Keys:  keys,
	}

	for key, value := range raw {
		switch key {
		case "SUMMARY":
			entries.Summary = value
		case "comment":
			if value != "NONE" {
				entries.Comment = value
			}
		case "Category":
			entries.Category = value
		case "Rating":
			entries.Rating = NewRating(value)
		case "Packages":
			entries.Packages = splitComma(value)
		case "SRCRPMs":
			entries.SRCRPMs = splitComma(value)
		case "Bugs":
			entries.Bugs = splitComma(value)
		case "Products":
			entries.Products = splitProducts(value)
		case "Test Plan Reviewer", "Test Plan Reviewers":
			// Precedence is resolved below, outside map order.
		default:
			entries.Extra[key] = value
		}
	}

	// The plural header wins when a report carries both spellings.
	if value, ok := raw["Test Plan Reviewers"]; ok {
		entries.TestPlanReviewer = value
	} else if value, ok := raw["Test Plan Reviewer"]; ok {
		entries.TestPlanReviewer = value
	}

	return entries
}

// splitComma parses a comma-separated header value into a trimmed list.
func splitComma(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		result = append(result, strings.TrimSpace(part))
	}

	return result
}

// splitProducts splits a product list on the closing parenthesis of
// each architecture list, so commas inside the parentheses survive.
// The SLE- vendor prefix is stripped once per entry.
func splitProducts(value string) []string {
	parts := strings.Split(value, "),")
	products := make([]string, 0, len(parts))
	for _, part := range parts {
		product := strings.TrimSpace(part)
		if product == "" {
			continue
		}
		if !strings.HasSuffix(product, ")") {
			product += ")"
		}
		products = append(products, slePrefix.ReplaceAllString(product, ""))
	}

	return products
}
