package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = `Products: SLE-SERVER 11-SP3 (i386, ia64, ppc64, s390x, x86_64), SLE-DESKTOP 11-SP3 (i386, x86_64)
Category: recommended
Rating: low
Packages: glibc, glibc-devel, glibc-html
SRCRPMs: glibc, glibc-devel
Bugs: 883410, 905468
Test Plan Reviewer: anonymous
comment: NONE
SUMMARY: PASSED
Testplatform: base=sles(major=11,minor=sp3);arch=[i386,x86_64]
#############################
Test results by product-arch:
SERVER 11-SP3 (i386): ok
`

func TestParseSRCRPMs(t *testing.T) {
	entries := Parse(sampleLog)

	assert.Equal(t, []string{"glibc", "glibc-devel"}, entries.SRCRPMs)
}

func TestParsePackages(t *testing.T) {
	entries := Parse(sampleLog)

	assert.Equal(t, []string{"glibc", "glibc-devel", "glibc-html"}, entries.Packages)
}

func TestParseProducts(t *testing.T) {
	entries := Parse(sampleLog)

	assert.Equal(t, []string{
		"SERVER 11-SP3 (i386, ia64, ppc64, s390x, x86_64)",
		"DESKTOP 11-SP3 (i386, x86_64)",
	}, entries.Products)
}

func TestParseProductsStripsPrefixOnce(t *testing.T) {
	entries := Parse("Products: SLE-PSLE-SP3 (i386)")

	assert.Equal(t, []string{"PSLE-SP3 (i386)"}, entries.Products)
}

func TestParseStopsAtResultsSection(t *testing.T) {
	entries := Parse(sampleLog)

	_, ok := entries.Extra["SERVER 11-SP3 (i386)"]
	assert.False(t, ok)
	assert.Contains(t, entries.Keys, "Testplatform")
	assert.Equal(t, "base=sles(major=11,minor=sp3);arch=[i386,x86_64]", entries.Extra["Testplatform"])
}

func TestParseCommentNoneIsEmpty(t *testing.T) {
	entries := Parse(sampleLog)

	assert.Empty(t, entries.Comment)
}

func TestParseMultilineComment(t *testing.T) {
	log := "comment: the update breaks the\nkernel module build\nSUMMARY: FAILED"

	entries := Parse(log)

	assert.Equal(t, "the update breaks the\nkernel module build", entries.Comment)
	assert.Equal(t, "FAILED", entries.Summary)
}

func TestParseSkipsMalformedLines(t *testing.T) {
	entries := Parse("just some text\nRating: moderate")

	assert.Equal(t, NewRating("moderate"), entries.Rating)
}

func TestRatingOrdering(t *testing.T) {
	tests := []struct {
		name   string
		lower  Rating
		higher Rating
	}{
		{name: "critical before important", lower: NewRating("critical"), higher: NewRating("important")},
		{name: "important before moderate", lower: NewRating("important"), higher: NewRating("moderate")},
		{name: "moderate before low", lower: NewRating("moderate"), higher: NewRating("low")},
		{name: "low before absent", lower: NewRating("low"), higher: NewRating("")},
		{name: "absent before unparseable", lower: NewRating(""), higher: NewRating("bogus")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.lower.Less(tt.higher))
			assert.False(t, tt.higher.Less(tt.lower))
		})
	}
}

func TestTemplateStatus(t *testing.T) {
	tests := []struct {
		name     string
		log      string
		expected Status
	}{
		{name: "passed", log: "SUMMARY: PASSED", expected: StatusPassed},
		{name: "failed", log: "SUMMARY: FAILED", expected: StatusFailed},
		{name: "lowercase failed", log: "SUMMARY: failed", expected: StatusFailed},
		{name: "missing summary", log: "Rating: low", expected: StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := New(nil, tt.log, "", "")
			assert.Equal(t, tt.expected, template.Status())
		})
	}
}

func TestTemplateFailedGate(t *testing.T) {
	passed := New(nil, "SUMMARY: PASSED", "http://example.com/log", "")

	err := passed.Failed()

	require.Error(t, err)
	assert.ErrorContains(t, err, "FAILED")

	failed := New(nil, "SUMMARY: FAILED", "", "")
	require.NoError(t, failed.Failed())
}

func TestTemplateTestPlanReviewer(t *testing.T) {
	singular := New(nil, "Test Plan Reviewer: anonymous", "", "")
	plural := New(nil, "Test Plan Reviewers: anonymous", "", "")
	missing := New(nil, "SUMMARY: PASSED", "", "")

	reviewer, err := singular.TestPlanReviewer()
	require.NoError(t, err)
	assert.Equal(t, "anonymous", reviewer)

	reviewer, err = plural.TestPlanReviewer()
	require.NoError(t, err)
	assert.Equal(t, "anonymous", reviewer)

	_, err = missing.TestPlanReviewer()
	require.Error(t, err)
}

func TestTestPlanReviewerPluralWins(t *testing.T) {
	both := New(nil, "Test Plan Reviewer: someone\nTest Plan Reviewers: anonymous", "", "")

	reviewer, err := both.TestPlanReviewer()

	require.NoError(t, err)
	assert.Equal(t, "anonymous", reviewer)
}
