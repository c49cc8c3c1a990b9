package ascii

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/tabwriter"
	"text/template"
	"time"
	"unicode/utf8"

	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/mimi1vx/osc-plugin-qam/internal/incident"
)

const (
	noneString       = "None"
	boxWidth         = 100
	boxTitlePadding  = 5
	boxBottomPadding = 2
)

var (
	//go:embed reports.tmpl
	reportsTemplate string

	//go:embed reports_verbose.tmpl
	reportsVerboseTemplate string

	//go:embed comments.tmpl
	commentsTemplate string
)

// Formatter renders workflow results for the terminal.
type Formatter struct {
	incidents *incident.Resolver
}

// NewFormatter creates a formatter using the given incident resolver.
func NewFormatter(incidents *incident.Resolver) *Formatter {
	return &Formatter{incidents: incidents}
}

// ReportView is the display form of one request with its test report.
type ReportView struct {
	ReqID            string
	Rating           string
	Priority         string
	Category         string
	Creator          string
	SRCRPMs          []string
	Products         []string
	Bugs             []string
	IncidentURL      string
	Origin           []string
	AssignedRoles    []string
	UnassignedGroups []string
	TestPlanReviewer string
	ReportURL        string
	Comment          string
}

// ReportsData holds data for the report listing templates.
type ReportsData struct {
	Reports   []*ReportView
	Timestamp time.Time
}

// CommentsData holds data for the comment listing template.
type CommentsData struct {
	Comments []domain.Comment
}

// FormatReports formats a request listing. Verbose output includes the
// review roles and report metadata.
func (f *Formatter) FormatReports(reports []*app.Report, verbose bool) (string, error) {
	views := make([]*ReportView, 0, len(reports))
	for _, report := range reports {
		view, err := f.toView(report, verbose)
		if err != nil {
			return "", err
		}
		views = append(views, view)
	}

	templateStr := reportsTemplate
	if verbose {
		templateStr = reportsVerboseTemplate
	}

	return executeTemplate("reports", templateStr, ReportsData{
		Reports:   views,
		Timestamp: time.Now(),
	})
}

// FormatReportsTabular formats a request listing as one aligned row
// per request, for piping into other tools.
func (f *Formatter) FormatReportsTabular(reports []*app.Report) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ReqID\tRating\tPriority\tSRCRPMs\tProducts\tIncident")
	for _, report := range reports {
		view, err := f.toView(report, false)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			view.ReqID,
			view.Rating,
			view.Priority,
			strings.Join(view.SRCRPMs, ","),
			strings.Join(view.Products, ","),
			view.IncidentURL,
		)
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush table: %w", err)
	}

	return buf.String(), nil
}

// FormatComments formats the comments attached to a request.
func (f *Formatter) FormatComments(comments []domain.Comment) (string, error) {
	return executeTemplate("comments", commentsTemplate, CommentsData{Comments: comments})
}

func (f *Formatter) toView(report *app.Report, verbose bool) (*ReportView, error) {
	incidentURL, err := f.incidents.MakeURL(report.Request.SrcProject)
	if err != nil {
		return nil, err
	}

	view := &ReportView{
		ReqID:       report.Request.ReqID,
		Rating:      report.Template.Entries.Rating.String(),
		Priority:    report.Priority.String(),
		SRCRPMs:     report.Template.Entries.SRCRPMs,
		Products:    report.Template.Entries.Products,
		IncidentURL: incidentURL,
		Origin:      report.Origin,
	}

	if !verbose {
		return view, nil
	}

	view.Category = report.Template.Entries.Category
	view.Creator = report.Request.Creator
	view.Bugs = report.Template.Entries.Bugs
	view.TestPlanReviewer = report.Template.Entries.TestPlanReviewer
	view.ReportURL = report.Template.ReportURL
	view.Comment = report.Template.Entries.Comment

	for _, role := range report.Request.AssignedRoles() {
		view.AssignedRoles = append(view.AssignedRoles,
			fmt.Sprintf("%s (%s)", role.User.Login, role.Group.Name))
	}
	for _, review := range report.Request.OpenGroupReviews() {
		view.UnassignedGroups = append(view.UnassignedGroups, review.ByGroup)
	}

	return view, nil
}

func executeTemplate(name, templateStr string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatTime": formatTime,
		"orNone": func(s string) string {
			if s == "" {
				return noneString
			}

			return s
		},
		"joinOrNone": func(xs []string) string {
			if len(xs) == 0 {
				return noneString
			}

			return strings.Join(xs, ", ")
		},
		"bold": func(text string) string {
			return "\033[1m" + text + "\033[0m"
		},
		"formatBoxTitle":  formatBoxTitle,
		"formatBoxBottom": formatBoxBottom,
	}
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func formatBoxTitle(title string) string {
	titleMax := boxWidth - boxTitlePadding

	// Strip ANSI escape codes for width calculation. Widths count
	// runes, not bytes, so non-ASCII titles keep the box aligned.
	cleanTitle := title
	cleanTitle = strings.ReplaceAll(cleanTitle, "\033[1m", "")
	cleanTitle = strings.ReplaceAll(cleanTitle, "\033[0m", "")

	width := utf8.RuneCountInString(cleanTitle)
	if width > titleMax {
		title = string([]rune(title)[:titleMax])
		width = titleMax
	}
	dashCount := boxWidth - width - boxTitlePadding
	if dashCount < 0 {
		dashCount = 0
	}

	return "┌─ " + title + " " + strings.Repeat("─", dashCount) + "┐"
}

func formatBoxBottom() string {
	return "└" + strings.Repeat("─", boxWidth-boxBottomPadding) + "┘"
}
