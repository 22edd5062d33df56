package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/stacktracker/intelgen/internal/types"
)

// RenderedMessage is an email ready for delivery.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// HTMLEmailRenderer renders the run summary as an HTML email with a plain
// text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces the summary email with an HTML body and plain text alternative.
func (r *HTMLEmailRenderer) Render(s Summary) (*RenderedMessage, error) {
	subject := fmt.Sprintf("Stack Tracker Gold: %d briefs, %d vault rows (%s)", s.BriefsInserted, s.VaultInserted, s.Date)

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, s); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(s),
		HTML:    htmlBuf.String(),
	}, nil
}

// Metals exposes the fixed metal order to the template.
func (Summary) Metals() []string {
	return types.Metals
}

// renderPlainText produces a readable plain text version for email clients
// that don't support HTML.
func renderPlainText(s Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Stack Tracker Gold — Daily Intelligence (%s)\n", s.Date))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(fmt.Sprintf("Intelligence briefs: %d inserted\n\n", s.BriefsInserted))
	for _, b := range s.Briefs {
		sb.WriteString(fmt.Sprintf("• [%d] %s (%s)\n", b.RelevanceScore, b.Title, b.Category))
		if b.Summary != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", b.Summary))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("VAULT DATA\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	for _, metal := range types.Metals {
		sb.WriteString(fmt.Sprintf("%10s: %s\n", metal, s.VaultStatus[metal]))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("API calls: %d/%d (~$%.2f)\n", s.CallsUsed, s.CallBudget, s.EstimatedCost()))
	sb.WriteString(fmt.Sprintf("Runtime: %.1fs\n", s.Elapsed.Seconds()))

	return sb.String()
}
