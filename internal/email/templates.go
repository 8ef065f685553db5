package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type customerQuoteEmailData struct {
	baseEmailData
	QuoteEmailData
}

type adminQuoteEmailData struct {
	baseEmailData
	QuoteEmailData
}

type adminOTPEmailData struct {
	baseEmailData
	Code          string
	ExpiryMinutes int
}

type statusUpdateEmailData struct {
	baseEmailData
	CustomerName string
	InquiryRef   string
	StatusLabel  string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// FormatCurrencyUSD renders a cent amount as a dollar string for templates.
func FormatCurrencyUSD(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// statusLabels maps machine statuses to customer-facing wording.
var statusLabels = map[string]string{
	"pending":     "Pending review",
	"in_progress": "In progress",
	"completed":   "Completed",
	"cancelled":   "Cancelled",
}

func statusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}
