// Package email sends transactional email for the quotation system.
// Two transports are supported: the Brevo HTTP API and direct SMTP.
package email

import (
	"context"
	"html/template"

	"quotation_backend/platform/config"
)

// QuoteLine is one selected service rendered in the quote summary emails.
type QuoteLine struct {
	ServiceName    string
	OptionName     string
	Quantity       int64
	UnitPrice      string
	LineTotal      string
	FlatRate       bool
	HasDocument    bool
	AdditionalInfo string
}

// QuoteEmailData carries everything the quote summary templates need.
type QuoteEmailData struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Country       string
	InquiryRef    string
	Lines         []QuoteLine
	UrgentFee     string
	Urgent        bool
	Total         string
	ProposalType  string
	// ProposalHTML is trusted markup produced by our own proposal generator.
	ProposalHTML template.HTML
}

type Sender interface {
	SendCustomerQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error
	SendAdminQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error
	SendAdminOTPEmail(ctx context.Context, toEmail, code string, expiryMinutes int) error
	SendStatusUpdateEmail(ctx context.Context, toEmail, customerName, inquiryRef, newStatus string) error
}

// NoopSender is used when email delivery is disabled. All sends succeed
// silently so the submission flow never blocks on missing credentials.
type NoopSender struct{}

func (NoopSender) SendCustomerQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
	return nil
}

func (NoopSender) SendAdminQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
	return nil
}

func (NoopSender) SendAdminOTPEmail(ctx context.Context, toEmail, code string, expiryMinutes int) error {
	return nil
}

func (NoopSender) SendStatusUpdateEmail(ctx context.Context, toEmail, customerName, inquiryRef, newStatus string) error {
	return nil
}

// NewSender builds the configured transport. Returns NoopSender when email
// is disabled.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	if cfg.GetEmailTransport() == "smtp" {
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	}

	return NewBrevoSender(cfg), nil
}
