package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quotation_backend/platform/config"
)

// BrevoSender delivers email through the Brevo transactional HTTP API.
type BrevoSender struct {
	apiKey    string
	fromName  string
	fromEmail string
	client    *http.Client
}

type brevoEmailRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

// NewBrevoSender creates a Brevo API sender from email configuration.
func NewBrevoSender(cfg config.EmailConfig) *BrevoSender {
	return &BrevoSender{
		apiKey:    cfg.GetBrevoAPIKey(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *BrevoSender) SendCustomerQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
	subject := fmt.Sprintf(subjectCustomerQuoteFmt, data.InquiryRef)
	content, err := renderEmailTemplate("customer_quote.html", customerQuoteEmailData{
		baseEmailData: baseEmailData{
			Title:      "Your quotation request",
			Heading:    "Thank you for your inquiry",
			Subheading: "We received your request and will be in touch shortly.",
		},
		QuoteEmailData: data,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendAdminQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
	subject := fmt.Sprintf(subjectAdminQuoteFmt, data.InquiryRef, data.CustomerName)
	content, err := renderEmailTemplate("admin_quote.html", adminQuoteEmailData{
		baseEmailData: baseEmailData{
			Title:   "New quotation inquiry",
			Heading: "New quotation inquiry",
		},
		QuoteEmailData: data,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) SendAdminOTPEmail(ctx context.Context, toEmail, code string, expiryMinutes int) error {
	content, err := renderEmailTemplate("admin_otp.html", adminOTPEmailData{
		baseEmailData: baseEmailData{
			Title:   "Your admin login code",
			Heading: "Your admin login code",
		},
		Code:          code,
		ExpiryMinutes: expiryMinutes,
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subjectAdminOTP, content)
}

func (b *BrevoSender) SendStatusUpdateEmail(ctx context.Context, toEmail, customerName, inquiryRef, newStatus string) error {
	subject := fmt.Sprintf(subjectStatusUpdateFmt, inquiryRef)
	content, err := renderEmailTemplate("status_update.html", statusUpdateEmailData{
		baseEmailData: baseEmailData{
			Title:   "Inquiry status update",
			Heading: "Your inquiry has been updated",
		},
		CustomerName: customerName,
		InquiryRef:   inquiryRef,
		StatusLabel:  statusLabel(newStatus),
	})
	if err != nil {
		return err
	}
	return b.send(ctx, toEmail, subject, content)
}

func (b *BrevoSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	payload := brevoEmailRequest{
		Subject:     subject,
		HTMLContent: htmlContent,
	}
	payload.Sender.Name = b.fromName
	payload.Sender.Email = b.fromEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.brevo.com/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data))
	}

	return nil
}

var _ Sender = (*BrevoSender)(nil)
