package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
// It renders the same HTML templates as BrevoSender but delivers through an SMTP relay.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendCustomerQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendAdminQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
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
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendAdminOTPEmail(ctx context.Context, toEmail, code string, expiryMinutes int) error {
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
	return s.send(ctx, toEmail, subjectAdminOTP, content)
}

func (s *SMTPSender) SendStatusUpdateEmail(ctx context.Context, toEmail, customerName, inquiryRef, newStatus string) error {
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
	return s.send(ctx, toEmail, subject, content)
}

var _ Sender = (*SMTPSender)(nil)
