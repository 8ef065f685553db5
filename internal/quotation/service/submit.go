package service

import (
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"quotation_backend/internal/email"
	"quotation_backend/internal/proposal"
	"quotation_backend/internal/quotation/domain"
	"quotation_backend/internal/quotation/transport"
	"quotation_backend/platform/apperr"
	"quotation_backend/platform/phone"
)

// confirmationResetDelay is how long the confirmation screen stays up before
// the session is cleared for a new quotation.
const confirmationResetDelay = 10 * time.Second

const (
	proposalTypeInstant  = "instant"
	proposalTypeTailored = "tailored"
)

// Submit finalizes the quotation. The inquiry record is the one hard
// requirement; proposal generation and email delivery degrade into warnings
// so a transient provider outage never loses a submission.
func (s *Service) Submit(ctx context.Context, sessionID uuid.UUID, kind string) (transport.SubmitResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return transport.SubmitResponse{}, err
	}
	if err := ensureMutable(session); err != nil {
		return transport.SubmitResponse{}, err
	}

	if errs := domain.ValidatePersonalInfo(session.Data); len(errs) > 0 {
		session.FormErrors = errs
		if err := s.sessions.Save(ctx, session); err != nil {
			return transport.SubmitResponse{}, err
		}
		return transport.SubmitResponse{}, apperr.Validation("please fix the highlighted fields").WithDetails(errs)
	}
	if len(session.Data.SelectedServices) == 0 {
		return transport.SubmitResponse{}, apperr.Validation("Please select at least one service")
	}

	session.Submitting = true
	if err := s.sessions.Save(ctx, session); err != nil {
		return transport.SubmitResponse{}, err
	}

	// Clear the in-flight flag on any failure path so the customer can retry.
	completed := false
	defer func() {
		if completed {
			return
		}
		session.Submitting = false
		saveCtx := context.WithoutCancel(ctx)
		if saveErr := s.sessions.Save(saveCtx, session); saveErr != nil {
			s.log.Error("clear submitting flag", "session_id", sessionID, "error", saveErr)
		}
	}()

	catalog, err := s.catalog.Resolve(ctx, session.Data.SelectedServices)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	proposalType := proposalTypeTailored
	if kind == proposalTypeInstant {
		proposalType = proposalTypeInstant
	}

	totalCents := domain.GrandTotalCents(session.Data.SelectedServices, catalog, session.Data.Urgent)

	inquiryID, err := s.inquiries.CreateInquiry(ctx, CreateInquiryParams{
		Name:             session.Data.Name,
		Email:            session.Data.Email,
		Phone:            phone.NormalizeE164(session.Data.Phone, ""),
		Country:          session.Data.Country,
		Message:          session.Data.Message,
		Urgent:           session.Data.Urgent,
		HasDocument:      session.Data.HasDocument,
		DocumentKey:      session.Data.DocumentKey,
		DocumentName:     session.Data.DocumentName,
		ProposalType:     proposalType,
		TotalAmountCents: totalCents,
	})
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	var warnings []string
	for _, sel := range session.Data.SelectedServices {
		item, ok := catalog[sel.SubServiceID]
		if !ok {
			s.log.SubmissionWarning("record_line", inquiryID.String(), apperr.NotFound("catalog entry missing for "+sel.SubServiceID.String()))
			warnings = append(warnings, "a selected service is no longer available and was skipped")
			continue
		}

		quantity := int64(1)
		if !item.FlatRate() && sel.Quantity != nil {
			quantity = *sel.Quantity
		}

		lineErr := s.inquiries.AddInquiryLine(ctx, InquiryLineParams{
			InquiryID:       inquiryID,
			ServiceID:       sel.ServiceID,
			SubServiceID:    sel.SubServiceID,
			Quantity:        quantity,
			UnitPriceCents:  item.PriceCents,
			TotalPriceCents: domain.LineTotalCents(sel, catalog),
		})
		if lineErr != nil {
			s.log.SubmissionWarning("record_line", inquiryID.String(), lineErr)
			warnings = append(warnings, "a service line could not be recorded")
		}
	}

	var proposalHTML string
	if proposalType == proposalTypeInstant {
		proposalHTML, warnings = s.generateProposal(ctx, inquiryID, session.Data, catalog, totalCents, warnings)
	}

	ref := inquiryRef(inquiryID)
	emailData := s.buildQuoteEmailData(session.Data, catalog, totalCents, ref, proposalType, proposalHTML)

	if err := s.sender.SendCustomerQuoteEmail(ctx, session.Data.Email, emailData); err != nil {
		s.log.SubmissionWarning("customer_email", inquiryID.String(), err)
		warnings = append(warnings, "confirmation email could not be sent")
	}
	if adminAddr := s.emailCfg.GetAdminNotifyAddress(); adminAddr != "" {
		if err := s.sender.SendAdminQuoteEmail(ctx, adminAddr, emailData); err != nil {
			s.log.SubmissionWarning("admin_email", inquiryID.String(), err)
			warnings = append(warnings, "admin notification could not be sent")
		}
	}

	session.Submitting = false
	session.ShowFinalOptions = false
	session.ShowConfirmation = true
	if err := s.sessions.Save(ctx, session); err != nil {
		return transport.SubmitResponse{}, err
	}
	completed = true

	if s.resets != nil {
		if err := s.resets.ScheduleSessionReset(ctx, sessionID.String(), confirmationResetDelay); err != nil {
			s.log.SubmissionWarning("schedule_reset", inquiryID.String(), err)
			warnings = append(warnings, "confirmation screen will not reset automatically")
		}
	}

	s.log.Info("quotation submitted",
		"inquiry_id", inquiryID,
		"session_id", sessionID,
		"proposal_type", proposalType,
		"total_cents", totalCents,
	)

	return transport.SubmitResponse{
		InquiryID:    inquiryID,
		InquiryRef:   ref,
		Status:       "submitted",
		ProposalHTML: proposalHTML,
		Warnings:     warnings,
	}, nil
}

// generateProposal runs the AI generator for instant quotations. Failure is
// downgraded to a warning and the inquiry proceeds as a tailored request.
func (s *Service) generateProposal(ctx context.Context, inquiryID uuid.UUID, data domain.CustomerFormData, catalog domain.Catalog, totalCents int64, warnings []string) (string, []string) {
	req := proposal.Request{
		AgencyName:    s.emailCfg.GetEmailFromName(),
		CustomerName:  data.Name,
		CustomerEmail: data.Email,
		CustomerPhone: data.Phone,
		Country:       data.Country,
		Message:       data.Message,
		Urgent:        data.Urgent,
		TotalCents:    totalCents,
	}
	for _, sel := range data.SelectedServices {
		item, ok := catalog[sel.SubServiceID]
		if !ok {
			continue
		}
		line := proposal.ServiceLine{
			ServiceName:    item.ServiceName,
			SubServiceName: item.SubServiceName,
			Quantity:       item.EffectiveQuantity(1),
			LineTotalCents: domain.LineTotalCents(sel, catalog),
		}
		if item.Unit != nil {
			line.Unit = *item.Unit
		}
		if sel.Quantity != nil {
			line.Quantity = *sel.Quantity
		}
		req.Services = append(req.Services, line)
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		s.log.SubmissionWarning("generate_proposal", inquiryID.String(), err)
		return "", append(warnings, "instant proposal could not be generated; our team will follow up")
	}

	if err := s.inquiries.StoreProposal(ctx, inquiryID, result.ProposalHTML, totalCents); err != nil {
		s.log.SubmissionWarning("store_proposal", inquiryID.String(), err)
		warnings = append(warnings, "proposal could not be stored")
	}

	return result.ProposalHTML, warnings
}

func (s *Service) buildQuoteEmailData(data domain.CustomerFormData, catalog domain.Catalog, totalCents int64, ref, proposalType, proposalHTML string) email.QuoteEmailData {
	lines := make([]email.QuoteLine, 0, len(data.SelectedServices))
	for _, sel := range data.SelectedServices {
		item, ok := catalog[sel.SubServiceID]
		if !ok {
			continue
		}

		line := email.QuoteLine{
			ServiceName: item.ServiceName,
			OptionName:  item.SubServiceName,
			UnitPrice:   email.FormatCurrencyUSD(item.PriceCents),
			LineTotal:   email.FormatCurrencyUSD(domain.LineTotalCents(sel, catalog)),
			FlatRate:    item.FlatRate(),
			HasDocument: data.HasDocument,
		}
		if sel.Quantity != nil {
			line.Quantity = *sel.Quantity
		}
		lines = append(lines, line)
	}

	emailData := email.QuoteEmailData{
		CustomerName:  data.Name,
		CustomerEmail: data.Email,
		CustomerPhone: data.Phone,
		Country:       data.Country,
		InquiryRef:    ref,
		Lines:         lines,
		Urgent:        data.Urgent,
		Total:         email.FormatCurrencyUSD(totalCents),
		ProposalType:  proposalType,
		ProposalHTML:  template.HTML(proposalHTML),
	}
	if data.Urgent {
		emailData.UrgentFee = email.FormatCurrencyUSD(domain.UrgencyFeeCents)
	}
	return emailData
}

// inquiryRef builds the short human-facing reference from an inquiry ID.
func inquiryRef(id uuid.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return "INQ-" + strings.ToUpper(hex[:8])
}
