package email

const (
	subjectCustomerQuoteFmt = "Your quotation request %s has been received"
	subjectAdminQuoteFmt    = "New quotation inquiry %s from %s"
	subjectAdminOTP         = "Your admin login code"
	subjectStatusUpdateFmt  = "Update on your inquiry %s"
)
