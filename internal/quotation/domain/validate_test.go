package domain

import "testing"

func validData() CustomerFormData {
	return CustomerFormData{
		Name:    "Jane Smith",
		Email:   "jane@example.com",
		Phone:   "+14155552671",
		Country: "United States",
	}
}

func TestValidatePersonalInfo_Valid(t *testing.T) {
	errs := ValidatePersonalInfo(validData())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidatePersonalInfo_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CustomerFormData)
		key     string
		message string
	}{
		{
			name:    "empty name",
			mutate:  func(d *CustomerFormData) { d.Name = "" },
			key:     ErrKeyName,
			message: "Name is required",
		},
		{
			name:    "whitespace name",
			mutate:  func(d *CustomerFormData) { d.Name = "   " },
			key:     ErrKeyName,
			message: "Name is required",
		},
		{
			name:    "empty email",
			mutate:  func(d *CustomerFormData) { d.Email = "" },
			key:     ErrKeyEmail,
			message: "Email is required",
		},
		{
			name:    "email without at sign",
			mutate:  func(d *CustomerFormData) { d.Email = "jane.example.com" },
			key:     ErrKeyEmail,
			message: "Please enter a valid email address",
		},
		{
			name:    "email without domain dot",
			mutate:  func(d *CustomerFormData) { d.Email = "jane@example" },
			key:     ErrKeyEmail,
			message: "Please enter a valid email address",
		},
		{
			name:    "email with spaces",
			mutate:  func(d *CustomerFormData) { d.Email = "jane doe@example.com" },
			key:     ErrKeyEmail,
			message: "Please enter a valid email address",
		},
		{
			name:    "empty phone",
			mutate:  func(d *CustomerFormData) { d.Phone = "" },
			key:     ErrKeyPhone,
			message: "Phone number is required",
		},
		{
			name:    "empty country",
			mutate:  func(d *CustomerFormData) { d.Country = "" },
			key:     ErrKeyCountry,
			message: "Please select your country",
		},
		{
			name: "document toggled on without upload",
			mutate: func(d *CustomerFormData) {
				d.HasDocument = true
				d.DocumentKey = ""
			},
			key:     ErrKeyDocument,
			message: "Please upload your document or turn off the document upload option",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := validData()
			tc.mutate(&data)

			errs := ValidatePersonalInfo(data)
			got, ok := errs[tc.key]
			if !ok {
				t.Fatalf("expected error for key %q, got %v", tc.key, errs)
			}
			if got != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, got)
			}
		})
	}
}

func TestValidatePersonalInfo_CollectsAllErrors(t *testing.T) {
	errs := ValidatePersonalInfo(CustomerFormData{HasDocument: true})
	if len(errs) != 5 {
		t.Fatalf("expected 5 errors, got %d: %v", len(errs), errs)
	}
}

func TestValidatePersonalInfo_DocumentUploadedClearsRequirement(t *testing.T) {
	data := validData()
	data.HasDocument = true
	data.DocumentKey = "sessions/abc/contract_1a2b3c4d.pdf"

	errs := ValidatePersonalInfo(data)
	if _, ok := errs[ErrKeyDocument]; ok {
		t.Fatalf("did not expect document error, got %v", errs)
	}
}
