package registration

import (
	"strings"
	"testing"
)

func validSubmission() Submission {
	return Submission{
		FullName:     "Ann Example",
		MobileNumber: "1234567890",
		Email:        "ann@example.com",
		Gender:       "female",
		Department:   "Computer Science",
		Address:      "12 Long Street, Springfield",
	}
}

func TestValidateSubmission_Accepts(t *testing.T) {
	got, errs := ValidateSubmission(validSubmission())
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got.FullName != "Ann Example" {
		t.Errorf("FullName = %q", got.FullName)
	}
}

func TestValidateSubmission_Trims(t *testing.T) {
	sub := validSubmission()
	sub.FullName = "  Ann Example  "
	sub.MobileNumber = " 1234567890 "
	sub.Email = " ann@example.com "
	sub.Address = "  12 Long Street, Springfield  "

	got, errs := ValidateSubmission(sub)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got.FullName != "Ann Example" || got.MobileNumber != "1234567890" ||
		got.Email != "ann@example.com" || got.Address != "12 Long Street, Springfield" {
		t.Errorf("fields not trimmed: %+v", got)
	}
}

func TestValidateSubmission_MobileNumber(t *testing.T) {
	cases := []struct {
		mobile string
		ok     bool
	}{
		{"1234567890", true},
		{" 1234567890 ", true},
		{"123456789", false},
		{"12345678901", false},
		{"123-456-7890", false},
		{"12345 7890", false},
		{"abcdefghij", false},
		{"", false},
	}
	for _, tc := range cases {
		sub := validSubmission()
		sub.MobileNumber = tc.mobile
		_, errs := ValidateSubmission(sub)
		if tc.ok && errs != nil {
			t.Errorf("mobile %q: unexpected errors %v", tc.mobile, errs)
		}
		if !tc.ok {
			if errs == nil {
				t.Errorf("mobile %q: expected rejection", tc.mobile)
			} else if _, found := errs["mobile_number"]; !found {
				t.Errorf("mobile %q: error not keyed by field: %v", tc.mobile, errs)
			}
		}
	}
}

func TestValidateSubmission_FullNameLength(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"Al", true},
		{strings.Repeat("a", 100), true},
		{"A", false},
		{strings.Repeat("a", 101), false},
		{"   A   ", false},
		{"", false},
		// Bounds count characters, not bytes.
		{"李", false},
		{"李华", true},
		{strings.Repeat("é", 100), true},
		{strings.Repeat("é", 101), false},
	}
	for _, tc := range cases {
		sub := validSubmission()
		sub.FullName = tc.name
		_, errs := ValidateSubmission(sub)
		if tc.ok && errs != nil {
			t.Errorf("name %q: unexpected errors %v", tc.name, errs)
		}
		if !tc.ok && errs["full_name"] == "" {
			t.Errorf("name %q: expected full_name error, got %v", tc.name, errs)
		}
	}
}

func TestValidateSubmission_AddressLength(t *testing.T) {
	cases := []struct {
		address string
		ok      bool
	}{
		{strings.Repeat("a", 10), true},
		{strings.Repeat("a", 500), true},
		{strings.Repeat("a", 9), false},
		{strings.Repeat("a", 501), false},
		{"  short  ", false},
		{strings.Repeat("ü", 10), true},
		{strings.Repeat("ü", 9), false},
		{strings.Repeat("ü", 500), true},
		{strings.Repeat("ü", 501), false},
	}
	for _, tc := range cases {
		sub := validSubmission()
		sub.Address = tc.address
		_, errs := ValidateSubmission(sub)
		if tc.ok && errs != nil {
			t.Errorf("address len %d: unexpected errors %v", len(tc.address), errs)
		}
		if !tc.ok && errs["address"] == "" {
			t.Errorf("address len %d: expected address error, got %v", len(tc.address), errs)
		}
	}
}

func TestValidateSubmission_GenderAndDepartment(t *testing.T) {
	sub := validSubmission()
	sub.Gender = "unknown"
	_, errs := ValidateSubmission(sub)
	if errs["gender"] == "" {
		t.Errorf("expected gender error, got %v", errs)
	}

	sub = validSubmission()
	sub.Department = "   "
	_, errs = ValidateSubmission(sub)
	if errs["department"] == "" {
		t.Errorf("expected department error, got %v", errs)
	}
}

func TestValidateSubmission_FieldsEvaluatedIndependently(t *testing.T) {
	_, errs := ValidateSubmission(Submission{})
	for _, field := range []string{"full_name", "mobile_number", "email", "gender", "department", "address"} {
		if errs[field] == "" {
			t.Errorf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidateSubmission_Email(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"ann@example.com", true},
		{"not-an-email", false},
		{"a@" + strings.Repeat("b", 250) + ".com", false},
		{"", false},
	}
	for _, tc := range cases {
		sub := validSubmission()
		sub.Email = tc.email
		_, errs := ValidateSubmission(sub)
		if tc.ok != (errs == nil) {
			t.Errorf("email %q: ok=%v, errs=%v", tc.email, tc.ok, errs)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	cases := []struct {
		email    string
		password string
		ok       bool
	}{
		{"admin@example.com", "secret1", true},
		{"admin@example.com", "12345", false},
		{"admin@example.com", strings.Repeat("p", 101), false},
		{"admin@example.com", "密码密码密", false},
		{"admin@example.com", strings.Repeat("ö", 60), true},
		{"admin@example.com", strings.Repeat("ö", 101), false},
		{"bad email", "secret1", false},
	}
	for _, tc := range cases {
		_, errs := ValidateCredentials(Credentials{Email: tc.email, Password: tc.password})
		if tc.ok != (errs == nil) {
			t.Errorf("creds %q/%d chars: ok=%v, errs=%v", tc.email, len(tc.password), tc.ok, errs)
		}
	}
}
