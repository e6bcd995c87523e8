package registration

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var mobileRe = regexp.MustCompile(`^[0-9]{10}$`)

// ValidationError carries field-keyed human-readable messages.
type ValidationError map[string]string

func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateSubmission checks every field independently and returns the
// trimmed payload on success. On failure the returned ValidationError
// holds one message per failing field (first violated rule wins).
func ValidateSubmission(sub Submission) (Submission, ValidationError) {
	errs := ValidationError{}

	// Length bounds count characters, not bytes, so multibyte names
	// and addresses measure the way users see them.
	name := strings.TrimSpace(sub.FullName)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		errs["full_name"] = "Full name must be between 2 and 100 characters"
	}

	mobile := strings.TrimSpace(sub.MobileNumber)
	if !mobileRe.MatchString(mobile) {
		errs["mobile_number"] = "Mobile number must be exactly 10 digits"
	}

	email := strings.TrimSpace(sub.Email)
	if msg := checkEmail(email); msg != "" {
		errs["email"] = msg
	}

	if !contains(Genders, sub.Gender) {
		errs["gender"] = "Gender must be male, female or other"
	}

	if strings.TrimSpace(sub.Department) == "" {
		errs["department"] = "Department is required"
	}

	address := strings.TrimSpace(sub.Address)
	if n := utf8.RuneCountInString(address); n < 10 || n > 500 {
		errs["address"] = "Address must be between 10 and 500 characters"
	}

	if len(errs) > 0 {
		return Submission{}, errs
	}
	return Submission{
		FullName:     name,
		MobileNumber: mobile,
		Email:        email,
		Gender:       sub.Gender,
		Department:   strings.TrimSpace(sub.Department),
		Address:      address,
	}, nil
}

// Credentials is a login or signup payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateCredentials applies the email rule plus password length [6,100].
func ValidateCredentials(creds Credentials) (Credentials, ValidationError) {
	errs := ValidationError{}

	email := strings.TrimSpace(creds.Email)
	if msg := checkEmail(email); msg != "" {
		errs["email"] = msg
	}

	if n := utf8.RuneCountInString(creds.Password); n < 6 || n > 100 {
		errs["password"] = "Password must be between 6 and 100 characters"
	}

	if len(errs) > 0 {
		return Credentials{}, errs
	}
	return Credentials{Email: email, Password: creds.Password}, nil
}

func checkEmail(email string) string {
	if email == "" {
		return "Email is required"
	}
	if utf8.RuneCountInString(email) > 255 {
		return "Email must be at most 255 characters"
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "Email must be a valid address"
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
