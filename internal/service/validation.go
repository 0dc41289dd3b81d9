package service

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	personalPhonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	companyPhonePattern  = regexp.MustCompile(`^\d{10,15}$`)
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	maxNameLength    = 100
	maxAddressLength = 250

	// Region used when rendering stored subscriber numbers in E.164.
	displayPhoneRegion = "IN"
)

// ValidationError reports a client-supplied field that failed a format or
// presence check. Handlers map it to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string { return e.Message }

func invalidField(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// ValidatePersonalPhone enforces the 10-digit subscriber number format.
func ValidatePersonalPhone(phone string) error {
	if phone == "" {
		return invalidField("personalPhoneNumber", "Personal mobile number is required.")
	}
	if !personalPhonePattern.MatchString(phone) {
		return invalidField("personalPhoneNumber", "Invalid personal mobile number format.")
	}
	return nil
}

// ValidateCompanyPhone checks the optional switchboard number.
func ValidateCompanyPhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !companyPhonePattern.MatchString(phone) {
		return invalidField("companyPhoneNumber", "Invalid company phone number format. Must be 10-15 digits.")
	}
	return nil
}

// NormalizeEmail lowercases the address and converts an internationalized
// domain to its ASCII form before the format check.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalidField("email", "Email is required.")
	}
	if at := strings.LastIndex(email, "@"); at > 0 && at < len(email)-1 {
		if ascii, err := idna.Lookup.ToASCII(email[at+1:]); err == nil && ascii != "" {
			email = email[:at+1] + ascii
		}
	}
	if !emailPattern.MatchString(email) {
		return "", invalidField("email", "Invalid email format.")
	}
	return email, nil
}

// FormatPhoneE164 renders a stored subscriber number in E.164 for admin views.
// Returns the empty string when the number cannot be parsed as a valid number.
func FormatPhoneE164(phone string) string {
	number, err := phonenumbers.Parse(phone, displayPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
