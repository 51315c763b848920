// Package sanitize normalizes and checks incoming submission fields.
// It is pure: no I/O, no shared state.
package sanitize

import (
	"regexp"
	"strings"

	stderrors "monpro-diagnostic/internal/common/errors"
	"monpro-diagnostic/internal/models"
)

const (
	MaxNameLength  = 50
	MaxBrandLength = 100
	MaxEmailLength = 254 // RFC 5321
	MinNameLength  = 2
)

var (
	// Permissive local@domain.tld shape. Full RFC parsing is not the goal;
	// downstream delivery bounces handle the rest.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// International number: + followed by at least 10 digits.
	phonePattern = regexp.MustCompile(`^\+\d{10,}$`)

	angleBrackets = regexp.MustCompile(`[<>]`)
	unsafeChars   = regexp.MustCompile(`[^\w\s@.-]`)
)

// String trims, length-caps, and restricts input to a safe character
// set. This is defense in depth against injection into logs and
// prompts, not an HTML sanitizer. Sanitizing an already-sanitized
// string returns it unchanged.
func String(input string, maxLength int) string {
	s := strings.TrimSpace(input)
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	s = angleBrackets.ReplaceAllString(s, "")
	s = unsafeChars.ReplaceAllString(s, "")
	// Character removal can expose trailing whitespace; trim again so
	// the operation is idempotent.
	return strings.TrimSpace(s)
}

// ValidEmail checks the address shape and the RFC-derived length bound.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email) && len(email) <= MaxEmailLength
}

// ValidPhone checks for an international number shape, ignoring spaces.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// Submission returns a sanitized copy of the raw submission or a coded
// rejection. The input is never mutated.
func Submission(raw *models.Submission) (*models.Submission, error) {
	if raw == nil {
		return nil, stderrors.New(stderrors.ErrCodeMissingRequiredField, "empty submission")
	}

	if raw.Region == "" || raw.Path == "" || raw.FirstName == "" ||
		raw.LastName == "" || raw.BrandName == "" || raw.Email == "" {
		return nil, stderrors.New(stderrors.ErrCodeMissingRequiredField, "missing required fields")
	}

	if !raw.Region.Valid() {
		return nil, stderrors.New(stderrors.ErrCodeInvalidRegion, "unsupported region")
	}
	if !raw.Path.Valid() {
		return nil, stderrors.New(stderrors.ErrCodeInvalidPath, "unsupported path")
	}

	clean := *raw
	clean.FirstName = String(raw.FirstName, MaxNameLength)
	clean.LastName = String(raw.LastName, MaxNameLength)
	clean.BrandName = String(raw.BrandName, MaxBrandLength)
	clean.Email = strings.ToLower(String(raw.Email, MaxEmailLength))

	if !ValidEmail(clean.Email) {
		return nil, stderrors.New(stderrors.ErrCodeInvalidEmail, "invalid email format")
	}

	// Suspiciously short names are a spam heuristic, same as brand.
	if len(clean.FirstName) < MinNameLength || len(clean.LastName) < MinNameLength {
		return nil, stderrors.New(stderrors.ErrCodeInvalidName, "name too short")
	}
	if clean.BrandName == "" {
		return nil, stderrors.New(stderrors.ErrCodeMissingRequiredField, "brand name empty after sanitization")
	}

	if clean.DeliveryMethod == models.DeliveryWhatsApp {
		if clean.Phone == "" || !ValidPhone(clean.Phone) {
			return nil, stderrors.New(stderrors.ErrCodeInvalidPhone, "whatsapp delivery requires an international phone number")
		}
	}

	return &clean, nil
}
