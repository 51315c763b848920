package sanitize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "monpro-diagnostic/internal/common/errors"
	"monpro-diagnostic/internal/models"
)

func validSubmission() *models.Submission {
	return &models.Submission{
		Region:    models.RegionIndia,
		Path:      models.PathFounder,
		FirstName: "Anya",
		LastName:  "Rao",
		BrandName: "Bloom",
		Email:     "anya@example.com",
		Answers: models.Answers{
			"product_stage": models.SingleAnswer("prototype"),
		},
		Timestamp: time.Now().UTC(),
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"trims whitespace", "  John  ", 50, "John"},
		{"caps length", "abcdefghij", 5, "abcde"},
		{"strips angle brackets", "<script>John</script>", 50, "scriptJohnscript"},
		{"strips unsafe characters", "John!#$%", 50, "John"},
		{"keeps safe characters", "john.doe@mail-host.com", 254, "john.doe@mail-host.com"},
		{"removal does not leave trailing space", "a !", 50, "a"},
		{"empty input", "", 50, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.input, tt.max))
		})
	}
}

func TestString_Idempotent(t *testing.T) {
	inputs := []string{
		"  John <b>Doe</b>! ",
		"a !",
		"brand--name.one",
		"weird\t\nspacing  here",
	}
	for _, in := range inputs {
		once := String(in, 50)
		twice := String(once, 50)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("anya@example.com"))
	assert.True(t, ValidEmail("a.b-c@sub.domain.co"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
	assert.False(t, ValidEmail("spaces in@mail.com"))
	assert.False(t, ValidEmail(""))

	long := "a"
	for len(long) < 250 {
		long += "a"
	}
	assert.False(t, ValidEmail(long+"@example.com"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("+919876543210"))
	assert.True(t, ValidPhone("+44 7911 123456"))
	assert.False(t, ValidPhone("9876543210"))
	assert.False(t, ValidPhone("+123"))
	assert.False(t, ValidPhone("+44-7911-123456"))
}

func TestSubmission_Valid(t *testing.T) {
	raw := validSubmission()
	raw.Email = "  Anya@Example.COM "

	clean, err := Submission(raw)
	require.NoError(t, err)
	assert.Equal(t, "anya@example.com", clean.Email)
	assert.Equal(t, "Anya", clean.FirstName)
	// Input is untouched.
	assert.Equal(t, "  Anya@Example.COM ", raw.Email)
}

func TestSubmission_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.Submission)
		wantCode stderrors.ErrorCode
	}{
		{
			"missing email",
			func(s *models.Submission) { s.Email = "" },
			stderrors.ErrCodeMissingRequiredField,
		},
		{
			"missing first name",
			func(s *models.Submission) { s.FirstName = "" },
			stderrors.ErrCodeMissingRequiredField,
		},
		{
			"unknown region",
			func(s *models.Submission) { s.Region = "mars" },
			stderrors.ErrCodeInvalidRegion,
		},
		{
			"unknown path",
			func(s *models.Submission) { s.Path = "wanderer" },
			stderrors.ErrCodeInvalidPath,
		},
		{
			"bad email shape",
			func(s *models.Submission) { s.Email = "not-an-email" },
			stderrors.ErrCodeInvalidEmail,
		},
		{
			"one letter first name",
			func(s *models.Submission) { s.FirstName = "J" },
			stderrors.ErrCodeInvalidName,
		},
		{
			"name collapses to nothing after sanitization",
			func(s *models.Submission) { s.LastName = "!!" },
			stderrors.ErrCodeInvalidName,
		},
		{
			"whatsapp without phone",
			func(s *models.Submission) { s.DeliveryMethod = models.DeliveryWhatsApp },
			stderrors.ErrCodeInvalidPhone,
		},
		{
			"whatsapp with domestic phone",
			func(s *models.Submission) {
				s.DeliveryMethod = models.DeliveryWhatsApp
				s.Phone = "9876543210"
			},
			stderrors.ErrCodeInvalidPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validSubmission()
			tt.mutate(raw)

			clean, err := Submission(raw)
			require.Error(t, err)
			assert.Nil(t, clean)
			assert.Equal(t, tt.wantCode, stderrors.CodeOf(err))
		})
	}
}

func TestSubmission_WhatsAppWithValidPhone(t *testing.T) {
	raw := validSubmission()
	raw.DeliveryMethod = models.DeliveryWhatsApp
	raw.Phone = "+919876543210"

	clean, err := Submission(raw)
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", clean.Phone)
}
