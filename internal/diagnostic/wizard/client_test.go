package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monpro-diagnostic/internal/models"
)

func testSubmission() *models.Submission {
	return &models.Submission{
		Region:         models.RegionEurope,
		Path:           models.PathExplorer,
		FirstName:      "Anya",
		LastName:       "Rao",
		BrandName:      "Bloom",
		Email:          "anya@example.com",
		DeliveryMethod: models.DeliveryEmail,
		Answers: models.Answers{
			"product_idea": models.SingleAnswer("physical"),
		},
		Timestamp: time.Now().UTC(),
	}
}

func TestClientSubmit_Success(t *testing.T) {
	var got models.Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/diagnostic", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(SubmitResponse{Success: true, Message: "Assessment received"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	require.NoError(t, client.Submit(context.Background(), testSubmission()))
	assert.Equal(t, "anya@example.com", got.Email)
	assert.Equal(t, models.RegionEurope, got.Region)
}

func TestClientSubmit_CooldownResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(SubmitResponse{
			Success:       false,
			Message:       "Please wait 3 more day(s) before submitting again. Your proposal is being prepared.",
			Cooldown:      true,
			DaysRemaining: 3,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.Submit(context.Background(), testSubmission())

	var submitErr *SubmitError
	require.True(t, errors.As(err, &submitErr))
	assert.Equal(t, http.StatusTooManyRequests, submitErr.StatusCode)
	assert.True(t, submitErr.Cooldown)
	assert.Equal(t, 3, submitErr.DaysRemaining)
	assert.Equal(t,
		"Please wait 3 more day(s) before submitting again. Your proposal is being prepared.",
		submitErr.Error())
}

func TestClientSubmit_RejectionCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitResponse{Success: false, Message: "Invalid email format"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.Submit(context.Background(), testSubmission())

	var submitErr *SubmitError
	require.True(t, errors.As(err, &submitErr))
	assert.Equal(t, "Invalid email format", submitErr.Message)
}

func TestClientSubmit_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.Submit(ctx, testSubmission())
	require.Error(t, err)
	var submitErr *SubmitError
	assert.False(t, errors.As(err, &submitErr))
}
