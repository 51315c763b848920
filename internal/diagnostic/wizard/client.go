package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	commonhttp "monpro-diagnostic/internal/common/http"
	"monpro-diagnostic/internal/models"
)

// SubmitResponse is the endpoint's reply shape.
type SubmitResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Cooldown      bool   `json:"cooldown,omitempty"`
	DaysRemaining int    `json:"daysRemaining,omitempty"`
}

// SubmitError carries the server's message verbatim for the user.
type SubmitError struct {
	StatusCode    int
	Message       string
	Cooldown      bool
	DaysRemaining int
}

func (e *SubmitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("submission failed (status %d)", e.StatusCode)
}

// Client submits completed wizards to the diagnostic endpoint.
type Client struct {
	baseURL string
	http    *commonhttp.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    commonhttp.NewClient(timeout),
	}
}

func (c *Client) Submit(ctx context.Context, sub *models.Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/diagnostic", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("submit diagnostic: %w", err)
	}
	defer resp.Body.Close()

	var result SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		return &SubmitError{
			StatusCode:    resp.StatusCode,
			Message:       result.Message,
			Cooldown:      result.Cooldown,
			DaysRemaining: result.DaysRemaining,
		}
	}
	return nil
}
