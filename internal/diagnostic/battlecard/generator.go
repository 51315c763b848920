package battlecard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"monpro-diagnostic/internal/common/logger"
	"monpro-diagnostic/internal/common/metrics"
	"monpro-diagnostic/internal/models"
)

var (
	ErrLLMTimeout       = errors.New("LLM_TIMEOUT")
	ErrLLMCallFailed    = errors.New("LLM_CALL_FAILED")
	ErrLLMInvalidOutput = errors.New("LLM_INVALID_OUTPUT")
)

var rangeTokens = regexp.MustCompile(`[\d,]+`)

// Generator produces operator battlecards from accepted submissions.
// It never fails: any analysis error degrades to a fallback card so
// the lead is captured regardless.
type Generator struct {
	config *Config
	client *http.Client
	logger logger.Logger
	now    func() time.Time
}

func NewGenerator(config *Config, log logger.Logger) *Generator {
	return &Generator{
		config: config,
		// No client timeout, the per-call context bounds the request.
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{"component": "battlecard"}),
		now:    time.Now,
	}
}

// Generate builds the battlecard for a submission. The returned card
// always carries the full lead identity and raw answers; the analysis
// sections come from the model when it cooperates and from fallback
// placeholders when it does not.
func (g *Generator) Generate(ctx context.Context, sub *models.Submission) *models.Battlecard {
	leadID := newLeadID()
	start := g.now()

	if g.config.APIKey == "" {
		g.logger.Warn("LLM API key not configured", map[string]interface{}{"leadId": leadID})
		metrics.BattlecardsGenerated.WithLabelValues("fallback").Inc()
		return g.fallback(sub, leadID)
	}

	card, err := g.analyze(ctx, sub, leadID)
	metrics.GenerationDuration.Observe(g.now().Sub(start).Seconds())
	if err != nil {
		g.logger.Error("LLM analysis failed, using fallback battlecard", map[string]interface{}{
			"leadId": leadID,
			"error":  err.Error(),
		})
		metrics.BattlecardsGenerated.WithLabelValues("fallback").Inc()
		return g.fallback(sub, leadID)
	}

	g.logger.Info("battlecard generated", map[string]interface{}{
		"leadId":          leadID,
		"revenueLeaks":    len(card.RevenueLeaks),
		"manualFriction":  len(card.ManualFriction),
		"recommendations": len(card.RecommendedAutomations),
		"priorityScore":   card.PriorityScore,
	})
	metrics.BattlecardsGenerated.WithLabelValues("llm").Inc()
	return card
}

func (g *Generator) analyze(ctx context.Context, sub *models.Submission, leadID string) (*models.Battlecard, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	content, err := g.callLLM(ctx, sub)
	if err != nil {
		return nil, err
	}

	jsonText, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLLMInvalidOutput, err)
	}
	if err := validateAnalysis(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLLMInvalidOutput, err)
	}

	var a analysis
	if err := json.Unmarshal([]byte(jsonText), &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLLMInvalidOutput, err)
	}

	return g.mapAnalysis(sub, leadID, &a), nil
}

func (g *Generator) callLLM(ctx context.Context, sub *models.Submission) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(sub)},
		},
		Temperature: g.config.Temperature,
		MaxTokens:   g.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLLMCallFailed, err)
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// Apply exponential backoff
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrLLMTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			g.config.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrLLMCallFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

		resp, lastErr = g.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", ErrLLMTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrLLMTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrLLMCallFailed, lastErr)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: no successful response after retries", ErrLLMCallFailed)
	}
	defer resp.Body.Close()

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrLLMCallFailed, err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrLLMInvalidOutput)
	}
	return chat.Choices[0].Message.Content, nil
}

// extractJSON strips markdown fences or prose around the analysis by
// slicing from the first '{' to the last '}'.
func extractJSON(content string) (string, error) {
	first := strings.Index(content, "{")
	last := strings.LastIndex(content, "}")
	if first == -1 || last == -1 || last <= first {
		return "", fmt.Errorf("%w: no JSON object in response", ErrLLMInvalidOutput)
	}
	return content[first : last+1], nil
}

func (g *Generator) mapAnalysis(sub *models.Submission, leadID string, a *analysis) *models.Battlecard {
	recommended := make([]string, 0,
		len(a.Recommendations.CatalogAutomations)+len(a.Recommendations.NonCatalogHypotheses))
	for _, auto := range a.Recommendations.CatalogAutomations {
		name := auto.Name
		if name == "" {
			name = "Unnamed automation"
		}
		recommended = append(recommended, name)
	}
	for _, hypo := range a.Recommendations.NonCatalogHypotheses {
		name := hypo.Name
		if name == "" {
			name = "Hypothesis"
		}
		recommended = append(recommended,
			fmt.Sprintf("%s (confidence: %s)", name, strconv.FormatFloat(hypo.Confidence, 'g', -1, 64)))
	}

	roi := models.EstimatedROI{
		Currency:           a.Numbers.Currency,
		ImplementationCost: parseRangeMidpoint(a.Numbers.EstimatedImplementationCostRange),
		MonthlyImpact:      parseRangeMidpoint(a.Numbers.EstimatedMonthlyUpsideRange),
	}
	if roi.Currency == "" {
		roi.Currency = sub.Region.CurrencyCode()
	}

	priority := a.NextSteps.PriorityScore
	if priority <= 0 {
		priority = 50
	}

	leaks := a.DiagnosticInsights.RevenueLeaks
	if len(leaks) == 0 {
		leaks = []string{"[AI Analysis Incomplete] No revenue leaks identified, review raw answers"}
	}
	friction := a.DiagnosticInsights.ManualFriction
	if len(friction) == 0 {
		friction = []string{"[AI Analysis Incomplete] No friction points identified, review raw answers"}
	}

	return &models.Battlecard{
		LeadID:         leadID,
		Region:         sub.Region,
		Path:           sub.Path,
		Answers:        sub.Answers,
		FirstName:      sub.FirstName,
		LastName:       sub.LastName,
		BrandName:      sub.BrandName,
		Email:          sub.Email,
		DeliveryMethod: sub.DeliveryMethod,
		Phone:          sub.Phone,

		RevenueLeaks:           leaks,
		ManualFriction:         friction,
		RecommendedAutomations: recommended,
		EstimatedROI:           roi,
		PriorityScore:          priority,

		GeneratedAt: g.now().UTC(),
		RawData:     sub,
	}
}

// parseRangeMidpoint reduces a textual range like "€1,000-€3,000" to
// the floor of the mean of its first two numeric tokens. Anything
// without two tokens yields 0.
func parseRangeMidpoint(s string) int {
	tokens := rangeTokens.FindAllString(s, -1)
	if len(tokens) < 2 {
		return 0
	}
	low, errLow := strconv.Atoi(strings.ReplaceAll(tokens[0], ",", ""))
	high, errHigh := strconv.Atoi(strings.ReplaceAll(tokens[1], ",", ""))
	if errLow != nil || errHigh != nil {
		return 0
	}
	return (low + high) / 2
}

func (g *Generator) fallback(sub *models.Submission, leadID string) *models.Battlecard {
	return &models.Battlecard{
		LeadID:         leadID,
		Region:         sub.Region,
		Path:           sub.Path,
		Answers:        sub.Answers,
		FirstName:      sub.FirstName,
		LastName:       sub.LastName,
		BrandName:      sub.BrandName,
		Email:          sub.Email,
		DeliveryMethod: sub.DeliveryMethod,
		Phone:          sub.Phone,

		RevenueLeaks: []string{
			"[AI Analysis Pending] Manual review required",
			"LLM unavailable - consultant will analyze manually",
			"Check raw answers for context",
		},
		ManualFriction: []string{
			"[AI Analysis Pending] Manual review required",
			"LLM unavailable - consultant will analyze manually",
			"Check raw answers for context",
		},
		RecommendedAutomations: []string{
			"[Awaiting Manual Review] AI analysis unavailable",
			"Consultant will review submission and provide recommendations",
		},
		EstimatedROI: models.EstimatedROI{
			Currency:           sub.Region.CurrencyCode(),
			MonthlyImpact:      0,
			ImplementationCost: 0,
		},
		PriorityScore: 50,

		GeneratedAt: g.now().UTC(),
		RawData:     sub,
	}
}

func newLeadID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("LEAD_%d_%s", time.Now().UnixMilli(), id[:9])
}
