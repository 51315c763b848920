package battlecard

// chatRequest is the OpenAI-compatible chat completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// analysis is the triage document the model is instructed to emit.
// Only the fields the battlecard consumes are decoded; the rest of the
// document is validated structurally and then ignored.
type analysis struct {
	DiagnosticInsights struct {
		RevenueLeaks   []string `json:"revenueLeaks"`
		ManualFriction []string `json:"manualFriction"`
	} `json:"diagnosticInsights"`

	Recommendations struct {
		CatalogAutomations []struct {
			CatalogID string `json:"catalogId"`
			Name      string `json:"name"`
		} `json:"catalogAutomations"`
		NonCatalogHypotheses []struct {
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
		} `json:"nonCatalogHypotheses"`
	} `json:"recommendations"`

	Numbers struct {
		Currency                         string `json:"currency"`
		EstimatedImplementationCostRange string `json:"estimatedImplementationCostRange"`
		EstimatedMonthlyUpsideRange      string `json:"estimatedMonthlyUpsideRange"`
	} `json:"numbers"`

	NextSteps struct {
		PriorityScore int `json:"priorityScore"`
	} `json:"nextStepsForOperator"`
}
