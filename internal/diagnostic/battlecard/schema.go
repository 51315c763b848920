package battlecard

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// analysisSchema is the structural contract the extracted JSON must
// meet before it is mapped onto a battlecard. Only the consumed parts
// are constrained; narrative blocks may vary freely.
var analysisSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"diagnosticInsights", "recommendations"},
	"properties": map[string]interface{}{
		"diagnosticInsights": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"revenueLeaks": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "string"},
				},
				"manualFriction": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "string"},
				},
			},
		},
		"recommendations": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"catalogAutomations": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name": map[string]interface{}{"type": "string"},
						},
					},
				},
				"nonCatalogHypotheses": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":       map[string]interface{}{"type": "string"},
							"confidence": map[string]interface{}{"type": "number"},
						},
					},
				},
			},
		},
		"numbers": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"currency": map[string]interface{}{"type": "string"},
				"estimatedImplementationCostRange": map[string]interface{}{"type": "string"},
				"estimatedMonthlyUpsideRange":      map[string]interface{}{"type": "string"},
			},
		},
		"nextStepsForOperator": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"priorityScore": map[string]interface{}{"type": "number"},
			},
		},
	},
}

func validateAnalysis(doc map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(analysisSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("analysis does not match schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
