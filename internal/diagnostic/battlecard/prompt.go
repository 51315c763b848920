package battlecard

import (
	"encoding/json"
	"fmt"
	"strings"

	"monpro-diagnostic/internal/models"
)

const systemPrompt = `You are the private automation analyst behind this diagnostic.
You speak TO the operator (the consultant reviewing leads), not to the lead.
Your output is INTERNAL ONLY, used for the operator's decision-making.

Hard rules:
- Output ONLY valid JSON. No markdown. No code fences.
- Never address the client directly. Address the operator in second person ("you").
- Prefer the provided automation catalog for e-commerce paths (scaler/founder).
- If you suggest anything not in the catalog, label it as "nonCatalogHypothesis" and include assumptions + confidence.
- For explorer path: avoid firm pricing/ROI; focus on what info you'd need and what a minimal next step would be.
- Never claim you performed web research. Do not cite sources.`

// buildPrompt assembles the per-submission user prompt: lead details,
// raw answers, the automation catalog, path rules and the exact output
// schema the analysis must match.
func buildPrompt(sub *models.Submission) string {
	symbol := sub.Region.CurrencySymbol()
	code := sub.Region.CurrencyCode()

	answersJSON, _ := json.MarshalIndent(sub.Answers, "", "  ")
	catalogJSON, _ := json.MarshalIndent(automationCatalog, "", "  ")

	var b strings.Builder
	b.WriteString("Turn the lead's diagnostic into an INTERNAL battlecard that helps the operator decide:\n")
	b.WriteString("- Is this lead worth time?\n")
	b.WriteString("- What automations are most plausible?\n")
	b.WriteString("- What pricing range is plausible (rough)?\n")
	b.WriteString("- What follow-up info is needed?\n")
	b.WriteString("This is NOT client-facing.\n")

	fmt.Fprintf(&b, "\nLEAD:\n- Region: %s\n- Path: %s\n- Name: %s %s\n- Brand: %s\n- Email: %s",
		sub.Region, sub.Path, sub.FirstName, sub.LastName, sub.BrandName, sub.Email)
	if sub.DeliveryMethod != "" {
		fmt.Fprintf(&b, "\n- Preferred Delivery: %s", sub.DeliveryMethod)
	}
	if sub.Phone != "" {
		fmt.Fprintf(&b, "\n- WhatsApp: %s", sub.Phone)
	}

	fmt.Fprintf(&b, "\n\nRAW ANSWERS:\n%s\n", answersJSON)
	fmt.Fprintf(&b, "\nCATALOG (authoritative for scaler/founder):\n%s\n", catalogJSON)

	b.WriteString(`
PATH RULES:
- If path is "scaler" or "founder":
  - Choose "catalogAutomations" ONLY from the catalog. Do not invent catalog entries.
  - If something is useful but missing, put it under "nonCatalogHypotheses" with low confidence + assumptions.
- If path is "operator":
  - Use catalog only if relevant; otherwise propose ops automations as hypotheses.
- If path is "explorer":
  - No hard pricing/ROI. Keep it educational + qualification-focused.
  - Priority score should usually be low unless answers show urgency.

OUTPUT: STRICT JSON ONLY. Match this schema EXACTLY:

`)

	fmt.Fprintf(&b, `{
  "mode": "internal_triage",
  "narrativeToOperator": {
    "oneLine": "Say what's going on in plain English TO the operator",
    "whyThisMatters": "1-2 lines explaining why this lead is/ isn't valuable",
    "yourLikelyWin": "What you can realistically sell (implementation only; no DIY)",
    "riskFlags": ["..."],
    "missingClarity": ["..."]
  },
  "leadProfile": {
    "pathRationale": "Why they match this path based on answers",
    "urgencyLevel": "low|medium|high",
    "budgetSignal": "low|medium|high|unknown",
    "complexity": "low|medium|high"
  },
  "diagnosticInsights": {
    "revenueLeaks": ["3-5 plausible leaks tied to answers"],
    "manualFriction": ["3-5 plausible frictions tied to answers"],
    "constraints": ["team/tools/compliance constraints inferred"]
  },
  "recommendations": {
    "catalogAutomations": [
      {
        "catalogId": "MUST match catalog id if available",
        "name": "catalog automation name",
        "whyItFits": "Explain TO the operator, tied to their answers",
        "tooling": "tools implied by catalog + their stack",
        "effort": "Low|Medium|High",
        "implementationRange": "%[1]sX-%[1]sY (rough estimate)",
        "impactLevel": "Low|Medium|High"
      }
    ],
    "nonCatalogHypotheses": [
      {
        "name": "idea NOT in catalog",
        "whyItFits": "Explain TO the operator",
        "assumptions": ["..."],
        "confidence": 0.35
      }
    ],
    "phasingSuggestion": {
      "phase1": ["2-3 items by name (quick wins)"],
      "phase2": ["2-3 items by name"],
      "phase3": ["optional"]
    }
  },
  "numbers": {
    "currency": "%[2]s",
    "pricingConfidence": "low|medium|high",
    "estimatedImplementationCostRange": "%[1]sX-%[1]sY",
    "estimatedMonthlyUpsideRange": "%[1]sX-%[1]sY",
    "notesToOperator": "Explain uncertainty + what would tighten estimates. Never fake precision."
  },
  "nextStepsForOperator": {
    "firstFollowUpQuestions": ["max 5 questions you would ask next"],
    "recommendedOffer": "Implementation-only (no DIY). Suggest: Phase 1 pilot, then full rollout",
    "priorityScore": 1,
    "suggestedReplyToLead": "1-2 lines the operator can send to the lead (neutral, non-salesy)"
  }
}

IMPORTANT:
- Never address the client directly except inside "suggestedReplyToLead".
- Never invent catalog ids.
- If no suitable catalog items exist, keep catalogAutomations empty and use nonCatalogHypotheses.
- Output JSON only.`, symbol, code)

	return b.String()
}
