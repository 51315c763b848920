// Package questionbank holds the static diagnostic question sets. One
// set per path; region only relabels currency tokens in the text.
package questionbank

import (
	"strings"

	"monpro-diagnostic/internal/models"
)

// PathInfo describes the persona cards shown on the path-selection
// screen.
var PathInfo = map[models.Path]models.PathInfo{
	models.PathScaler: {
		ID:          models.PathScaler,
		Title:       "The Scaler",
		Subtitle:    "Active E-commerce",
		Description: "You have existing order volume with operational friction points.",
	},
	models.PathFounder: {
		ID:          models.PathFounder,
		Title:       "The Founder",
		Subtitle:    "Launching / Aspirant",
		Description: "Pre-launch or early-stage with product defined, systems not yet built.",
	},
	models.PathOperator: {
		ID:          models.PathOperator,
		Title:       "The Operator",
		Subtitle:    "Service / Agency / B2B",
		Description: "Operations-heavy business with process friction.",
	},
	models.PathExplorer: {
		ID:          models.PathExplorer,
		Title:       "The Explorer",
		Subtitle:    "Curious / Researching",
		Description: "Exploring automation trends and future possibilities.",
	},
}

var bank = map[models.Path][]models.Question{
	models.PathScaler: {
		{
			ID:               "platform_stack",
			Title:            "Which platform(s) do you currently use?",
			MultiSelect:      true,
			HelperText:       "Select all that apply.",
			ExclusiveOptions: []string{"not_live"},
			Options: []models.MCQOption{
				{Label: "Shopify", Value: "shopify"},
				{Label: "WooCommerce", Value: "woocommerce"},
				{Label: "Custom website", Value: "custom"},
				{Label: "Marketplaces only (Amazon, Etsy, etc.)", Value: "marketplaces"},
				{Label: "Not live yet", Value: "not_live"},
			},
		},
		{
			ID:    "order_volume",
			Title: "What is your current monthly order volume?",
			Options: []models.MCQOption{
				{Label: "<100", Value: "under_100"},
				{Label: "100–500", Value: "100_500"},
				{Label: "500–2000", Value: "500_2000"},
				{Label: "2000+", Value: "over_2000"},
			},
		},
		{
			ID:            "key_channels",
			Title:         "Where do most of your orders or leads come from?",
			MultiSelect:   true,
			MaxSelections: 3,
			HelperText:    "Select your top 2–3 channels.",
			Options: []models.MCQOption{
				{Label: "Paid ads (Google, Meta)", Value: "paid_ads"},
				{Label: "Organic / SEO", Value: "organic"},
				{Label: "Marketplaces", Value: "marketplaces"},
				{Label: "Social DMs / WhatsApp", Value: "social_dms"},
				{Label: "Referrals / word of mouth", Value: "referrals"},
			},
		},
		{
			ID:    "team_capacity",
			Title: "How many people actively touch operations weekly?",
			Options: []models.MCQOption{
				{Label: "Solo (just me)", Value: "solo"},
				{Label: "2–3 people", Value: "small"},
				{Label: "4–10 people", Value: "medium"},
				{Label: "10+ people", Value: "large"},
			},
		},
		{
			ID:    "manual_hours",
			Title: "How many hours per week are spent on manual data entry or order updates?",
			Options: []models.MCQOption{
				{Label: "<5 hours", Value: "under_5"},
				{Label: "5–15 hours", Value: "5_15"},
				{Label: "15–40 hours", Value: "15_40"},
				{Label: "40+ hours", Value: "over_40"},
			},
		},
		{
			ID:               "automation_priority",
			Title:            "Which areas need automation most urgently?",
			HelperText:       "Select all that apply—most businesses have 2-3 critical pain points.",
			MultiSelect:      true,
			ExclusiveOptions: []string{"none"},
			Options: []models.MCQOption{
				{Label: "Customer support", Value: "support"},
				{Label: "Inventory sync", Value: "inventory"},
				{Label: "Post-purchase revenue", Value: "revenue"},
				{Label: "Marketing execution", Value: "marketing"},
				{Label: "None currently", Value: "none"},
			},
		},
		{
			ID:    "cart_abandonment",
			Title: "What is your current abandoned cart rate?",
			Options: []models.MCQOption{
				{Label: "I don't know", Value: "unknown"},
				{Label: "~50%", Value: "rate_50"},
				{Label: "~70%", Value: "rate_70"},
				{Label: "Critical", Value: "critical"},
			},
		},
		{
			ID:    "chaos_scale",
			Title: "On a scale of 1–10, how much is manual chaos limiting strategic focus?",
			Options: []models.MCQOption{
				{Label: "1–3 (Manageable)", Value: "low"},
				{Label: "4–6 (Noticeable)", Value: "medium"},
				{Label: "7–8 (Significant)", Value: "high"},
				{Label: "9–10 (Critical)", Value: "critical"},
			},
		},
		{
			ID:    "engagement_preference",
			Title: "How would you prefer to proceed if the roadmap resonates?",
			Options: []models.MCQOption{
				{Label: "Implement everything for me", Value: "done_for_you"},
				{Label: "Review the roadmap first, then decide", Value: "review_first"},
				{Label: "Not sure yet - want to see the roadmap", Value: "unsure"},
			},
		},
		{
			ID:    "investment_range",
			Title: "If automation clearly saves time or revenue, which investment range feels reasonable?",
			Options: []models.MCQOption{
				{Label: "Under €1k", Value: "under_1k"},
				{Label: "€1k–€3k", Value: "1k_3k"},
				{Label: "€3k–€10k", Value: "3k_10k"},
				{Label: "Depends on ROI", Value: "roi_based"},
			},
		},
	},

	models.PathFounder: {
		{
			ID:    "platform_stack",
			Title: "Which platform are you planning to use?",
			Options: []models.MCQOption{
				{Label: "Shopify", Value: "shopify"},
				{Label: "WooCommerce", Value: "woocommerce"},
				{Label: "Custom website", Value: "custom"},
				{Label: "Marketplaces only", Value: "marketplaces"},
				{Label: "Not decided yet", Value: "undecided"},
			},
		},
		{
			ID:    "product_stage",
			Title: "Where is your product or idea currently?",
			Options: []models.MCQOption{
				{Label: "Concept only", Value: "concept"},
				{Label: "Prototype ready", Value: "prototype"},
				{Label: "Manufacturing", Value: "manufacturing"},
				{Label: "Ready to sell", Value: "ready"},
			},
		},
		{
			ID:          "launch_worry",
			Title:       "What concerns you most about launching?",
			HelperText:  "Select all that apply.",
			MultiSelect: true,
			Options: []models.MCQOption{
				{Label: "Technical complexity", Value: "technical"},
				{Label: "Marketing cost", Value: "marketing"},
				{Label: "Logistics & fulfillment", Value: "logistics"},
				{Label: "Not knowing where to start", Value: "unknown"},
				{Label: "Cash flow management", Value: "cashflow"},
			},
		},
		{
			ID:    "order_handling",
			Title: "How do you plan to handle orders?",
			Options: []models.MCQOption{
				{Label: "Solo", Value: "solo"},
				{Label: "Small team", Value: "team"},
				{Label: "Third-party logistics", Value: "third_party"},
			},
		},
		{
			ID:    "setup_preference",
			Title: "What setup do you want from Day 1?",
			Options: []models.MCQOption{
				{Label: "Minimalist launch", Value: "minimalist"},
				{Label: "Future-proof systems", Value: "future_proof"},
				{Label: "Full automation", Value: "full_automation"},
			},
		},
		{
			ID:    "engagement_preference",
			Title: "How would you prefer to proceed if the roadmap resonates?",
			Options: []models.MCQOption{
				{Label: "Implement everything for me", Value: "done_for_you"},
				{Label: "Review the roadmap first, then decide", Value: "review_first"},
				{Label: "Not sure yet - want to see the roadmap", Value: "unsure"},
			},
		},
		{
			ID:    "investment_range",
			Title: "If systems clearly support growth, which investment range feels realistic?",
			Options: []models.MCQOption{
				{Label: "Under €1k", Value: "under_1k"},
				{Label: "€1k–€3k", Value: "1k_3k"},
				{Label: "€3k–€10k", Value: "3k_10k"},
				{Label: "Depends on ROI", Value: "roi_based"},
			},
		},
	},

	models.PathOperator: {
		{
			ID:    "business_type",
			Title: "What best describes your business?",
			Options: []models.MCQOption{
				{Label: "Service agency", Value: "agency"},
				{Label: "Professional services", Value: "professional"},
				{Label: "B2B wholesale", Value: "b2b"},
				{Label: "SaaS", Value: "saas"},
			},
		},
		{
			ID:          "communication_breakdown",
			Title:       "Where does communication typically break down?",
			HelperText:  "Select all that apply—most ops teams face multiple friction points.",
			MultiSelect: true,
			Options: []models.MCQOption{
				{Label: "Lead intake & qualification", Value: "lead_intake"},
				{Label: "Client onboarding", Value: "onboarding"},
				{Label: "Project status updates", Value: "reporting"},
				{Label: "Billing & invoicing", Value: "billing"},
				{Label: "Internal team handoffs", Value: "handoffs"},
			},
		},
		{
			ID:          "tracking_method",
			Title:       "How are tasks and data currently tracked?",
			HelperText:  "Select all that apply.",
			MultiSelect: true,
			Options: []models.MCQOption{
				{Label: "Sticky notes & chat messages", Value: "manual"},
				{Label: "Basic spreadsheets", Value: "spreadsheets"},
				{Label: "Multiple disconnected tools", Value: "disconnected"},
				{Label: "Custom ERP or CRM", Value: "erp"},
			},
		},
		{
			ID:    "founder_dependency",
			Title: "On a scale of 1–10, how stuck is the business if the founder takes a 2-week vacation?",
			Options: []models.MCQOption{
				{Label: "1–3 (Fine)", Value: "low"},
				{Label: "4–6 (Some issues)", Value: "medium"},
				{Label: "7–8 (Major issues)", Value: "high"},
				{Label: "9–10 (Critical)", Value: "critical"},
			},
		},
	},

	models.PathExplorer: {
		{
			ID:    "motivation",
			Title: "What brings you to MonPro-AI today?",
			Options: []models.MCQOption{
				{Label: "Researching AI trends", Value: "research"},
				{Label: "Planning a future project", Value: "planning"},
				{Label: "Career inspiration", Value: "career"},
			},
		},
		{
			ID:    "interest_area",
			Title: "Which area of AI interests you most?",
			Options: []models.MCQOption{
				{Label: "Workflow automation", Value: "workflow"},
				{Label: "Generative content", Value: "generative"},
				{Label: "Data analysis", Value: "data"},
			},
		},
		{
			ID:    "timeline",
			Title: "When do you realistically see yourself investing in automation?",
			Options: []models.MCQOption{
				{Label: "Just browsing", Value: "browsing"},
				{Label: "3–6 months", Value: "3_6_months"},
				{Label: "Later this year", Value: "this_year"},
			},
		},
	},
}

// budgetRanges replaces the investment_range options per region, since
// a plain symbol swap would imply the wrong order of magnitude for
// India.
var budgetRanges = map[models.Region][]models.MCQOption{
	models.RegionIndia: {
		{Label: "Under ₹50k", Value: "under_1k"},
		{Label: "₹50k–₹150k", Value: "1k_3k"},
		{Label: "₹150k–₹500k", Value: "3k_10k"},
		{Label: "Depends on ROI / open to discussion", Value: "roi_based"},
	},
	models.RegionEurope: {
		{Label: "Under €3k", Value: "under_1k"},
		{Label: "€3k–€10k", Value: "1k_3k"},
		{Label: "€10k–€25k", Value: "3k_10k"},
		{Label: "Depends on ROI / open to discussion", Value: "roi_based"},
	},
	models.RegionUK: {
		{Label: "Under £3k", Value: "under_1k"},
		{Label: "£3k–£10k", Value: "1k_3k"},
		{Label: "£10k–£25k", Value: "3k_10k"},
		{Label: "Depends on ROI / open to discussion", Value: "roi_based"},
	},
}

// ForPath returns the question set for a path with region currency
// applied. The returned slice is a deep copy; the bank itself is never
// mutated.
func ForPath(path models.Path, region models.Region) []models.Question {
	questions := bank[path]
	out := make([]models.Question, len(questions))

	currency := "€"
	if region.Valid() {
		currency = region.CurrencySymbol()
	}

	for i, q := range questions {
		cp := q
		cp.Title = strings.ReplaceAll(q.Title, "€", currency)

		if q.ID == "investment_range" {
			if ranges, ok := budgetRanges[region]; ok {
				cp.Options = append([]models.MCQOption(nil), ranges...)
				out[i] = cp
				continue
			}
		}

		cp.Options = make([]models.MCQOption, len(q.Options))
		for j, opt := range q.Options {
			opt.Label = strings.ReplaceAll(opt.Label, "€", currency)
			cp.Options[j] = opt
		}
		out[i] = cp
	}

	return out
}

// Count returns the number of questions for a path.
func Count(path models.Path) int {
	return len(bank[path])
}

// Find returns the question with the given id on a path.
func Find(path models.Path, id string) (models.Question, bool) {
	for _, q := range bank[path] {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}
