package battlecard

// CatalogEntry is one automation the practice knows how to implement.
// The catalog is authoritative for the e-commerce paths: the model may
// only recommend these by id, anything else becomes a hypothesis.
type CatalogEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Paths       []string `json:"paths"`
	Tooling     string   `json:"tooling"`
	Effort      string   `json:"effort"`
}

var automationCatalog = []CatalogEntry{
	{
		ID:          "cart-recovery",
		Name:        "Abandoned Cart Recovery Sequence",
		Description: "Multi-touch email and WhatsApp sequence triggered on cart abandonment, with dynamic discount ladder.",
		Paths:       []string{"scaler", "founder"},
		Tooling:     "Shopify Flow / WooCommerce hooks + Klaviyo",
		Effort:      "Medium",
	},
	{
		ID:          "order-status-bot",
		Name:        "Order Status Self-Service Bot",
		Description: "WhatsApp and email bot answering where-is-my-order queries from live carrier data.",
		Paths:       []string{"scaler"},
		Tooling:     "Twilio + carrier APIs",
		Effort:      "Medium",
	},
	{
		ID:          "inventory-sync",
		Name:        "Multi-Channel Inventory Sync",
		Description: "Keeps store, marketplace and warehouse stock levels consistent, with low-stock alerts.",
		Paths:       []string{"scaler", "founder"},
		Tooling:     "Marketplace APIs + scheduled reconciliation jobs",
		Effort:      "High",
	},
	{
		ID:          "post-purchase-upsell",
		Name:        "Post-Purchase Upsell Flow",
		Description: "Timed post-delivery offers and replenishment reminders based on purchase history.",
		Paths:       []string{"scaler", "founder"},
		Tooling:     "Email platform + store webhook events",
		Effort:      "Low",
	},
	{
		ID:          "review-collection",
		Name:        "Automated Review Collection",
		Description: "Review requests sequenced after confirmed delivery, routed to marketplace or store listing.",
		Paths:       []string{"scaler", "founder"},
		Tooling:     "Store webhooks + review platform API",
		Effort:      "Low",
	},
	{
		ID:          "ad-spend-report",
		Name:        "Daily Ad Spend & ROAS Report",
		Description: "Aggregates paid channel spend against attributed revenue into a daily operator digest.",
		Paths:       []string{"scaler"},
		Tooling:     "Ads APIs + spreadsheet or dashboard sink",
		Effort:      "Medium",
	},
	{
		ID:          "launch-checklist",
		Name:        "Guided Store Launch Pipeline",
		Description: "Templated launch checklist with automated store setup steps for first-time founders.",
		Paths:       []string{"founder"},
		Tooling:     "Shopify setup API + task tracker",
		Effort:      "Medium",
	},
	{
		ID:          "support-triage",
		Name:        "Support Inbox Triage",
		Description: "Classifies inbound support mail, auto-answers order FAQs and escalates the rest with context.",
		Paths:       []string{"scaler", "operator"},
		Tooling:     "Shared inbox API + classifier",
		Effort:      "Medium",
	},
	{
		ID:          "lead-intake",
		Name:        "Lead Intake & Qualification Flow",
		Description: "Structured intake form feeding a scored CRM record with automatic follow-up scheduling.",
		Paths:       []string{"operator"},
		Tooling:     "Forms + CRM API",
		Effort:      "Low",
	},
	{
		ID:          "client-onboarding",
		Name:        "Client Onboarding Sequence",
		Description: "Contract, kickoff and document collection steps fired automatically on deal close.",
		Paths:       []string{"operator"},
		Tooling:     "CRM triggers + e-sign + document store",
		Effort:      "Medium",
	},
}

// Catalog returns the full automation catalog.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(automationCatalog))
	copy(out, automationCatalog)
	return out
}
