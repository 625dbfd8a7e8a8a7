package domain

// Top-level TNFD disclosure pillars.
const (
	ClassificationGovernance = "Governance"
	ClassificationStrategy   = "Strategy"
	ClassificationRisk       = "Risk & Impact Management"
	ClassificationMetrics    = "Metrics & Targets"
)

// ClassificationError labels the synthetic record produced when evaluation fails.
const ClassificationError = "error"

// Criterion is one recommended disclosure the report is scored against.
type Criterion struct {
	// Classification is the pillar the criterion belongs to.
	Classification string

	// Item is the sub-label, e.g. "A. Board oversight".
	Item string

	// Description is the short gloss given to the model.
	Description string
}

// Key returns the classification/item pair used for catalogue lookups.
func (c Criterion) Key() string {
	return c.Classification + " - " + c.Item
}

// catalogue is the fixed list of 14 recommended disclosures, in prompt order.
var catalogue = []Criterion{
	{ClassificationGovernance, "A. Board oversight",
		"The board's oversight of nature-related dependencies, impacts, risks and opportunities"},
	{ClassificationGovernance, "B. Management's role",
		"Management's role in assessing and managing nature-related issues and its reporting lines"},
	{ClassificationGovernance, "C. Human rights policies and stakeholder engagement",
		"Human rights policies and engagement activities with Indigenous Peoples, local communities and other stakeholders"},
	{ClassificationStrategy, "A. Short, medium and long term nature-related issues",
		"Risks and opportunities identified over each time horizon"},
	{ClassificationStrategy, "B. Impact on business model and strategy",
		"Effects on the business model, value chain, strategy and financial planning"},
	{ClassificationStrategy, "C. Resilience of strategy",
		"Resilience of the strategy taking scenario analysis into account"},
	{ClassificationStrategy, "D. Priority locations",
		"Locations of assets and activities in priority locations"},
	{ClassificationRisk, "A(i). Processes in direct operations",
		"Processes for identifying, assessing and prioritising issues in direct operations"},
	{ClassificationRisk, "A(ii). Processes in the value chain",
		"Processes for identifying, assessing and prioritising issues in the upstream and downstream value chain"},
	{ClassificationRisk, "B. Processes for managing",
		"Processes for managing nature-related risks and opportunities"},
	{ClassificationRisk, "C. Integration into overall risk management",
		"Integration of these processes into the organisation's overall risk management"},
	{ClassificationMetrics, "A. Metrics for risks and opportunities",
		"Metrics used to assess and manage material nature-related risks and opportunities"},
	{ClassificationMetrics, "B. Metrics for dependencies and impacts",
		"Metrics used to assess and manage dependencies and impacts on nature"},
	{ClassificationMetrics, "C. Targets, goals and performance",
		"Targets and goals set and performance against them"},
}

// Catalogue returns a copy of the fixed criterion list.
func Catalogue() []Criterion {
	out := make([]Criterion, len(catalogue))
	copy(out, catalogue)
	return out
}

// Classifications returns the four pillars in catalogue order.
func Classifications() []string {
	return []string{
		ClassificationGovernance,
		ClassificationStrategy,
		ClassificationRisk,
		ClassificationMetrics,
	}
}
