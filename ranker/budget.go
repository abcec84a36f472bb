package ranker

// BudgetCalculator determines the content budget for a resolution
// request.
type BudgetCalculator struct {
	defaultBudget int
	headroomChars int
}

// NewBudgetCalculator creates a new budget calculator. Budgets are in
// characters; headroom is reserved for the assembler's own prompt text.
func NewBudgetCalculator(defaultBudget, headroomChars int) *BudgetCalculator {
	return &BudgetCalculator{
		defaultBudget: defaultBudget,
		headroomChars: headroomChars,
	}
}

// Calculate determines the budget for a request.
// Priority order:
// 1. Explicit budget in the request
// 2. Model-based lookup
// 3. Default budget
func (c *BudgetCalculator) Calculate(explicit int, model string, maxForModel func(model string) int) int {
	if explicit > 0 {
		return explicit
	}

	if model != "" && maxForModel != nil {
		if maxChars := maxForModel(model); maxChars > 0 {
			budget := maxChars - c.headroomChars
			if budget > 0 {
				return budget
			}
		}
	}

	return c.defaultBudget
}
