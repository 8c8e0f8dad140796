package dto

// CreateRuleRequest stores a new free-text scheduling rule.
type CreateRuleRequest struct {
	Description string `json:"description" validate:"required,min=3,max=512"`
	Active      bool   `json:"active"`
}

// SetRuleActiveRequest toggles whether a rule influences generation.
type SetRuleActiveRequest struct {
	Active bool `json:"active"`
}
