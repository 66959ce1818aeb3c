package submission

// Category is one entry of the fixed category set.
type Category struct {
	Value string
	Label string
}

var categories = []Category{
	{Value: "crm", Label: "CRM Software"},
	{Value: "customer-support", Label: "Customer Support Software"},
	{Value: "applicant-tracking", Label: "Applicant Tracking System"},
	{Value: "hr-information", Label: "HR Information System"},
}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsCategory reports whether v is a known category value.
func IsCategory(v string) bool {
	for _, c := range categories {
		if c.Value == v {
			return true
		}
	}
	return false
}

// CategoryLabel returns the display label for v, or v itself when unknown.
func CategoryLabel(v string) string {
	for _, c := range categories {
		if c.Value == v {
			return c.Label
		}
	}
	return v
}
