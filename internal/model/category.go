package model

import "strings"

// CategoryCode identifies one of the fixed expense categories.
type CategoryCode string

const (
	CategoryFood          CategoryCode = "food"
	CategoryTransport     CategoryCode = "transport"
	CategoryEntertainment CategoryCode = "entertainment"
	CategoryShopping      CategoryCode = "shopping"
	CategoryEducation     CategoryCode = "education"
	CategoryHealth        CategoryCode = "health"
	CategoryBills         CategoryCode = "bills"
	CategoryOther         CategoryCode = "other"
)

// CategoryDefinition describes how a category is presented.
type CategoryDefinition struct {
	Code  CategoryCode
	Label string
	Icon  string
	Color string
}

// categories is kept in display order; the last entry is the fallback.
var categories = []CategoryDefinition{
	{Code: CategoryFood, Label: "Food & Dining", Icon: "🍕", Color: "#f97316"},
	{Code: CategoryTransport, Label: "Transport", Icon: "🚌", Color: "#3b82f6"},
	{Code: CategoryEntertainment, Label: "Entertainment", Icon: "🎮", Color: "#a855f7"},
	{Code: CategoryShopping, Label: "Shopping", Icon: "🛍️", Color: "#ec4899"},
	{Code: CategoryEducation, Label: "Education", Icon: "📚", Color: "#10b981"},
	{Code: CategoryHealth, Label: "Health", Icon: "💊", Color: "#ef4444"},
	{Code: CategoryBills, Label: "Bills & Utilities", Icon: "💡", Color: "#f59e0b"},
	{Code: CategoryOther, Label: "Other", Icon: "💰", Color: "#6b7280"},
}

// Categories returns the category table in display order.
func Categories() []CategoryDefinition {
	out := make([]CategoryDefinition, len(categories))
	copy(out, categories)
	return out
}

// CategoryInfo returns the definition for code, or the "other" entry when
// the code is unknown.
func CategoryInfo(code CategoryCode) CategoryDefinition {
	for _, c := range categories {
		if c.Code == code {
			return c
		}
	}
	return categories[len(categories)-1]
}

// Valid reports whether c is one of the known codes.
func (c CategoryCode) Valid() bool {
	for _, def := range categories {
		if def.Code == c {
			return true
		}
	}
	return false
}

// ParseCategory normalizes s into a category code. Unknown input maps to
// CategoryOther.
func ParseCategory(s string) CategoryCode {
	code := CategoryCode(strings.ToLower(strings.TrimSpace(s)))
	if code.Valid() {
		return code
	}
	return CategoryOther
}

// Normalize returns c if it is valid and CategoryOther otherwise.
func (c CategoryCode) Normalize() CategoryCode {
	if c.Valid() {
		return c
	}
	return CategoryOther
}
