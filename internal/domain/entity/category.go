package entity

import "strings"

// Category is the fixed set of spending/earning categories a transaction can belong to.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryOthers        Category = "Others"
)

// Categories lists every known category in declaration order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryOthers,
}

// IsValid reports whether c is exactly one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// LookupCategory matches a category name case-insensitively.
// The second return value is false when the name is not a known category.
func LookupCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, known := range Categories {
		if strings.EqualFold(name, string(known)) {
			return known, true
		}
	}
	return "", false
}

// CategoryOrDefault returns the canonical category for name, or Others when the name is
// empty or unrecognized.
func CategoryOrDefault(name string) Category {
	if c, ok := LookupCategory(name); ok {
		return c
	}
	return CategoryOthers
}
