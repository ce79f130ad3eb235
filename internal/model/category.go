package model

import "fmt"

// Category is a spending category label.
type Category string

const (
	CategoryDirectDeposits Category = "Direct Deposits"
	CategoryFood           Category = "Food"
	CategorySubscriptions  Category = "Subscriptions"
	CategoryGas            Category = "Gas"
	CategoryShopping       Category = "Shopping"
	CategoryTolls          Category = "Tolls"
	CategoryOther          Category = "Other"
)

// Categories lists every label in rule-set order.
var Categories = []Category{
	CategoryDirectDeposits,
	CategoryFood,
	CategorySubscriptions,
	CategoryGas,
	CategoryShopping,
	CategoryTolls,
	CategoryOther,
}

// ParseCategory returns the Category for a label, or an error if the label is
// not one of the known categories.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}
