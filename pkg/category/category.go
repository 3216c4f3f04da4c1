package category

import (
	"errors"
	"fmt"
)

// Category is a spending classification attached to transactions, goals and
// alerts. The set is closed: a value that does not parse never enters the
// system, so a goal can never reference a category no transaction can carry.
type Category string

const (
	Food           Category = "Food"
	Entertainment  Category = "Entertainment"
	Travel         Category = "Travel"
	Shopping       Category = "Shopping"
	Rent           Category = "Rent"
	Utilities      Category = "Utilities"
	Healthcare     Category = "Healthcare"
	Transportation Category = "Transportation"
	Education      Category = "Education"
	Savings        Category = "Savings"
	Others         Category = "Others"
	Income         Category = "Income"
)

var ErrUnknownCategory = errors.New("unknown category")

var all = []Category{
	Food,
	Entertainment,
	Travel,
	Shopping,
	Rent,
	Utilities,
	Healthcare,
	Transportation,
	Education,
	Savings,
	Others,
	Income,
}

// All returns every known category in display order.
func All() []Category {
	result := make([]Category, len(all))
	copy(result, all)
	return result
}

// Parse validates a raw category name.
func Parse(s string) (Category, error) {
	for _, c := range all {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) String() string {
	return string(c)
}
