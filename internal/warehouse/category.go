package warehouse

import (
	"fmt"
	"strings"
)

type Category string

const (
	Electronics Category = "ELECTRONICS"
	Books       Category = "BOOKS"
	Toys        Category = "TOYS"
	Clothing    Category = "CLOTHING"
	Food        Category = "FOOD"
	Sports      Category = "SPORTS"
	Home        Category = "HOME"
	Beauty      Category = "BEAUTY"
	Garden      Category = "GARDEN"
	Automotive  Category = "AUTOMOTIVE"
)

var knownCategories = map[Category]struct{}{
	Electronics: {},
	Books:       {},
	Toys:        {},
	Clothing:    {},
	Food:        {},
	Sports:      {},
	Home:        {},
	Beauty:      {},
	Garden:      {},
	Automotive:  {},
}

// ParseCategory resolves a category tag case-insensitively. Unknown tags are
// rejected with ErrInvalidArgument.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownCategories[c]; !ok {
		return "", invalid("category", fmt.Sprintf("unknown category %q", s))
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}

func (c Category) String() string { return string(c) }
