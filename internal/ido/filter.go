package ido

import (
	"fmt"
	"strings"
)

const filterPrefix = "&filter="

// Criteria are the optional search values of a load. An empty value drops
// the clause, it never matches an empty column.
type Criteria struct {
	OrderNumber string
	Status      string
}

// Validate rejects values that would break out of the quoted filter literal.
func (c Criteria) Validate() error {
	if strings.Contains(c.OrderNumber, "'") {
		return fmt.Errorf("%w: CoNum=%q", ErrMalformedFilter, c.OrderNumber)
	}
	if strings.Contains(c.Status, "'") {
		return fmt.Errorf("%w: Stat=%q", ErrMalformedFilter, c.Status)
	}
	return nil
}

// BuildFilter renders the criteria as a load filter suffix. Values are
// inserted verbatim; callers that need protection call Validate first.
func BuildFilter(c Criteria) string {
	var clauses []string
	if c.OrderNumber != "" {
		clauses = append(clauses, "CoNum='"+c.OrderNumber+"'")
	}
	if c.Status != "" {
		clauses = append(clauses, "Stat='"+c.Status+"'")
	}
	if len(clauses) == 0 {
		return ""
	}
	return filterPrefix + strings.Join(clauses, " and ")
}
