package filter

import "fmt"

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a structured catalog filter. Every must condition has to
// hold; intent-derived and caller-supplied predicates are both rendered as
// must conditions, which is what makes them conjunctive even when they
// target the same attribute. At least one anyOf condition (when present)
// has to hold — keyword predicates live there.
type Expression struct {
	must  []Condition
	anyOf []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, anyOf []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(anyOf) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many any-of conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, anyOf: anyOf}, nil
}

// Must returns the conditions that must all hold.
func (e Expression) Must() []Condition { return e.must }

// AnyOf returns the conditions of which at least one must hold.
func (e Expression) AnyOf() []Condition { return e.anyOf }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.anyOf) == 0
}

// Condition is a single filter clause: either a contains predicate over one
// or more attributes (the product matches when any listed attribute contains
// the value), or a numeric range on a single attribute.
type Condition struct {
	keys      []string
	contains  string
	rangeExpr *Range
}

// NewContains creates a substring-match condition over the given attribute
// keys. Multiple keys express an attribute-level OR, e.g. type|category.
func NewContains(value string, keys ...string) (Condition, error) {
	if len(keys) == 0 {
		return Condition{}, fmt.Errorf("at least one attribute key is required")
	}
	for _, k := range keys {
		if k == "" {
			return Condition{}, fmt.Errorf("attribute key must not be empty")
		}
	}
	if value == "" {
		return Condition{}, fmt.Errorf("contains value is required for keys %v", keys)
	}
	return Condition{keys: keys, contains: value}, nil
}

// NewRange creates a numeric range condition on a single attribute.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("attribute key is required")
	}
	return Condition{keys: []string{key}, rangeExpr: &r}, nil
}

// Keys returns the attribute names the condition applies to.
func (c Condition) Keys() []string { return c.keys }

// Contains returns the substring-match value.
func (c Condition) Contains() string { return c.contains }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// IsContains reports whether this is a contains condition.
func (c Condition) IsContains() bool { return c.contains != "" }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rangeExpr != nil }

// Range is an inclusive numeric range with optional bounds.
type Range struct {
	gte *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range. At least one bound is
// required and bounds must not be negative (prices and stock counts are
// non-negative by contract).
func NewRangeFilter(gte, lte *float64) (Range, error) {
	if gte == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range bound is required")
	}
	if gte != nil && *gte < 0 {
		return Range{}, fmt.Errorf("lower bound must not be negative")
	}
	if lte != nil && *lte < 0 {
		return Range{}, fmt.Errorf("upper bound must not be negative")
	}
	return Range{gte: gte, lte: lte}, nil
}

// GTE returns the inclusive lower bound.
func (r Range) GTE() *float64 { return r.gte }

// LTE returns the inclusive upper bound.
func (r Range) LTE() *float64 { return r.lte }
