// Package validation implements ordered, accumulate-all rule chains for
// request bodies and path parameters. Every chain bound to a route runs
// to completion and all failures are collected before a response is
// built; validation is never fail-fast.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Format checks for numeric and boolean values are delegated to a
// shared validator instance via its Var API.
var validate = validator.New()

// Value is a raw field value extracted from a decoded request body or
// from the route parameters. Present distinguishes an absent field from
// one explicitly set to null.
type Value struct {
	Raw     any
	Present bool
}

// FieldError is a single validation failure. The shape mirrors the wire
// contract consumed by API clients; Msg carries the human-readable
// message configured on the failing rule.
type FieldError struct {
	Type     string `json:"type"`
	Value    any    `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

type check struct {
	fn  func(Value) bool
	msg string
}

// Chain is an ordered list of checks against one field. Checks are
// declared fluently and evaluated in declaration order by Run.
type Chain struct {
	field    string
	location string
	checks   []check
}

// Body starts a rule chain for a field of the JSON request body.
func Body(field string) *Chain {
	return &Chain{field: field, location: "body"}
}

// Param starts a rule chain for a route path parameter.
func Param(field string) *Chain {
	return &Chain{field: field, location: "params"}
}

// Field returns the field name the chain applies to.
func (c *Chain) Field() string { return c.field }

// Location returns "body" or "params".
func (c *Chain) Location() string { return c.location }

// NotEmpty fails when the field is absent, null, or an empty string.
// Numeric zero and false are not empty.
func (c *Chain) NotEmpty() *Chain {
	return c.add(notEmpty)
}

// IsNumeric fails unless the value is a JSON number or a string that
// parses as one.
func (c *Chain) IsNumeric() *Chain {
	return c.add(isNumeric)
}

// IsInt fails unless the value is a positive integer literal.
func (c *Chain) IsInt() *Chain {
	return c.add(isInt)
}

// IsBoolean fails unless the value is a JSON boolean or a string
// boolean literal.
func (c *Chain) IsBoolean() *Chain {
	return c.add(isBoolean)
}

// Custom appends an arbitrary predicate.
func (c *Chain) Custom(fn func(Value) bool) *Chain {
	return c.add(fn)
}

// WithMessage sets the error message reported when the most recently
// declared check fails.
func (c *Chain) WithMessage(msg string) *Chain {
	if len(c.checks) > 0 {
		c.checks[len(c.checks)-1].msg = msg
	}
	return c
}

func (c *Chain) add(fn func(Value) bool) *Chain {
	c.checks = append(c.checks, check{fn: fn})
	return c
}

// Run evaluates every check in order against v and returns all
// failures. An empty result means the field is valid.
func (c *Chain) Run(v Value) []FieldError {
	var errs []FieldError
	for _, chk := range c.checks {
		if chk.fn(v) {
			continue
		}
		errs = append(errs, FieldError{
			Type:     "field",
			Value:    v.Raw,
			Msg:      chk.msg,
			Path:     c.field,
			Location: c.location,
		})
	}
	return errs
}

func notEmpty(v Value) bool {
	if !v.Present || v.Raw == nil {
		return false
	}
	if s, ok := v.Raw.(string); ok {
		return s != ""
	}
	return true
}

func isNumeric(v Value) bool {
	if !v.Present || v.Raw == nil {
		return false
	}
	switch n := v.Raw.(type) {
	case json.Number, float64, int:
		return true
	case string:
		return validate.Var(n, "numeric") == nil
	default:
		return false
	}
}

func isBoolean(v Value) bool {
	if !v.Present || v.Raw == nil {
		return false
	}
	switch b := v.Raw.(type) {
	case bool:
		return true
	case string:
		return validate.Var(b, "boolean") == nil
	default:
		return false
	}
}

func isInt(v Value) bool {
	if !v.Present {
		return false
	}
	s, ok := v.Raw.(string)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// ToFloat coerces a body value to a finite float64. The second return
// value reports whether the coercion succeeded.
func ToFloat(raw any) (float64, bool) {
	var f float64
	var err error
	switch n := raw.(type) {
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		f, err = strconv.ParseFloat(n, 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToBool coerces a body value to a boolean.
func ToBool(raw any) (bool, bool) {
	switch b := raw.(type) {
	case bool:
		return b, true
	case string:
		v, err := strconv.ParseBool(b)
		return v, err == nil
	}
	return false, false
}

// ToString returns the string form of a body value, or "" for nil.
// Non-string scalars are coerced to their literal form, matching what
// the store's string columns accept.
func ToString(raw any) string {
	switch s := raw.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}
