package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

// Rule is a pure predicate bound to one request field. It produces zero or one
// error record; the Validate middleware aggregates the results.
type Rule func(r *http.Request) *FieldError

// Rules builds field validation rules on top of a shared validator instance.
type Rules struct {
	validate *validator.Validate
}

// NewRules creates a new rule factory.
func NewRules() *Rules {
	return &Rules{validate: validator.New()}
}

// IntPathParam requires the named path parameter to parse as a base-10 integer.
func (rs *Rules) IntPathParam(name string) Rule {
	return func(r *http.Request) *FieldError {
		raw := chi.URLParam(r, name)
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return &FieldError{Msg: "must be an integer", Param: name, Location: "path"}
		}
		return nil
	}
}

// RequiredString requires the named body field to be a non-empty string.
func (rs *Rules) RequiredString(field string) Rule {
	return rs.bodyRule(field, func(v any) string {
		s, ok := v.(string)
		if !ok {
			return "must be a string"
		}
		if err := rs.validate.Var(s, "required"); err != nil {
			return "must not be empty"
		}
		return ""
	})
}

// PositiveNumber requires the named body field to be a number greater than zero.
func (rs *Rules) PositiveNumber(field string) Rule {
	return rs.bodyRule(field, func(v any) string {
		// JSON numbers always decode to float64.
		f, ok := v.(float64)
		if !ok {
			return "must be a number"
		}
		if err := rs.validate.Var(f, "gt=0"); err != nil {
			return "must be greater than 0"
		}
		return ""
	})
}

// RequiredBool requires the named body field to be a boolean.
func (rs *Rules) RequiredBool(field string) Rule {
	return rs.bodyRule(field, func(v any) string {
		if _, ok := v.(bool); !ok {
			return "must be a boolean"
		}
		return ""
	})
}

// bodyRule wires a per-value check to a body field. A missing body or a missing
// field fails the rule the same way.
func (rs *Rules) bodyRule(field string, check func(v any) string) Rule {
	return func(r *http.Request) *FieldError {
		body, ok := BodyFromContext(r.Context())
		if !ok {
			return &FieldError{Msg: "is required", Param: field, Location: "body"}
		}
		v, present := body.Fields[field]
		if !present {
			return &FieldError{Msg: "is required", Param: field, Location: "body"}
		}
		if msg := check(v); msg != "" {
			return &FieldError{Msg: msg, Param: field, Location: "body"}
		}
		return nil
	}
}
