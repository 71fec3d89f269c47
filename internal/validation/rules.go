package validation

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation is a single failed input constraint. Clients key off Msg; the
// remaining fields locate the offending value in the request.
type Violation struct {
	Type     string `json:"type"`
	Value    string `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// Request is the raw material the rules evaluate: route parameters plus the
// undecoded JSON body. Keeping body fields as raw tokens lets rules report
// on values (a string price, a numeric availability) that would never
// survive a typed bind.
type Request struct {
	Params map[string]string
	Body   map[string]json.RawMessage
}

// String returns the body field decoded as a string. The gate's rules have
// already checked the field's type, so a decode failure only happens for
// unchecked fields and yields the zero value.
func (r *Request) String(field string) string {
	var s string
	_ = json.Unmarshal(r.Body[field], &s)
	return s
}

// Float returns the body field decoded as a number.
func (r *Request) Float(field string) float64 {
	var f float64
	_ = json.Unmarshal(r.Body[field], &f)
	return f
}

// Bool returns the body field decoded as a boolean.
func (r *Request) Bool(field string) bool {
	var b bool
	_ = json.Unmarshal(r.Body[field], &b)
	return b
}

// Rule checks one field constraint and reports at most one violation.
// Rules are independent: each runs regardless of what the others found.
type Rule func(req *Request) *Violation

var validate = validator.New()

// IntParam requires the named route parameter to parse as an integer.
func IntParam(name, msg string) Rule {
	return func(req *Request) *Violation {
		raw := req.Params[name]
		if _, err := strconv.Atoi(raw); err != nil {
			return &Violation{Type: "field", Value: raw, Msg: msg, Path: name, Location: "params"}
		}
		return nil
	}
}

// RequiredString requires the body field to be a string that is non-empty
// after trimming.
func RequiredString(field, msg string) Rule {
	return func(req *Request) *Violation {
		raw, ok := req.Body[field]
		violation := &Violation{Type: "field", Value: tokenValue(raw), Msg: msg, Path: field, Location: "body"}
		if !ok {
			return violation
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return violation
		}
		if err := validate.Var(strings.TrimSpace(s), "required"); err != nil {
			return violation
		}
		return nil
	}
}

// Numeric requires the body field to hold a JSON number.
func Numeric(field, msg string) Rule {
	return func(req *Request) *Violation {
		raw := req.Body[field]
		if _, ok := numericValue(raw); !ok {
			return &Violation{Type: "field", Value: tokenValue(raw), Msg: msg, Path: field, Location: "body"}
		}
		return nil
	}
}

// NotEmpty requires the body field to be present and not an empty string.
// Unlike RequiredString it accepts zero values, so a price of 0 passes here
// and is left for the positivity rule to reject.
func NotEmpty(field, msg string) Rule {
	return func(req *Request) *Violation {
		raw, ok := req.Body[field]
		violation := &Violation{Type: "field", Value: tokenValue(raw), Msg: msg, Path: field, Location: "body"}
		if !ok || string(raw) == "null" {
			return violation
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) == "" {
			return violation
		}
		return nil
	}
}

// Positive requires the body field to hold a value strictly greater than
// zero. A non-numeric value cannot satisfy the comparison, so it fails this
// rule as well as Numeric; the two violations are reported independently.
func Positive(field, msg string) Rule {
	return func(req *Request) *Violation {
		raw := req.Body[field]
		violation := &Violation{Type: "field", Value: tokenValue(raw), Msg: msg, Path: field, Location: "body"}
		f, ok := numericValue(raw)
		if !ok {
			return violation
		}
		if err := validate.Var(f, "gt=0"); err != nil {
			return violation
		}
		return nil
	}
}

// Boolean requires the body field to hold a JSON boolean.
func Boolean(field, msg string) Rule {
	return func(req *Request) *Violation {
		raw, ok := req.Body[field]
		violation := &Violation{Type: "field", Value: tokenValue(raw), Msg: msg, Path: field, Location: "body"}
		if !ok || string(raw) == "null" {
			return violation
		}
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return violation
		}
		return nil
	}
}

// numericValue extracts the field's value when the raw token is a JSON
// number. Unmarshal treats null as a no-op, so it is ruled out explicitly.
func numericValue(raw json.RawMessage) (float64, bool) {
	if raw == nil || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}

func tokenValue(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	return string(raw)
}
