// Package forms validates raw form input against data-described schemas and
// normalizes it into typed values. A Schema is a list of Field constraints
// evaluated by one generic validator; nothing here knows about HTTP or the
// store.
package forms

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slices"
)

// Form is raw textual input keyed by field name.
type Form map[string]string

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBool
	KindList
	KindEnum
	KindEmail
	KindURL
)

// Field describes one input. Message is reported for any failed check;
// MaxMessage, when set, replaces it for the upper length bound.
type Field struct {
	Name     string
	Kind     Kind
	Optional bool
	MinLen   int
	MaxLen   int
	Min      *float64
	Enum     []string
	Default  string
	// MustBeTrue accepts a bool field only when it is literally true.
	MustBeTrue bool
	Transform  func(string) string
	Message    string
	MaxMessage string
}

type Schema struct {
	Name   string
	Fields []Field
}

// ValidationErrors maps a field name to its first failure message.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = validator.New()

func atLeast(v float64) *float64 { return &v }

// Validate evaluates every field of s against f. It returns either the
// normalized values or a ValidationErrors, never both.
func (s Schema) Validate(f Form) (Values, error) {
	values := Values{}
	errs := ValidationErrors{}
	for _, field := range s.Fields {
		raw, present := f[field.Name]
		if !present || raw == "" {
			raw = field.Default
		}
		if field.Transform != nil {
			raw = field.Transform(raw)
		}
		v, msg := field.check(raw)
		if msg != "" {
			errs[field.Name] = msg
			continue
		}
		if v != nil {
			values[field.Name] = v
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// Field returns the named field definition.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (f Field) fail() string {
	if f.Message != "" {
		return f.Message
	}
	return fmt.Sprintf("Invalid %s.", f.Name)
}

// check returns the typed value for raw, nil when an optional field is
// absent, or a failure message.
func (f Field) check(raw string) (interface{}, string) {
	switch f.Kind {
	case KindNumber, KindInteger:
		return f.checkNumber(raw)
	case KindBool:
		if f.MustBeTrue {
			if !checked(raw) {
				return nil, f.fail()
			}
			return true, ""
		}
		b, ok := parseBool(raw)
		if !ok {
			return nil, f.fail()
		}
		return b, ""
	case KindList:
		return SplitList(raw), ""
	}

	if raw == "" && f.Optional {
		return nil, ""
	}
	switch f.Kind {
	case KindEnum:
		if !slices.Contains(f.Enum, raw) {
			return nil, f.fail()
		}
	case KindEmail:
		if validate.Var(raw, "required,email") != nil {
			return nil, f.fail()
		}
	case KindURL:
		if validate.Var(raw, "required,url") != nil {
			return nil, f.fail()
		}
	}
	if n := len([]rune(raw)); n < f.MinLen {
		return nil, f.fail()
	} else if f.MaxLen > 0 && n > f.MaxLen {
		if f.MaxMessage != "" {
			return nil, f.MaxMessage
		}
		return nil, f.fail()
	}
	return raw, ""
}

// checkNumber coerces raw like a number input: empty input reads as zero
// unless the field is optional.
func (f Field) checkNumber(raw string) (interface{}, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if f.Optional {
			return nil, ""
		}
		raw = "0"
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, f.fail()
	}
	if f.Min != nil && n < *f.Min {
		return nil, f.fail()
	}
	if f.Kind == KindInteger {
		if n != math.Trunc(n) || math.Abs(n) > maxInteger {
			return nil, f.fail()
		}
		return int(n), ""
	}
	return n, ""
}

// maxInteger bounds whole-number fields such as room counts.
const maxInteger = math.MaxInt32

// checked accepts a JSON true or a ticked urlencoded checkbox.
func checked(raw string) bool {
	return raw == "true" || raw == "on"
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes":
		return true, true
	case "false", "off", "0", "no", "":
		return false, true
	}
	return false, false
}

// SplitList turns a comma-separated input into a list: segments are
// trimmed, empty segments dropped, and empty input yields an empty list.
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinList is the inverse of SplitList for prefilling edit forms.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
