package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator is a pluggable predicate attached to a field or widget. It is
// stateless with respect to the owning form but may carry its own
// configuration (a threshold, a pattern). Implementations return nil when the
// value passes and a human-readable error otherwise.
//
// Validators are supplementary checks, not primary type checks: a validator
// that cannot interpret the value it receives should pass and leave format
// enforcement to the field's own conversion step.
type Validator interface {
	Validate(value any) error
}

// Func adapts a plain function to the Validator interface.
type Func func(value any) error

// Validate implements Validator.
func (fn Func) Validate(value any) error {
	if fn == nil {
		return nil
	}
	return fn(value)
}

// MinLength fails when the value's character count is below Min. Nil and
// empty values pass; emptiness is the required check's concern.
type MinLength struct {
	Min     int
	Message string
}

// Validate implements Validator.
func (v MinLength) Validate(value any) error {
	s := asString(value)
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) < v.Min {
		return errors.New(messageOr(v.Message, fmt.Sprintf("Must be at least %d characters", v.Min)))
	}
	return nil
}

// MaxLength fails when the value's character count exceeds Max.
type MaxLength struct {
	Max     int
	Message string
}

// Validate implements Validator.
func (v MaxLength) Validate(value any) error {
	s := asString(value)
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) > v.Max {
		return errors.New(messageOr(v.Message, fmt.Sprintf("Must be at most %d characters", v.Max)))
	}
	return nil
}

// MinValue fails when the numeric value is below Min. Values that cannot be
// read as a number pass; format enforcement belongs to the field.
type MinValue struct {
	Min     float64
	Message string
}

// Validate implements Validator.
func (v MinValue) Validate(value any) error {
	n, ok := asNumber(value)
	if !ok {
		return nil
	}
	if n < v.Min {
		return errors.New(messageOr(v.Message, fmt.Sprintf("Must be at least %v", v.Min)))
	}
	return nil
}

// MaxValue fails when the numeric value exceeds Max.
type MaxValue struct {
	Max     float64
	Message string
}

// Validate implements Validator.
func (v MaxValue) Validate(value any) error {
	n, ok := asNumber(value)
	if !ok {
		return nil
	}
	if n > v.Max {
		return errors.New(messageOr(v.Message, fmt.Sprintf("Must be at most %v", v.Max)))
	}
	return nil
}

// EvenInteger fails on odd integers. Unparseable input passes so the field's
// integer conversion stays the single source of format errors.
type EvenInteger struct{}

// Validate implements Validator.
func (EvenInteger) Validate(value any) error {
	n, err := strconv.Atoi(strings.TrimSpace(asString(value)))
	if err != nil {
		return nil
	}
	if n%2 != 0 {
		return errors.New("Must be an even number")
	}
	return nil
}

// Palindrome fails when the value read backward differs from the value read
// forward.
type Palindrome struct{}

// Validate implements Validator.
func (Palindrome) Validate(value any) error {
	s := asString(value)
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return errors.New("Must be a palindrome")
		}
	}
	return nil
}

// emailPattern is a deliberately permissive placeholder, not RFC 5322. It
// rejects addresses like "user@name" that carry no TLD segment.
var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// Email fails unless the value loosely resembles an email address.
type Email struct{}

// Validate implements Validator.
func (Email) Validate(value any) error {
	s := asString(value)
	if s == "" || !emailPattern.MatchString(s) {
		return errors.New("Must be a valid email address")
	}
	return nil
}

func messageOr(custom, fallback string) string {
	if strings.TrimSpace(custom) != "" {
		return custom
	}
	return fallback
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
