package domain

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field limits.
const (
	MaxNameLength       = 50
	MaxReviewTextLength = 1000
	MinPasswordLength   = 8
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72

	MinRating = 1
	MaxRating = 5

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// The validators below are pure: they take a raw value, usually straight out of
// a decoded JSON object, and return either the normalized value or a *FieldError.
// Entities call them from both their constructors and Update.

// ValidatePersonName checks a first or last name: non-empty after trimming, at most 50 characters.
func ValidatePersonName(field string, value any) (string, error) {
	return boundedString(field, value, MaxNameLength)
}

// ValidateEmail checks the address against the email pattern. The value is matched
// as given, so surrounding whitespace is rejected.
func ValidateEmail(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeMismatch("email", "must be a string, got %s", kindOf(value))
	}
	if !emailPattern.MatchString(s) {
		return "", constraintViolation("email", "invalid email format")
	}
	return s, nil
}

// ValidateBool accepts only a boolean.
func ValidateBool(field string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, typeMismatch(field, "must be a boolean, got %s", kindOf(value))
	}
	return b, nil
}

// ValidateAmenityName checks an amenity name: non-empty, at most 50 characters.
// Unlike person names it is neither trimmed nor blank-checked; the value is stored as given.
func ValidateAmenityName(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeMismatch("name", "must be a string, got %s", kindOf(value))
	}
	if s == "" {
		return "", constraintViolation("name", "must not be empty")
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return "", constraintViolation("name", "must be at most %d characters", MaxNameLength)
	}
	return s, nil
}

// ValidateTitle checks a place title: non-empty after trimming.
func ValidateTitle(value any) (string, error) {
	return boundedString("title", value, 0)
}

// ValidateDescription accepts nil, a string or a *string. Blank descriptions normalize to nil.
func ValidateDescription(value any) (*string, error) {
	var s string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *string:
		if v == nil {
			return nil, nil
		}
		s = *v
	case string:
		s = v
	default:
		return nil, typeMismatch("description", "must be a string or null, got %s", kindOf(value))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

// ValidatePrice checks that price is a finite number greater than zero.
func ValidatePrice(value any) (float64, error) {
	f, err := finiteNumber("price", value)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, constraintViolation("price", "must be greater than 0")
	}
	return f, nil
}

// ValidateLatitude checks that latitude is within [-90, 90].
func ValidateLatitude(value any) (float64, error) {
	return numberInRange("latitude", value, MinLatitude, MaxLatitude)
}

// ValidateLongitude checks that longitude is within [-180, 180].
func ValidateLongitude(value any) (float64, error) {
	return numberInRange("longitude", value, MinLongitude, MaxLongitude)
}

// ValidateID checks a reference id: a non-empty string.
func ValidateID(field string, value any) (string, error) {
	return boundedString(field, value, 0)
}

// ValidateIDList accepts nil, []string or []any of strings.
// The result is a fresh slice with duplicates removed, first occurrence wins.
func ValidateIDList(field string, value any) ([]string, error) {
	var raw []any
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		raw = make([]any, len(v))
		for i, s := range v {
			raw[i] = s
		}
	case []any:
		raw = v
	default:
		return nil, typeMismatch(field, "must be a list of ids, got %s", kindOf(value))
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		id, err := ValidateID(field, item)
		if err != nil {
			return nil, err
		}
		out, _ = appendUnique(out, id)
	}
	return out, nil
}

// ValidateReviewText checks review text: non-empty after trimming, at most 1000 characters.
func ValidateReviewText(value any) (string, error) {
	return boundedString("text", value, MaxReviewTextLength)
}

// ValidateRating checks that rating is an integer in [1, 5].
// Integral floats are accepted since JSON numbers decode as float64.
func ValidateRating(value any) (int, error) {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint:
		if v > math.MaxInt32 {
			return 0, constraintViolation("rating", "must be between %d and %d", MinRating, MaxRating)
		}
		n = int64(v)
	case uint64:
		if v > math.MaxInt32 {
			return 0, constraintViolation("rating", "must be between %d and %d", MinRating, MaxRating)
		}
		n = int64(v)
	case float32, float64, json.Number:
		f, err := finiteNumber("rating", v)
		if err != nil {
			return 0, err
		}
		if f != math.Trunc(f) {
			return 0, typeMismatch("rating", "must be an integer")
		}
		if f < MinRating || f > MaxRating {
			return 0, constraintViolation("rating", "must be between %d and %d", MinRating, MaxRating)
		}
		n = int64(f)
	default:
		return 0, typeMismatch("rating", "must be an integer, got %s", kindOf(value))
	}
	if n < MinRating || n > MaxRating {
		return 0, constraintViolation("rating", "must be between %d and %d", MinRating, MaxRating)
	}
	return int(n), nil
}

// ValidatePassword checks a plaintext password before hashing.
func ValidatePassword(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeMismatch("password", "must be a string, got %s", kindOf(value))
	}
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return "", constraintViolation("password", "must be at least %d characters", MinPasswordLength)
	}
	if len(s) > MaxPasswordLength {
		return "", constraintViolation("password", "must be at most %d bytes", MaxPasswordLength)
	}
	return s, nil
}

// boundedString trims value and requires it non-empty. maxLen <= 0 means unbounded.
func boundedString(field string, value any, maxLen int) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", typeMismatch(field, "must be a string, got %s", kindOf(value))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", constraintViolation(field, "must not be empty")
	}
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		return "", constraintViolation(field, "must be at most %d characters", maxLen)
	}
	return s, nil
}

func numberInRange(field string, value any, lo, hi float64) (float64, error) {
	f, err := finiteNumber(field, value)
	if err != nil {
		return 0, err
	}
	if f < lo || f > hi {
		return 0, constraintViolation(field, "must be between %g and %g", lo, hi)
	}
	return f, nil
}

func finiteNumber(field string, value any) (float64, error) {
	f, ok := toFloat(value)
	if !ok {
		return 0, typeMismatch(field, "must be a number, got %s", kindOf(value))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, constraintViolation(field, "must be a finite number")
	}
	return f, nil
}

// toFloat converts any Go integer or float kind. Booleans are not numbers.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any, []string:
		return "list"
	case map[string]any:
		return "object"
	}
	if _, ok := toFloat(value); ok {
		return "number"
	}
	return "unsupported value"
}
