package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePersonName(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr error
	}{
		{name: "simple", value: "Ada", want: "Ada"},
		{name: "trimmed", value: "  Ada  ", want: "Ada"},
		{name: "exactly 50", value: strings.Repeat("a", 50), want: strings.Repeat("a", 50)},
		{name: "51 characters", value: strings.Repeat("a", 51), wantErr: ErrConstraintViolation},
		{name: "50 runes multibyte", value: strings.Repeat("é", 50), want: strings.Repeat("é", 50)},
		{name: "empty", value: "", wantErr: ErrConstraintViolation},
		{name: "blank", value: "   ", wantErr: ErrConstraintViolation},
		{name: "number", value: 42, wantErr: ErrTypeMismatch},
		{name: "nil", value: nil, wantErr: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePersonName("first_name", tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr error
	}{
		{name: "valid", value: "a@b.com"},
		{name: "plus and dots", value: "first.last+tag@mail.example.org"},
		{name: "missing at", value: "ab.com", wantErr: ErrConstraintViolation},
		{name: "missing tld", value: "a@b", wantErr: ErrConstraintViolation},
		{name: "one letter tld", value: "a@b.c", wantErr: ErrConstraintViolation},
		{name: "empty", value: "", wantErr: ErrConstraintViolation},
		{name: "leading space", value: " a@b.com", wantErr: ErrConstraintViolation},
		{name: "surrounding spaces", value: "  a@b.com  ", wantErr: ErrConstraintViolation},
		{name: "trailing newline", value: "a@b.com\n", wantErr: ErrConstraintViolation},
		{name: "not a string", value: true, wantErr: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEmail(tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestValidateAmenityName(t *testing.T) {
	_, err := ValidateAmenityName(strings.Repeat("x", 50))
	require.NoError(t, err)

	_, err = ValidateAmenityName(strings.Repeat("x", 51))
	require.ErrorIs(t, err, ErrConstraintViolation)

	// Empty and non-string are rejected with different kinds.
	_, err = ValidateAmenityName("")
	require.ErrorIs(t, err, ErrConstraintViolation)
	_, err = ValidateAmenityName(7)
	require.ErrorIs(t, err, ErrTypeMismatch)

	// Length counts the raw value, padding included.
	_, err = ValidateAmenityName(" " + strings.Repeat("x", 50))
	require.ErrorIs(t, err, ErrConstraintViolation)

	got, err := ValidateAmenityName("  Pool ")
	require.NoError(t, err)
	assert.Equal(t, "  Pool ", got)

	got, err = ValidateAmenityName("   ")
	require.NoError(t, err)
	assert.Equal(t, "   ", got)
}

func TestValidateNumbers(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(any) (float64, error)
		value   any
		want    float64
		wantErr error
	}{
		{name: "price float", fn: ValidatePrice, value: 99.5, want: 99.5},
		{name: "price int", fn: ValidatePrice, value: 100, want: 100},
		{name: "price json number", fn: ValidatePrice, value: json.Number("12.25"), want: 12.25},
		{name: "price zero", fn: ValidatePrice, value: 0, wantErr: ErrConstraintViolation},
		{name: "price negative", fn: ValidatePrice, value: -1.0, wantErr: ErrConstraintViolation},
		{name: "price string", fn: ValidatePrice, value: "10", wantErr: ErrTypeMismatch},
		{name: "price bool", fn: ValidatePrice, value: true, wantErr: ErrTypeMismatch},
		{name: "price inf", fn: ValidatePrice, value: math.Inf(1), wantErr: ErrConstraintViolation},
		{name: "latitude lower bound", fn: ValidateLatitude, value: -90, want: -90},
		{name: "latitude upper bound", fn: ValidateLatitude, value: 90.0, want: 90},
		{name: "latitude out of range", fn: ValidateLatitude, value: 90.0001, wantErr: ErrConstraintViolation},
		{name: "latitude nan", fn: ValidateLatitude, value: math.NaN(), wantErr: ErrConstraintViolation},
		{name: "longitude lower bound", fn: ValidateLongitude, value: int64(-180), want: -180},
		{name: "longitude out of range", fn: ValidateLongitude, value: 181, wantErr: ErrConstraintViolation},
		{name: "longitude nil", fn: ValidateLongitude, value: nil, wantErr: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRating(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr error
	}{
		{name: "lower bound", value: 1, want: 1},
		{name: "upper bound", value: 5, want: 5},
		{name: "zero", value: 0, wantErr: ErrConstraintViolation},
		{name: "six", value: 6, wantErr: ErrConstraintViolation},
		{name: "integral float", value: 4.0, want: 4},
		{name: "json number", value: json.Number("3"), want: 3},
		{name: "fractional", value: 4.5, wantErr: ErrTypeMismatch},
		{name: "string", value: "5", wantErr: ErrTypeMismatch},
		{name: "bool", value: true, wantErr: ErrTypeMismatch},
		{name: "large uint", value: uint64(1 << 40), wantErr: ErrConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateRating(tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDescription(t *testing.T) {
	got, err := ValidateDescription(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = ValidateDescription("   ")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = ValidateDescription("  cozy loft ")
	require.NoError(t, err)
	require.Equal(t, "cozy loft", *got)

	var typedNil *string
	got, err = ValidateDescription(typedNil)
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = ValidateDescription(3)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestValidateIDList(t *testing.T) {
	got, err := ValidateIDList("amenities", []any{"a", "b", "a"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)

	got, err = ValidateIDList("amenities", nil)
	require.NoError(t, err)
	require.Empty(t, got)

	in := []string{"x", "y"}
	got, err = ValidateIDList("amenities", in)
	require.NoError(t, err)
	got[0] = "changed"
	require.Equal(t, "x", in[0], "result must not alias the input")

	_, err = ValidateIDList("amenities", []any{"a", 1})
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = ValidateIDList("amenities", []any{""})
	require.ErrorIs(t, err, ErrConstraintViolation)

	_, err = ValidateIDList("amenities", "a")
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestValidatePassword(t *testing.T) {
	_, err := ValidatePassword("short")
	require.ErrorIs(t, err, ErrConstraintViolation)

	_, err = ValidatePassword(strings.Repeat("p", 73))
	require.ErrorIs(t, err, ErrConstraintViolation)

	_, err = ValidatePassword(12345678)
	require.ErrorIs(t, err, ErrTypeMismatch)

	got, err := ValidatePassword("correct horse")
	require.NoError(t, err)
	require.Equal(t, "correct horse", got)
}

func TestFieldError(t *testing.T) {
	_, err := ValidateBool("is_admin", "yes")
	require.ErrorIs(t, err, ErrTypeMismatch)
	require.True(t, IsValidationError(err))

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "is_admin", fe.Field)
	require.Equal(t, "is_admin: must be a boolean, got string", err.Error())
}
