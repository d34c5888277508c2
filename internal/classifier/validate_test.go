package classifier_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimbus/internal/classifier"
)

func TestValidate(t *testing.T) {
	bounds := classifier.DefaultBounds()
	tests := []struct {
		name  string
		input any
		want  classifier.ValidationKind
	}{
		{"not a string", 42, classifier.InvalidType},
		{"nil", nil, classifier.InvalidType},
		{"empty", "", classifier.EmptyInput},
		{"whitespace only", "   \t\n", classifier.EmptyInput},
		{"too short", "ab", classifier.TooShort},
		{"too long", strings.Repeat("a", 1001), classifier.TooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifier.Validate(tt.input, bounds)
			require.Error(t, err)
			assert.True(t, errors.Is(err, classifier.ErrValidation))
			var validationErr *classifier.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.want, validationErr.Kind)
			assert.NotEmpty(t, validationErr.Reason)
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	bounds := classifier.DefaultBounds()
	for _, input := range []string{
		"abc",
		strings.Repeat("a", 1000),
		"Heroku para desplegar aplicaciones",
		"ñañ",
	} {
		assert.NoError(t, classifier.Validate(input, bounds), "input %q", input)
	}
}

func TestValidateCountsRawRunes(t *testing.T) {
	// Surrounding whitespace counts toward the length of non-empty input.
	assert.NoError(t, classifier.Validate(" a ", classifier.DefaultBounds()))
	// Multi-byte runes count once.
	assert.NoError(t, classifier.Validate(strings.Repeat("é", 1000), classifier.DefaultBounds()))
}

func TestValidateCustomBounds(t *testing.T) {
	bounds := classifier.Bounds{MinLength: 5, MaxLength: 8}
	var validationErr *classifier.ValidationError

	require.ErrorAs(t, classifier.Validate("abcd", bounds), &validationErr)
	assert.Equal(t, classifier.TooShort, validationErr.Kind)
	assert.Contains(t, validationErr.Error(), "at least 5")

	require.ErrorAs(t, classifier.Validate("abcdefghi", bounds), &validationErr)
	assert.Equal(t, classifier.TooLong, validationErr.Kind)

	assert.NoError(t, classifier.Validate("abcdef", bounds))
}
