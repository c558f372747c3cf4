package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlaceCategory(t *testing.T) {
	t.Run("accepts every known category", func(t *testing.T) {
		for _, c := range PlaceCategories {
			parsed, err := ParsePlaceCategory(string(c))
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		parsed, err := ParsePlaceCategory("  Restaurant ")
		require.NoError(t, err)
		assert.Equal(t, CategoryRestaurant, parsed)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParsePlaceCategory("cafe")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParsePlaceCategory("")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestParsePreference(t *testing.T) {
	t.Run("accepts all three values", func(t *testing.T) {
		for _, s := range []string{"neutral", "interested", "not_interested"} {
			parsed, err := ParsePreference(s)
			require.NoError(t, err)
			assert.Equal(t, Preference(s), parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParsePreference("maybe")
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrInvalidPreference)
	})
}

func TestValidatePlace(t *testing.T) {
	valid := func() *Place {
		return &Place{
			ID:       "abc123",
			Name:     "Taqueria El Sol",
			Category: CategoryRestaurant,
			VideoID:  "vid1",
		}
	}

	t.Run("accepts a valid place", func(t *testing.T) {
		assert.NoError(t, ValidatePlace(valid()))
	})

	t.Run("rejects nil", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePlace(nil), ErrValidation)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		p := valid()
		p.Name = "   "
		err := ValidatePlace(p)
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrEmptyPlaceName)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		p := valid()
		p.Category = "diner"
		err := ValidatePlace(p)
		assert.ErrorIs(t, err, ErrInvalidCategory)
		assert.Contains(t, err.Error(), "Taqueria El Sol")
	})

	t.Run("rejects missing video reference", func(t *testing.T) {
		p := valid()
		p.VideoID = ""
		assert.ErrorIs(t, ValidatePlace(p), ErrEmptyVideoRef)
	})
}

func TestValidateChatTurn(t *testing.T) {
	t.Run("accepts user and assistant turns", func(t *testing.T) {
		assert.NoError(t, ValidateChatTurn(&ChatTurn{Role: RoleUser, Content: "hi"}))
		assert.NoError(t, ValidateChatTurn(&ChatTurn{Role: RoleAssistant, Content: "hello"}))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		err := ValidateChatTurn(&ChatTurn{Role: "system", Content: "hi"})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		err := ValidateChatTurn(&ChatTurn{Role: RoleUser, Content: " "})
		assert.ErrorIs(t, err, ErrEmptyContent)
	})
}
