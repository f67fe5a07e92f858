//go:build unit
// +build unit

package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLadder_OrderAndSize(t *testing.T) {
	categories := Ladder()

	require.Len(t, categories, 12)
	assert.Equal(t, GainsSlightly, categories[0])
	assert.Equal(t, GainsSharply, categories[4])
	assert.Equal(t, DeclinesSlightly, categories[5])
	assert.Equal(t, DeclinesSharply, categories[9])
	assert.Equal(t, EdgesUpSlightly, categories[10])
	assert.Equal(t, EdgesDownSlightly, categories[11])
}

func TestLadder_ReturnsCopy(t *testing.T) {
	categories := Ladder()
	categories[0] = Category("mutated")

	assert.Equal(t, GainsSlightly, Ladder()[0])
}

func TestCategory_Sentence(t *testing.T) {
	assert.Equal(t, "Gains sharply.", GainsSharply.Sentence())
	assert.Equal(t, "Edges down slightly.", EdgesDownSlightly.Sentence())
}

func TestCategory_Direction(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{GainsSlightly, DirectionGain},
		{GainsSharply, DirectionGain},
		{DeclinesModestly, DirectionDecline},
		{DeclinesSharply, DirectionDecline},
		{EdgesUpSlightly, DirectionStable},
		{EdgesDownSlightly, DirectionStable},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.category.Direction())
		})
	}
}

func TestCategory_Keyword(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{GainsSlightly, "slightly"},
		{GainsModestly, "modestly"},
		{GainsModerately, "moderately"},
		{DeclinesStrongly, "strongly"},
		{DeclinesSharply, "sharply"},
		{EdgesUpSlightly, "slightly"},
		{EdgesDownSlightly, "slightly"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.category.Keyword())
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Category
		shouldErr bool
	}{
		{"plain label", "Gains sharply", GainsSharply, false},
		{"label with period", "Gains sharply.", GainsSharply, false},
		{"edge label with period", "Edges down slightly.", EdgesDownSlightly, false},
		{"unknown label", "Moons wildly", "", true},
		{"empty", "", "", true},
		{"wrong case", "gains sharply", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := ParseCategory(tt.input)
			if tt.shouldErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, category)
			}
		})
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, category := range Ladder() {
		assert.True(t, category.Valid(), string(category))
	}
	assert.False(t, Category("Gains wildly").Valid())
}
