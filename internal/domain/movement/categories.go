package movement

import (
	"fmt"
	"strings"
)

// Category is one of the twelve ordered price-movement labels.
type Category string

// The twelve categories: five gain levels, five decline levels and two
// near-flat edge moves. The string values are the training labels and must
// not be changed.
const (
	GainsSlightly      Category = "Gains slightly"
	GainsModestly      Category = "Gains modestly"
	GainsModerately    Category = "Gains moderately"
	GainsStrongly      Category = "Gains strongly"
	GainsSharply       Category = "Gains sharply"
	DeclinesSlightly   Category = "Declines slightly"
	DeclinesModestly   Category = "Declines modestly"
	DeclinesModerately Category = "Declines moderately"
	DeclinesStrongly   Category = "Declines strongly"
	DeclinesSharply    Category = "Declines sharply"
	EdgesUpSlightly    Category = "Edges up slightly"
	EdgesDownSlightly  Category = "Edges down slightly"
)

// Direction constants for Category.Direction.
const (
	DirectionGain    = "gain"
	DirectionDecline = "decline"
	DirectionStable  = "stable"
)

var ladder = []Category{
	GainsSlightly,
	GainsModestly,
	GainsModerately,
	GainsStrongly,
	GainsSharply,
	DeclinesSlightly,
	DeclinesModestly,
	DeclinesModerately,
	DeclinesStrongly,
	DeclinesSharply,
	EdgesUpSlightly,
	EdgesDownSlightly,
}

// Ladder returns all categories in canonical order. Callers that iterate
// over the label space must use this order rather than a map.
func Ladder() []Category {
	out := make([]Category, len(ladder))
	copy(out, ladder)
	return out
}

// Sentence returns the category as written into the dataset, i.e. the label
// followed by a period.
func (c Category) Sentence() string {
	return string(c) + "."
}

// Direction reports whether the category describes a gain, a decline or a
// near-flat move.
func (c Category) Direction() string {
	switch {
	case strings.HasPrefix(string(c), "Gains"):
		return DirectionGain
	case strings.HasPrefix(string(c), "Declines"):
		return DirectionDecline
	default:
		return DirectionStable
	}
}

// Keyword returns the adverb that aligns headlines with the category, e.g.
// "sharply" for "Gains sharply". For the edge categories this is "slightly".
func (c Category) Keyword() string {
	fields := strings.Fields(string(c))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Valid reports whether c is one of the twelve ladder categories.
func (c Category) Valid() bool {
	for _, known := range ladder {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a label with or without the trailing period.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSuffix(s, "."))
	if !c.Valid() {
		return "", fmt.Errorf("unknown movement category: %q", s)
	}
	return c, nil
}
