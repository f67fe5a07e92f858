package corpus

import (
	"fmt"
	"strings"

	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/movement"
)

// TickerPlaceholder is the substitution marker every template must contain.
const TickerPlaceholder = "{ticker}"

// Sample is one labeled example: a rendered headline and its movement label
// sentence.
type Sample struct {
	Ticker   string
	Headline string
	Change   string
}

// Catalog is the headline vocabulary: the ticker universe plus the headline
// templates for every movement category.
type Catalog struct {
	Tickers   []string
	Templates map[movement.Category][]string
}

// DefaultCatalog returns the built-in vocabulary.
func DefaultCatalog() *Catalog {
	tickers := make([]string, len(defaultTickers))
	copy(tickers, defaultTickers)

	templates := make(map[movement.Category][]string, len(defaultTemplates))
	for category, list := range defaultTemplates {
		copied := make([]string, len(list))
		copy(copied, list)
		templates[category] = copied
	}

	return &Catalog{
		Tickers:   tickers,
		Templates: templates,
	}
}

// Validate checks that the catalog can label every ladder category: at least
// one ticker, at least one template per category, and the ticker placeholder
// present in every template.
func (c *Catalog) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("catalog has no tickers")
	}

	for _, category := range movement.Ladder() {
		templates := c.Templates[category]
		if len(templates) == 0 {
			return fmt.Errorf("catalog has no templates for category %q", category)
		}
		for _, template := range templates {
			if !strings.Contains(template, TickerPlaceholder) {
				return fmt.Errorf("template %q for category %q lacks the %s placeholder", template, category, TickerPlaceholder)
			}
		}
	}

	return nil
}

// AlignmentRate returns the fraction of the category's templates whose text
// contains the category's keyword. The gain and decline categories are fully
// aligned; the edge categories only partially. The rate is a property of the
// vocabulary reported by audits, not an enforced constraint.
func (c *Catalog) AlignmentRate(category movement.Category) float64 {
	templates := c.Templates[category]
	if len(templates) == 0 {
		return 0
	}

	keyword := category.Keyword()
	aligned := 0
	for _, template := range templates {
		if strings.Contains(template, keyword) {
			aligned++
		}
	}
	return float64(aligned) / float64(len(templates))
}

// RenderHeadline substitutes the ticker into the template and appends the
// trailing period.
func RenderHeadline(template, ticker string) string {
	return strings.ReplaceAll(template, TickerPlaceholder, ticker) + "."
}
