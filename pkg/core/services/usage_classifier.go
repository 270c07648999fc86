package services

import (
	"log/slog"
	"strings"

	"github.com/eaip/passport-core/pkg/core/domain"
	"github.com/eaip/passport-core/pkg/core/ports"
)

// KeywordUsageClassifier assigns an equipment item to a usage category.
// Resolution order: explicit override in the item's extra attributes,
// keyword scan over the item's own text, correlation against metering
// node locations, production as the terminal default. When several
// categories match the same text bag, the fixed priority order breaks the
// tie: technological beats own-needs beats production beats household.
type KeywordUsageClassifier struct {
	keywords map[domain.UsageCategory][]string
	hints    []domain.NodeLocationHint
	logger   *slog.Logger
}

// UsageOption configures the usage classifier.
type UsageOption func(*KeywordUsageClassifier)

// WithUsageKeywords replaces the built-in per-category keyword lists.
func WithUsageKeywords(keywords map[domain.UsageCategory][]string) UsageOption {
	return func(c *KeywordUsageClassifier) {
		c.keywords = keywords
	}
}

// WithNodeLocationHints replaces the built-in node location groups.
func WithNodeLocationHints(hints []domain.NodeLocationHint) UsageOption {
	return func(c *KeywordUsageClassifier) {
		c.hints = hints
	}
}

// WithUsageLogger sets the structured logger.
func WithUsageLogger(logger *slog.Logger) UsageOption {
	return func(c *KeywordUsageClassifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewKeywordUsageClassifier builds the classifier with the default
// keyword tables.
func NewKeywordUsageClassifier(opts ...UsageOption) ports.UsageClassifier {
	c := &KeywordUsageClassifier{
		keywords: domain.DefaultUsageKeywords(),
		hints:    domain.DefaultNodeLocationHints(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify resolves the usage category for one equipment item. The nodes
// slice is consulted only when the item's own text is inconclusive and the
// item carries a location.
func (c *KeywordUsageClassifier) Classify(item domain.EquipmentItem, nodes []domain.NodeItem) domain.UsageCategory {
	if raw, ok := item.Extra[domain.ExtraUsageCategory]; ok {
		if category, ok := domain.ParseUsageCategory(raw); ok {
			return category
		}
		c.logger.Warn("unrecognized usage category override, falling through",
			"item", item.Name, "value", raw)
	}

	bag := textBag(item)
	if category, ok := c.scanKeywords(bag); ok {
		return category
	}

	if category, ok := c.nodeLocationCategory(item, nodes); ok {
		return category
	}

	return domain.UsageProduction
}

// scanKeywords checks the text bag against each category's keywords in
// priority order, so the first matching category is also the winning one.
func (c *KeywordUsageClassifier) scanKeywords(bag string) (domain.UsageCategory, bool) {
	if bag == "" {
		return "", false
	}
	for _, category := range domain.UsagePriority() {
		for _, kw := range c.keywords[category] {
			if strings.Contains(bag, kw) {
				return category, true
			}
		}
	}
	return "", false
}

// nodeLocationCategory promotes an item whose location matches a metering
// node installed in a recognizable area, e.g. equipment in the boiler
// house counts as own needs even when its name says nothing.
func (c *KeywordUsageClassifier) nodeLocationCategory(item domain.EquipmentItem, nodes []domain.NodeItem) (domain.UsageCategory, bool) {
	location := strings.ToLower(strings.TrimSpace(item.Location))
	if location == "" {
		return "", false
	}
	for _, node := range nodes {
		nodeLoc := strings.ToLower(strings.TrimSpace(node.Location))
		if nodeLoc == "" {
			continue
		}
		if !strings.Contains(nodeLoc, location) && !strings.Contains(location, nodeLoc) {
			continue
		}
		for _, hint := range c.hints {
			for _, kw := range hint.Keywords {
				if strings.Contains(nodeLoc, kw) {
					return hint.Category, true
				}
			}
		}
	}
	return "", false
}

// textBag lowercases and concatenates the item fields the keyword scan
// looks at.
func textBag(item domain.EquipmentItem) string {
	parts := []string{item.Name, item.Type, item.Location, item.Notes}
	var nonEmpty []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			nonEmpty = append(nonEmpty, strings.ToLower(s))
		}
	}
	return strings.Join(nonEmpty, " ")
}
