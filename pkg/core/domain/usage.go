package domain

import "strings"

// UsageCategory is the breakdown dimension for electricity consumption in
// the report balance. Closed set of four.
type UsageCategory string

const (
	UsageTechnological UsageCategory = "technological"
	UsageOwnNeeds      UsageCategory = "own_needs"
	UsageProduction    UsageCategory = "production"
	UsageHousehold     UsageCategory = "household"
)

// UsagePriority is the fixed tie-break order: when an item's text matches
// keywords of several categories, the one listed first wins.
func UsagePriority() []UsageCategory {
	return []UsageCategory{UsageTechnological, UsageOwnNeeds, UsageProduction, UsageHousehold}
}

// Valid reports whether the category belongs to the closed set.
func (u UsageCategory) Valid() bool {
	switch u {
	case UsageTechnological, UsageOwnNeeds, UsageProduction, UsageHousehold:
		return true
	}
	return false
}

type usageAlias struct {
	label    string
	category UsageCategory
}

// usageAliases lists RU/UZ/EN synonyms in a fixed order. Lookups are exact
// first, then bidirectional substring, matching how operators abbreviate
// the categories in source spreadsheets ("с.н.", "хозбыт", "tech"). The
// order matters for ambiguous labels, so this is a slice, not a map.
var usageAliases = []usageAlias{
	// RU variants
	{"технолог", UsageTechnological},
	{"технологический", UsageTechnological},
	{"технология", UsageTechnological},
	{"собственные нужды", UsageOwnNeeds},
	{"с.н.", UsageOwnNeeds},
	{"собств. нужды", UsageOwnNeeds},
	{"производств", UsageProduction},
	{"производственный", UsageProduction},
	{"хоз-быт", UsageHousehold},
	{"хозбыт", UsageHousehold},
	{"хозяйственно-бытовые", UsageHousehold},
	{"бытовые", UsageHousehold},
	{"быт", UsageHousehold},
	// EN variants
	{"tech", UsageTechnological},
	{"techn", UsageTechnological},
	{"technological", UsageTechnological},
	{"own", UsageOwnNeeds},
	{"aux", UsageOwnNeeds},
	{"own_needs", UsageOwnNeeds},
	{"prod", UsageProduction},
	{"production", UsageProduction},
	{"general", UsageProduction},
	{"house", UsageHousehold},
	{"household", UsageHousehold},
}

// ParseUsageCategory normalizes a free-form category label (lowercase, trim)
// against the known ids, synonyms and keyword tables. Returns false when
// nothing matches; callers fall back to inference in that case.
func ParseUsageCategory(s string) (UsageCategory, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return "", false
	}
	if cat := UsageCategory(norm); cat.Valid() {
		return cat, true
	}
	for _, a := range usageAliases {
		if a.label == norm {
			return a.category, true
		}
	}
	for _, a := range usageAliases {
		if strings.Contains(norm, a.label) || strings.Contains(a.label, norm) {
			return a.category, true
		}
	}
	for _, cat := range UsagePriority() {
		for _, kw := range DefaultUsageKeywords()[cat] {
			if strings.Contains(norm, kw) {
				return cat, true
			}
		}
	}
	return "", false
}
