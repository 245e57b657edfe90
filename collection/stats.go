// ABOUTME: Aggregate statistics over card records: totals plus quantity sums grouped by rarity, color, and kind.
// ABOUTME: Explicit iteration with accumulator maps; group results cover the full fixed value sets, zeros included.
package collection

import (
	"sort"

	"github.com/2389-research/binder/card"
)

// StatsFilter narrows the records counted. Empty string fields do not
// filter; all set fields must match (AND). Attribute comparison is exact,
// matching the fixed value spelling.
type StatsFilter struct {
	Color      string `json:"color,omitempty"`
	Rarity     string `json:"rarity,omitempty"`
	Kind       string `json:"kind,omitempty"`
	AltArtOnly bool   `json:"alt_art_only,omitempty"`
}

// Matches reports whether the card passes the filter.
func (f StatsFilter) Matches(c card.Card) bool {
	if f.Color != "" && c.Color != f.Color {
		return false
	}
	if f.Rarity != "" && c.Rarity != f.Rarity {
		return false
	}
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	if f.AltArtOnly && !c.AltArt {
		return false
	}
	return true
}

// GroupCount is one group-by bucket: the attribute value and the summed
// quantity of the matching records.
type GroupCount struct {
	Value    string `json:"value"`
	Quantity int    `json:"quantity"`
}

// Stats are the aggregate numbers for a (possibly filtered) set of records.
// TotalCards sums quantities, UniqueEntries counts rows, AltArtCount counts
// rows flagged alt art. Each group-by lists every fixed attribute value in
// display order with its quantity sum, zeros included; values found in the
// data but outside the fixed set follow in sorted order.
type Stats struct {
	TotalCards    int          `json:"total_cards"`
	UniqueEntries int          `json:"unique_entries"`
	AltArtCount   int          `json:"alt_art_count"`
	ByRarity      []GroupCount `json:"by_rarity"`
	ByColor       []GroupCount `json:"by_color"`
	ByKind        []GroupCount `json:"by_kind"`
}

// ComputeStats aggregates the records that pass the filter.
func ComputeStats(records []card.Card, filter StatsFilter) Stats {
	var stats Stats
	byRarity := make(map[string]int)
	byColor := make(map[string]int)
	byKind := make(map[string]int)

	for _, c := range records {
		if !filter.Matches(c) {
			continue
		}
		stats.TotalCards += c.Quantity
		stats.UniqueEntries++
		if c.AltArt {
			stats.AltArtCount++
		}
		byRarity[c.Rarity] += c.Quantity
		byColor[c.Color] += c.Quantity
		byKind[c.Kind] += c.Quantity
	}

	stats.ByRarity = orderGroups(byRarity, card.Rarities)
	stats.ByColor = orderGroups(byColor, card.Colors)
	stats.ByKind = orderGroups(byKind, card.Kinds)
	return stats
}

// orderGroups lays the accumulator map out over the fixed value order,
// filling absent values with zero, then appends any off-list values found
// in the data in sorted order. Unset attributes (empty string) are skipped.
func orderGroups(acc map[string]int, order []string) []GroupCount {
	groups := make([]GroupCount, 0, len(order))
	covered := make(map[string]bool, len(order))
	for _, value := range order {
		groups = append(groups, GroupCount{Value: value, Quantity: acc[value]})
		covered[value] = true
	}

	var extras []string
	for value := range acc {
		if value == "" || covered[value] {
			continue
		}
		extras = append(extras, value)
	}
	sort.Strings(extras)
	for _, value := range extras {
		groups = append(groups, GroupCount{Value: value, Quantity: acc[value]})
	}
	return groups
}
