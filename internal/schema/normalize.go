// backend-go/internal/schema/normalize.go
package schema

import (
	"sort"
	"strings"
)

// Alias tables for the three procurement inputs. Keys are canonical column
// names, values are accepted aliases in priority order.
var (
	MaterialsAliases = map[string][]string{
		"material_id": {"material", "id", "code"},
		"name":        {"description", "material_name"},
	}

	PricesAliases = map[string][]string{
		"material_id": {"material", "id", "code"},
		"date":        {"date"},
		"price":       {"price"},
		"vendor_id":   {"vendor"},
	}

	VendorsAliases = map[string][]string{
		"material_id":       {"material_id"},
		"vendor_id":         {"vendor_id"},
		"reliability_score": {"reliability_score"},
		"delivery_days":     {"delivery_days", "avg_delivery_days"},
		"price_per_unit":    {"price_per_unit"},
	}
)

// Clean trims surrounding whitespace and lower-cases a raw column name.
func Clean(column string) string {
	return strings.ToLower(strings.TrimSpace(column))
}

// Normalize maps cleaned column names to canonical ones. For each canonical
// name not already present among the cleaned columns, the first matching
// alias is renamed to it. Canonical names are resolved in sorted order so an
// alias shared by two canonicals always goes to the same one. Unmatched
// columns are left untouched; missing canonical columns are not an error
// here, consumers detect absence.
func Normalize(columns []string, aliases map[string][]string) map[string]string {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[Clean(col)] = true
	}

	canonicals := make([]string, 0, len(aliases))
	for canonical := range aliases {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	rename := make(map[string]string)
	for _, canonical := range canonicals {
		if present[canonical] {
			continue
		}
		for _, alias := range aliases[canonical] {
			if !present[alias] {
				continue
			}
			if _, claimed := rename[alias]; claimed {
				continue
			}
			rename[alias] = canonical
			break
		}
	}
	return rename
}

// Apply returns the canonical header for raw columns under the given alias table.
func Apply(columns []string, aliases map[string][]string) []string {
	rename := Normalize(columns, aliases)
	out := make([]string, len(columns))
	for i, col := range columns {
		cleaned := Clean(col)
		if canonical, ok := rename[cleaned]; ok {
			out[i] = canonical
			continue
		}
		out[i] = cleaned
	}
	return out
}
