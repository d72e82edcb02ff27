// Package dashboard contains the finance dashboard engine and its use cases.
package dashboard

import (
	"sort"
	"strings"

	"github.com/farm-manager/backend/internal/domain/entity"
)

// subTypeResolver maps raw record sub-types onto the configured spelling.
type subTypeResolver struct {
	canonical map[string]string
}

func newSubTypeResolver(known []string) subTypeResolver {
	canonical := make(map[string]string, len(known))
	for _, name := range known {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, exists := canonical[strings.ToLower(trimmed)]; !exists {
			canonical[strings.ToLower(trimmed)] = trimmed
		}
	}
	return subTypeResolver{canonical: canonical}
}

// resolve returns the sub-type a record belongs to. Missing sub-types are Uncategorized,
// spelled the way the account configured it when it did.
func (r subTypeResolver) resolve(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, entity.UncategorizedSubType) {
		if name, ok := r.canonical[strings.ToLower(entity.UncategorizedSubType)]; ok {
			return name
		}
		return entity.UncategorizedSubType
	}
	if name, ok := r.canonical[strings.ToLower(trimmed)]; ok {
		return name
	}
	return trimmed
}

// ResolveSubTypes returns the sub-type universe for an account: the configured
// sub-types in their order, then sub-types found only on records (sorted), then
// Uncategorized when some record has no sub-type.
func ResolveSubTypes(configured []string, sales []*entity.Sale, expenses []*entity.Expense) []string {
	resolver := newSubTypeResolver(configured)

	universe := make([]string, 0, len(configured))
	seen := make(map[string]bool)
	for _, name := range configured {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || seen[strings.ToLower(trimmed)] {
			continue
		}
		seen[strings.ToLower(trimmed)] = true
		universe = append(universe, trimmed)
	}

	var discovered []string
	hasUncategorized := false
	note := func(raw string) {
		name := resolver.resolve(raw)
		if seen[strings.ToLower(name)] {
			return
		}
		seen[strings.ToLower(name)] = true
		if name == entity.UncategorizedSubType {
			hasUncategorized = true
			return
		}
		discovered = append(discovered, name)
	}

	for _, sale := range sales {
		if sale != nil {
			note(sale.SubType)
		}
	}
	for _, expense := range expenses {
		if expense != nil {
			note(expense.SubType)
		}
	}

	sort.Strings(discovered)
	universe = append(universe, discovered...)
	if hasUncategorized {
		universe = append(universe, entity.UncategorizedSubType)
	}

	return universe
}

// FilterSubTypes keeps the universe entries named in requested (case-insensitive),
// preserving universe order. An empty request keeps everything.
func FilterSubTypes(universe, requested []string) []string {
	if len(requested) == 0 {
		return universe
	}

	wanted := make(map[string]bool, len(requested))
	for _, name := range requested {
		wanted[strings.ToLower(strings.TrimSpace(name))] = true
	}

	filtered := make([]string, 0, len(requested))
	for _, name := range universe {
		if wanted[strings.ToLower(name)] {
			filtered = append(filtered, name)
		}
	}
	return filtered
}
