// Package valueobject contains domain value objects for the farm finance service.
package valueobject

import "strings"

// ExpenseGroup is the top-level accounting bucket an expense falls into.
type ExpenseGroup string

const (
	ExpenseGroupCOGS             ExpenseGroup = "COGS"
	ExpenseGroupOperatingExpense ExpenseGroup = "OperatingExpense"
	ExpenseGroupUnclassified     ExpenseGroup = "Unclassified"
)

// Top-level category labels used by the farm app.
const (
	CategoryGoodsAndServices = "Goods & Services"
	CategoryUtilityExpenses  = "Utility Expenses"
)

// TaxonomyCategory is one top-level category and the sub-category labels it owns.
type TaxonomyCategory struct {
	Name          string
	Group         ExpenseGroup
	SubCategories []string
}

// Classification is the result of looking up an expense category label.
type Classification struct {
	Group       ExpenseGroup
	TopLevel    string // Empty when unclassified
	SubCategory string // Canonical spelling, or the trimmed input when unclassified
}

// CategoryTaxonomy maps expense category labels to their group.
// The reverse index is built once at construction and never mutated.
type CategoryTaxonomy struct {
	categories []TaxonomyCategory
	index      map[string]Classification
}

// NewCategoryTaxonomy builds a taxonomy and its reverse index.
// Top-level names classify to their own group. Labels are matched case-insensitively;
// when a label appears twice, the first category listing it wins.
func NewCategoryTaxonomy(categories []TaxonomyCategory) CategoryTaxonomy {
	index := make(map[string]Classification)
	for _, cat := range categories {
		if _, exists := index[labelKey(cat.Name)]; !exists {
			index[labelKey(cat.Name)] = Classification{Group: cat.Group, TopLevel: cat.Name, SubCategory: cat.Name}
		}
		for _, sub := range cat.SubCategories {
			if _, exists := index[labelKey(sub)]; exists {
				continue
			}
			index[labelKey(sub)] = Classification{Group: cat.Group, TopLevel: cat.Name, SubCategory: sub}
		}
	}

	copied := make([]TaxonomyCategory, len(categories))
	for i, cat := range categories {
		copied[i] = TaxonomyCategory{
			Name:          cat.Name,
			Group:         cat.Group,
			SubCategories: append([]string(nil), cat.SubCategories...),
		}
	}

	return CategoryTaxonomy{categories: copied, index: index}
}

// DefaultCategoryTaxonomy returns the category table used by the farm app.
func DefaultCategoryTaxonomy() CategoryTaxonomy {
	return NewCategoryTaxonomy([]TaxonomyCategory{
		{
			Name:  CategoryGoodsAndServices,
			Group: ExpenseGroupCOGS,
			SubCategories: []string{
				"Farm Utilities",
				"Feed",
				"Seeds",
				"Fertilizer",
				"Chicks",
				"Livestock",
				"Beehives",
				"Veterinary",
				"Medication",
				"Packaging",
				"Labour",
				"Equipment",
			},
		},
		{
			Name:  CategoryUtilityExpenses,
			Group: ExpenseGroupOperatingExpense,
			SubCategories: []string{
				"Electricity",
				"Water",
				"Fuel",
				"Internet",
				"Phone",
				"Rent",
				"Transport",
				"Maintenance",
				"Insurance",
				"Salaries",
				"Taxes & Licenses",
			},
		},
	})
}

// Classify returns the group for a category label. It never fails:
// unknown or empty labels yield ExpenseGroupUnclassified.
func (t CategoryTaxonomy) Classify(label string) Classification {
	if c, ok := t.index[labelKey(label)]; ok {
		return c
	}
	return Classification{Group: ExpenseGroupUnclassified, SubCategory: strings.TrimSpace(label)}
}

// Categories returns a copy of the top-level categories.
func (t CategoryTaxonomy) Categories() []TaxonomyCategory {
	out := make([]TaxonomyCategory, len(t.categories))
	for i, cat := range t.categories {
		out[i] = TaxonomyCategory{
			Name:          cat.Name,
			Group:         cat.Group,
			SubCategories: append([]string(nil), cat.SubCategories...),
		}
	}
	return out
}

func labelKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
