package valueobject

import "testing"

func TestCategoryTaxonomy_Classify(t *testing.T) {
	taxonomy := DefaultCategoryTaxonomy()

	tests := []struct {
		name          string
		label         string
		expectedGroup ExpenseGroup
		expectedTop   string
		expectedSub   string
	}{
		{"goods and services sub-category", "Farm Utilities", ExpenseGroupCOGS, CategoryGoodsAndServices, "Farm Utilities"},
		{"utility sub-category", "Electricity", ExpenseGroupOperatingExpense, CategoryUtilityExpenses, "Electricity"},
		{"case and whitespace insensitive", "  electricity ", ExpenseGroupOperatingExpense, CategoryUtilityExpenses, "Electricity"},
		{"top-level label", "Goods & Services", ExpenseGroupCOGS, CategoryGoodsAndServices, CategoryGoodsAndServices},
		{"unknown label", "Lottery Tickets", ExpenseGroupUnclassified, "", "Lottery Tickets"},
		{"empty label", "", ExpenseGroupUnclassified, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := taxonomy.Classify(tt.label)
			if got.Group != tt.expectedGroup {
				t.Errorf("expected group %s, got %s", tt.expectedGroup, got.Group)
			}
			if got.TopLevel != tt.expectedTop {
				t.Errorf("expected top-level %q, got %q", tt.expectedTop, got.TopLevel)
			}
			if got.SubCategory != tt.expectedSub {
				t.Errorf("expected sub-category %q, got %q", tt.expectedSub, got.SubCategory)
			}
		})
	}
}

func TestNewCategoryTaxonomy_FirstListingWins(t *testing.T) {
	taxonomy := NewCategoryTaxonomy([]TaxonomyCategory{
		{Name: "Direct", Group: ExpenseGroupCOGS, SubCategories: []string{"Fuel"}},
		{Name: "Overhead", Group: ExpenseGroupOperatingExpense, SubCategories: []string{"fuel", "Rent"}},
	})

	if got := taxonomy.Classify("FUEL"); got.Group != ExpenseGroupCOGS || got.SubCategory != "Fuel" {
		t.Errorf("expected Fuel to stay in Direct, got %+v", got)
	}
	if got := taxonomy.Classify("rent"); got.Group != ExpenseGroupOperatingExpense {
		t.Errorf("expected Rent to be operating, got %s", got.Group)
	}
}

func TestCategoryTaxonomy_CategoriesIsACopy(t *testing.T) {
	taxonomy := DefaultCategoryTaxonomy()

	cats := taxonomy.Categories()
	cats[0].SubCategories[0] = "Mutated"

	if taxonomy.Categories()[0].SubCategories[0] != "Farm Utilities" {
		t.Error("expected taxonomy to be unaffected by caller mutation")
	}
	if got := taxonomy.Classify("Farm Utilities"); got.Group != ExpenseGroupCOGS {
		t.Errorf("expected COGS after mutation attempt, got %s", got.Group)
	}
}
