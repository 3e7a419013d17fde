package repository

import (
	"testing"
)

func TestAggregate_ZipsCategoryColumnsPositionally(t *testing.T) {
	agg := NewAggregator()
	row := FlatRecipeRow{
		ID:             1,
		Title:          "Shakshuka",
		CategoryIDs:    "2|||1",
		CategoryNames:  "Brunch|||Breakfast",
		CategoryIcons:  "pan|||sunrise",
		CategoryColors: "#f00|||#0f0",
	}

	recipe, err := agg.Aggregate(row)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if len(recipe.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(recipe.Categories))
	}
	first := recipe.Categories[0]
	if first.ID != 2 || first.Name != "Brunch" || first.Icon != "pan" || first.Color != "#f00" {
		t.Errorf("first category = %+v, want id 2 / Brunch / pan / #f00", first)
	}
	second := recipe.Categories[1]
	if second.ID != 1 || second.Name != "Breakfast" || second.Icon != "sunrise" || second.Color != "#0f0" {
		t.Errorf("second category = %+v, want id 1 / Breakfast / sunrise / #0f0", second)
	}
}

// The source orders the joined columns by display_order, and that order must
// survive aggregation untouched even when it disagrees with ID order.
func TestAggregate_PreservesSourceOrderingNotIDOrder(t *testing.T) {
	agg := NewAggregator()

	// display_order puts category 1 before category 2
	rowOrdered := FlatRecipeRow{
		ID:             7,
		CategoryIDs:    "1|||2",
		CategoryNames:  "Soups|||Mains",
		CategoryIcons:  "bowl|||plate",
		CategoryColors: "#10b981|||#3b82f6",
	}
	recipe, err := agg.Aggregate(rowOrdered)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if recipe.Categories[0].ID != 1 || recipe.Categories[1].ID != 2 {
		t.Errorf("order = [%d %d], want [1 2]", recipe.Categories[0].ID, recipe.Categories[1].ID)
	}

	// reversed display_order: ids arrive as "2,1" and must stay that way
	rowReversed := FlatRecipeRow{
		ID:             7,
		CategoryIDs:    "2|||1",
		CategoryNames:  "Mains|||Soups",
		CategoryIcons:  "plate|||bowl",
		CategoryColors: "#3b82f6|||#10b981",
	}
	recipe, err = agg.Aggregate(rowReversed)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if recipe.Categories[0].ID != 2 || recipe.Categories[1].ID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", recipe.Categories[0].ID, recipe.Categories[1].ID)
	}
	if recipe.Categories[0].Name != "Mains" || recipe.Categories[1].Name != "Soups" {
		t.Errorf("names = [%s %s], want [Mains Soups]", recipe.Categories[0].Name, recipe.Categories[1].Name)
	}
}

func TestAggregate_EmptyIDsYieldsEmptyList(t *testing.T) {
	agg := NewAggregator()
	recipe, err := agg.Aggregate(FlatRecipeRow{ID: 3, Title: "Plain Rice"})
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if len(recipe.Categories) != 0 {
		t.Errorf("categories = %v, want empty list, not a single blank entry", recipe.Categories)
	}
	if len(recipe.Tags) != 0 {
		t.Errorf("tags = %v, want empty", recipe.Tags)
	}
}

func TestAggregate_LengthMismatchIsIntegrityError(t *testing.T) {
	agg := NewAggregator()
	row := FlatRecipeRow{
		ID:             9,
		CategoryIDs:    "1|||2|||3",
		CategoryNames:  "A|||B",
		CategoryIcons:  "a|||b|||c",
		CategoryColors: "#111|||#222|||#333",
	}
	_, err := agg.Aggregate(row)
	if err == nil {
		t.Fatal("Aggregate should fail on mismatched column lengths")
	}
	if _, ok := err.(IntegrityError); !ok {
		t.Errorf("error type = %T, want IntegrityError", err)
	}
}

func TestAggregate_BadCategoryIDIsIntegrityError(t *testing.T) {
	agg := NewAggregator()
	row := FlatRecipeRow{
		ID:             4,
		CategoryIDs:    "not-a-number",
		CategoryNames:  "Mains",
		CategoryIcons:  "plate",
		CategoryColors: "#3b82f6",
	}
	_, err := agg.Aggregate(row)
	if err == nil {
		t.Fatal("Aggregate should fail on a non-numeric category id")
	}
	if _, ok := err.(IntegrityError); !ok {
		t.Errorf("error type = %T, want IntegrityError", err)
	}
}

func TestAggregate_DuplicateTagsPassThroughInOrder(t *testing.T) {
	agg := NewAggregator()
	row := FlatRecipeRow{ID: 5, TagNames: "quick|||vegan|||quick"}

	recipe, err := agg.Aggregate(row)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	want := []string{"quick", "vegan", "quick"}
	if len(recipe.Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", recipe.Tags, want)
	}
	for i := range want {
		if recipe.Tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, recipe.Tags[i], want[i])
		}
	}
}

// Legacy rows were flattened with bare commas; the aggregator still has to
// handle them when pointed at old data.
func TestAggregate_LegacyCommaSeparator(t *testing.T) {
	agg := Aggregator{Sep: LegacyFieldSeparator}
	row := FlatRecipeRow{
		ID:             6,
		CategoryIDs:    "3,4",
		CategoryNames:  "Desserts,Snacks",
		CategoryIcons:  "cake,pretzel",
		CategoryColors: "#ec4899,#f97316",
		TagNames:       "sweet,baked",
	}

	recipe, err := agg.Aggregate(row)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if len(recipe.Categories) != 2 || recipe.Categories[1].Name != "Snacks" {
		t.Errorf("categories = %+v, want Desserts then Snacks", recipe.Categories)
	}
	if len(recipe.Tags) != 2 || recipe.Tags[0] != "sweet" {
		t.Errorf("tags = %v, want [sweet baked]", recipe.Tags)
	}
}

// A comma inside a name must not split under the current separator; this is
// exactly the defect the ||| separator exists to avoid.
func TestAggregate_CommaInsideNameSurvives(t *testing.T) {
	agg := NewAggregator()
	row := FlatRecipeRow{
		ID:             8,
		CategoryIDs:    "1",
		CategoryNames:  "Soups, Stews & Broths",
		CategoryIcons:  "bowl",
		CategoryColors: "#10b981",
		TagNames:       "rich, hearty|||slow-cooked",
	}

	recipe, err := agg.Aggregate(row)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if len(recipe.Categories) != 1 || recipe.Categories[0].Name != "Soups, Stews & Broths" {
		t.Errorf("categories = %+v, want the full comma-bearing name intact", recipe.Categories)
	}
	if len(recipe.Tags) != 2 || recipe.Tags[0] != "rich, hearty" {
		t.Errorf("tags = %v, want [\"rich, hearty\" \"slow-cooked\"]", recipe.Tags)
	}
}
