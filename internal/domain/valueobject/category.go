package valueobject

import "fmt"

// Category identifies one independent signal source feeding the aggregate
// score. Besides its weight it carries how the aggregate surfaces its flags.
type Category struct {
	name          string
	weight        float64
	flagOrder     int
	flagLimit     int
	positiveLimit int
	minSeverity   RiskLevel
}

// A negative limit means unbounded.
var (
	CategoryText = Category{
		name: "text_analysis", weight: 0.30,
		flagOrder: 1, flagLimit: 5, positiveLimit: 3,
	}
	CategoryCompany = Category{
		name: "company_verification", weight: 0.25,
		flagOrder: 2, flagLimit: 1, positiveLimit: -1,
	}
	CategoryURL = Category{
		name: "url_security", weight: 0.20,
		flagOrder: 3, flagLimit: 3, positiveLimit: -1, minSeverity: RiskLevelMedium,
	}
	CategoryBlacklist = Category{
		name: "blacklist_check", weight: 0.15,
		flagOrder: 0, flagLimit: 1, positiveLimit: 0,
	}
	CategoryClassifier = Category{
		name: "ai_prediction", weight: 0.10,
		flagOrder: 4, flagLimit: 0, positiveLimit: -1,
	}
)

// Categories lists every category in breakdown order.
func Categories() []Category {
	return []Category{CategoryText, CategoryCompany, CategoryURL, CategoryBlacklist, CategoryClassifier}
}

// CategoryFromString resolves a category by name.
func CategoryFromString(s string) (Category, error) {
	for _, c := range Categories() {
		if c.name == s {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("invalid category: %s", s)
}

// String returns the category name.
func (c Category) String() string { return c.name }

// Weight returns the fixed aggregation weight.
func (c Category) Weight() float64 { return c.weight }

// FlagOrder is the position of this category's flags in the combined list.
func (c Category) FlagOrder() int { return c.flagOrder }

// FlagLimit caps how many flags the combined list takes from this category.
func (c Category) FlagLimit() int { return c.flagLimit }

// PositiveLimit caps how many positive signals the combined list takes.
func (c Category) PositiveLimit() int { return c.positiveLimit }

// MinFlagSeverity is the lowest flag severity the combined list accepts.
// The zero value accepts everything.
func (c Category) MinFlagSeverity() RiskLevel { return c.minSeverity }

// IsZero returns true if the Category has not been set.
func (c Category) IsZero() bool { return c.name == "" }

// Equal checks equality with another Category.
func (c Category) Equal(other Category) bool { return c.name == other.name }
