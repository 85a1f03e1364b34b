package domain

// Category names derived from the affiliate flag. CategoryFor is the
// only place the mapping lives.
const (
	CategoryPortalJob    = "Portal Job"
	CategoryAffiliateJob = "Affiliate Job"
)

// Category is a durable classification tag attached to job records.
// Names are unique; records reference categories by ID.
type Category struct {
	ID   string `gorm:"type:text;primaryKey" json:"id"`
	Name string `gorm:"type:text;not null;uniqueIndex:idx_categories_name" json:"name"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string {
	return "categories"
}

// CategoryFor returns the category name for an affiliate flag.
// Parameters:
//   - isAffiliate: normalized affiliate indicator.
// Returns:
//   - string: CategoryAffiliateJob when true, CategoryPortalJob otherwise.
func CategoryFor(isAffiliate bool) string {
	if isAffiliate {
		return CategoryAffiliateJob
	}
	return CategoryPortalJob
}
