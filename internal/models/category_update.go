package models

// CategoryUpdate holds the category fields a caller may change. Nil fields are left as they are.
type CategoryUpdate struct {
	Name             *string
	Icon             *string
	Color            *string
	Order            *int
	ParentCategoryID *string
}

// IsEmpty reports whether the update changes nothing
func (u CategoryUpdate) IsEmpty() bool {
	return u.Name == nil && u.Icon == nil && u.Color == nil && u.Order == nil && u.ParentCategoryID == nil
}

// Apply copies the set fields onto category
func (u CategoryUpdate) Apply(category *Category) {
	if u.Name != nil {
		category.Name = *u.Name
	}
	if u.Icon != nil {
		category.Icon = *u.Icon
	}
	if u.Color != nil {
		category.Color = *u.Color
	}
	if u.Order != nil {
		category.Order = *u.Order
	}
	if u.ParentCategoryID != nil {
		if *u.ParentCategoryID == "" {
			category.ParentCategoryID = nil
		} else {
			parent := *u.ParentCategoryID
			category.ParentCategoryID = &parent
		}
	}
}
