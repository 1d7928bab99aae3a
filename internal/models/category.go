package models

// CategoryModel groups products inside a workspace. Name is unique within the
// workspace. Categories are hard-deleted, but only while no product
// references them.
type CategoryModel struct {
	Base
	WorkspaceID string `json:"workspace_id" gorm:"uniqueIndex:idx_categories_workspace_name;index;not null"`
	Name        string `json:"name"         gorm:"uniqueIndex:idx_categories_workspace_name;not null"`
	Description string `json:"description"`
	Color       string `json:"color"        gorm:"type:varchar(16)"`

	Products []ProductModel `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

func (CategoryModel) TableName() string { return "categories" }
