package models

// ProductModel is a workspace-scoped product that posts can tag. The active
// affiliate link is a back-reference on the product rather than a flag on the
// link, so activation is a single-writer update on this row.
type ProductModel struct {
	Base
	WorkspaceID           string  `json:"workspace_id"             gorm:"index;not null"`
	CategoryID            *string `json:"category_id"              gorm:"index"`
	ActiveAffiliateLinkID *string `json:"active_affiliate_link_id" gorm:"index"`
	Name                  string  `json:"name"                     gorm:"not null"`
	Description           string  `json:"description"              gorm:"type:text"`
	ImageURL              string  `json:"image_url"`
	Price                 float64 `json:"price"                    gorm:"type:decimal(12,2);default:0"`
	Currency              string  `json:"currency"                 gorm:"type:varchar(3);default:'USD'"`

	Category            *CategoryModel       `json:"category,omitempty"              gorm:"foreignKey:CategoryID"`
	ActiveAffiliateLink *AffiliateLinkModel  `json:"active_affiliate_link,omitempty" gorm:"foreignKey:ActiveAffiliateLinkID"`
	AffiliateLinks      []AffiliateLinkModel `json:"affiliate_links,omitempty"       gorm:"foreignKey:ProductID"`
}

func (ProductModel) TableName() string { return "products" }
