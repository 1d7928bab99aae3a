package models

// CommissionType distinguishes percentage commissions from flat amounts.
type CommissionType string

const (
	CommissionPercent CommissionType = "PERCENT"
	CommissionFlat    CommissionType = "FLAT"
)

// Valid reports whether t is a known commission type.
func (t CommissionType) Valid() bool {
	return t == CommissionPercent || t == CommissionFlat
}

// AffiliateLinkModel is an outbound affiliate URL for a product. WorkspaceID
// is denormalized from the product so workspace-scoped queries stay single-table.
// "Active" is not a property of the link; the product points at its active link.
type AffiliateLinkModel struct {
	Base
	WorkspaceID    string         `json:"workspace_id"    gorm:"index;not null"`
	ProductID      string         `json:"product_id"      gorm:"uniqueIndex:idx_links_product_url;index;not null"`
	Name           string         `json:"name"`
	OriginalURL    string         `json:"original_url"`
	AffiliateURL   string         `json:"affiliate_url"   gorm:"uniqueIndex:idx_links_product_url;not null"`
	Platform       string         `json:"platform"`
	Commission     float64        `json:"commission"      gorm:"type:decimal(8,3);default:0"`
	CommissionType CommissionType `json:"commission_type" gorm:"type:varchar(16);default:'PERCENT'"`
	Tags           StringArray    `json:"tags"            gorm:"type:longtext"`
}

func (AffiliateLinkModel) TableName() string { return "affiliate_links" }
