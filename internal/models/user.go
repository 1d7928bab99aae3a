package models

import "time"

// PlatformRole is the platform-wide role, distinct from the per-workspace role.
type PlatformRole string

const (
	PlatformRoleUser       PlatformRole = "USER"
	PlatformRoleAdmin      PlatformRole = "ADMIN"
	PlatformRoleSuperAdmin PlatformRole = "SUPER_ADMIN"
)

// IsAdmin reports whether the role may access the admin API prefix.
func (r PlatformRole) IsAdmin() bool {
	return r == PlatformRoleAdmin || r == PlatformRoleSuperAdmin
}

// UserModel is a platform identity. Users are never hard-deleted.
type UserModel struct {
	Base
	Email string `json:"email" gorm:"uniqueIndex;not null"`
	Name  string `json:"name"`
	// Password is empty for accounts provisioned through an external
	// identity provider; such accounts cannot use credential login.
	Password      string       `json:"-"`
	Avatar        string       `json:"avatar"`
	Role          PlatformRole `json:"role"            gorm:"type:varchar(16);default:'USER'"`
	LastLoginTime *time.Time   `json:"last_login_time"`

	Memberships []MembershipModel `json:"memberships,omitempty" gorm:"foreignKey:UserID"`
}

func (UserModel) TableName() string { return "users" }
