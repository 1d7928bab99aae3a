package models

// WorkspaceRole is the per-membership role inside a workspace. The hierarchy
// is a total order: MEMBER < ADMIN < OWNER.
type WorkspaceRole string

const (
	RoleMember WorkspaceRole = "MEMBER"
	RoleAdmin  WorkspaceRole = "ADMIN"
	RoleOwner  WorkspaceRole = "OWNER"
)

var roleRanks = map[WorkspaceRole]int{
	RoleMember: 0,
	RoleAdmin:  1,
	RoleOwner:  2,
}

// Rank returns the role's position in the hierarchy; unknown roles rank
// below MEMBER so they never pass an authorization check.
func (r WorkspaceRole) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// AtLeast reports whether r grants everything required does.
func (r WorkspaceRole) AtLeast(required WorkspaceRole) bool {
	return r.Rank() >= required.Rank()
}

// Valid reports whether r is one of the known roles.
func (r WorkspaceRole) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// WorkspaceModel is a tenant. All content entities hang off exactly one
// workspace and every query against them filters by WorkspaceID.
type WorkspaceModel struct {
	Base
	SoftDelete
	Name        string `json:"name"        gorm:"not null"`
	Slug        string `json:"slug"        gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Domain      string `json:"domain"`
	Theme       string `json:"theme"`
	IsActive    bool   `json:"is_active"   gorm:"default:true"`

	Memberships []MembershipModel `json:"memberships,omitempty" gorm:"foreignKey:WorkspaceID"`
}

func (WorkspaceModel) TableName() string { return "workspaces" }

// MembershipModel links a user to a workspace with a role. At most one
// membership exists per (user, workspace) pair.
type MembershipModel struct {
	Base
	UserID      string        `json:"user_id"      gorm:"uniqueIndex:idx_memberships_user_workspace;not null"`
	WorkspaceID string        `json:"workspace_id" gorm:"uniqueIndex:idx_memberships_user_workspace;index;not null"`
	Role        WorkspaceRole `json:"role"         gorm:"type:varchar(16);not null"`

	User      *UserModel      `json:"user,omitempty"      gorm:"foreignKey:UserID"`
	Workspace *WorkspaceModel `json:"workspace,omitempty" gorm:"foreignKey:WorkspaceID"`
}

func (MembershipModel) TableName() string { return "memberships" }
