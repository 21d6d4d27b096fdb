package domain

import "time"

type Role string

const (
	RoleGentsIncharge  Role = "Gents Incharge"
	RoleLadiesIncharge Role = "Ladies Incharge"
	RoleSuperAdmin     Role = "Super Admin"
)

// Incharge is a supervising volunteer who marks attendance and files
// reports. Gents/Ladies incharges are scoped to their assigned group;
// a Super Admin sees every group.
type Incharge struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	AssignedGroup Group     `json:"assignedGroup"` // empty for Super Admin
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}

// CanAccessGroup reports whether the incharge may operate on sessions and
// records belonging to g.
func (i *Incharge) CanAccessGroup(g Group) bool {
	if i.Role == RoleSuperAdmin {
		return true
	}
	return i.AssignedGroup == g
}
