package model

// UserRole is ordinal so permission checks can compare directly:
// user < moderator < admin.
type UserRole int

const (
	RoleUser UserRole = iota
	RoleModerator
	RoleAdmin
)

var roleNames = []string{"user", "moderator", "admin"}

func (r UserRole) String() string {
	if r < RoleUser || r > RoleAdmin {
		return "unknown"
	}
	return roleNames[r]
}

// ParseUserRole maps a role name to its ordinal. The second return
// value is false for unknown names.
func ParseUserRole(name string) (UserRole, bool) {
	for i, n := range roleNames {
		if n == name {
			return UserRole(i), true
		}
	}
	return RoleUser, false
}

type User struct {
	UUIDBase
	Name      string   `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Email     string   `gorm:"size:100;uniqueIndex;not null" json:"-"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	Role      UserRole `gorm:"default:0" json:"role"`
	Trophies  int      `gorm:"default:0" json:"trophies"`
	Confirmed bool     `gorm:"default:false" json:"-"`
	Avatar    string   `gorm:"size:255" json:"avatar"`
}

func (User) TableName() string {
	return "users"
}
