package auth

import "time"

const (
	RoleBoss      = "boss"
	RoleSecretary = "secretary"
	RoleViewer    = "viewer"
)

func validRole(role string) bool {
	switch role {
	case RoleBoss, RoleSecretary, RoleViewer:
		return true
	}
	return false
}

type User struct {
	Email          string    `gorm:"primaryKey" json:"email"`
	Password       string    `json:"password" gorm:"-"`
	HashedPassword string    `json:"-"`
	Role           string    `gorm:"default:'viewer'" json:"role"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
