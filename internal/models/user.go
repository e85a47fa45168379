package models

import "time"

type UserRole string

const (
	RoleStudent      UserRole = "student"
	RoleFaculty      UserRole = "faculty"
	RoleProgramChair UserRole = "program_chair"
	RoleDean         UserRole = "dean"
	RoleAdmin        UserRole = "admin"
)

// User is a read-only projection of the identity provider's record. The
// service never writes users; it only resolves the requester from the token.
type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role     UserRole `json:"role" gorm:"-"`

	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
