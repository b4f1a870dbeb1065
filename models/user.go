package models

import "time"

type User struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Name  string `json:"name"`
	// Empty for accounts created through an external identity provider.
	PasswordHash string `gorm:"default:''" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Enrollment records a purchased (or auto-enrolled free) course. The set of
// a user's enrollments is their entitlement set; the unique index makes
// double-enrollment a no-op at the database level.
type Enrollment struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_enrollments_user_course" json:"user_id"`
	CourseID  string    `gorm:"not null;uniqueIndex:idx_enrollments_user_course" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}
