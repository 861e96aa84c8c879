package models

import "strings"

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleParent  UserRole = "PARENT"
	RoleStudent UserRole = "STUDENT"
)

// roleRank orders roles for permission checks: ADMIN > TEACHER > PARENT > STUDENT.
var roleRank = map[UserRole]int{
	RoleStudent: 1,
	RoleParent:  2,
	RoleTeacher: 3,
	RoleAdmin:   4,
}

func IsValidRole(role UserRole) bool {
	_, ok := roleRank[role]
	return ok
}

// NormalizeRole maps case-insensitive input to a canonical role value.
func NormalizeRole(raw string) (UserRole, bool) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(raw)))
	if !IsValidRole(role) {
		return "", false
	}
	return role, true
}

// HasAtLeast reports whether role meets the required tier.
func HasAtLeast(role, required UserRole) bool {
	return roleRank[role] >= roleRank[required]
}

type User struct {
	ID           string   `json:"id" db:"id"`
	Email        string   `json:"email" db:"email"`
	FirstName    string   `json:"first_name" db:"first_name"`
	LastName     string   `json:"last_name" db:"last_name"`
	PasswordHash string   `json:"-" db:"password_hash"`
	Role         UserRole `json:"role" db:"role"`
	IsActive     bool     `json:"is_active" db:"is_active"`
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
