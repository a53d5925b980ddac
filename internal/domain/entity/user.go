package entity

import "strings"

// Role rol de un usuario.
type Role int

// Roles válidos para User.
const (
	RoleUser Role = iota
	RoleAdmin
)

// String devuelve el nombre persistido del rol (ADMIN, USER).
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ADMIN"
	default:
		return "USER"
	}
}

// ParseRole convierte el texto persistido en Role. Un valor desconocido
// se interpreta como RoleUser.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMIN":
		return RoleAdmin
	case "USER":
		return RoleUser
	default:
		return RoleUser
	}
}

// UnknownQuestionCode código usado cuando la pregunta se reconstruye desde texto,
// donde solo se guarda el enunciado.
const UnknownQuestionCode = 0

// SecurityQuestion pregunta de seguridad del catálogo.
type SecurityQuestion struct {
	Code int
	Text string
}

// SecurityAnswer par pregunta/respuesta de un usuario.
type SecurityAnswer struct {
	Question SecurityQuestion
	Answer   string
}

// User usuario del sistema. ID es la cédula y también el nombre de login.
type User struct {
	ID         string
	Password   string
	Role       Role
	FullName   string
	BirthDate  string // dd/MM/yyyy
	Phone      string
	Email      string
	SecurityQA []SecurityAnswer
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
