package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolAgronomo = "agronomo"
	RolOperario = "operario"
)

// Usuario de la aplicación. PasswordHash es bcrypt.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string
	Estado       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
