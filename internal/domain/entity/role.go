package entity

import "strings"

// Role enumeración cerrada de roles. Los valores coinciden con los ids sembrados en la tabla roles.
type Role int

const (
	RoleAdmin  Role = 1
	RoleSeller Role = 2
	RoleBuyer  Role = 3
)

// Nombres canónicos tal como están en la tabla roles.
const (
	RoleNameAdmin  = "Admin"
	RoleNameSeller = "Seller"
	RoleNameBuyer  = "Buyer"
)

// RoleRecord fila de la tabla de referencia roles.
type RoleRecord struct {
	ID   Role
	Name string
}

// String devuelve el nombre canónico del rol.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return RoleNameAdmin
	case RoleSeller:
		return RoleNameSeller
	case RoleBuyer:
		return RoleNameBuyer
	default:
		return "Unknown"
	}
}

// Claim devuelve el valor en minúsculas que viaja en el JWT ("admin", "seller", "buyer").
func (r Role) Claim() string {
	return strings.ToLower(r.String())
}

// Valid informa si r pertenece a la enumeración.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller || r == RoleBuyer
}

// ParseRole convierte un nombre (sin distinguir mayúsculas) en Role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "seller":
		return RoleSeller, true
	case "buyer":
		return RoleBuyer, true
	}
	return 0, false
}
