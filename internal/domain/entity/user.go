package entity

import "time"

// User representa una cuenta de la tienda (comprador, vendedor o administrador).
type User struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     string // bcrypt hash, nunca plano en dominio después de persistir
	Role             Role
	Enabled          bool
	HasSellerRequest bool // solicitud de vendedor pendiente de revisión
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName devuelve "Nombre Apellido".
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// SellerState campos del flujo de vendedor que se escriben juntos.
type SellerState struct {
	Role    Role
	Pending bool
}

// SellerState devuelve el rol y el indicador de solicitud pendiente actuales.
func (u *User) SellerState() SellerState {
	return SellerState{Role: u.Role, Pending: u.HasSellerRequest}
}
