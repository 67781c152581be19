package entity

import "time"

// SellerRequest solicitud de un comprador para convertirse en vendedor.
// ResolvedAt nil = pendiente; a lo sumo una pendiente por usuario.
type SellerRequest struct {
	ID         string
	UserID     string
	Message    string
	IsApproved bool
	ResolvedAt *time.Time
	CreatedAt  time.Time
}

// Pending informa si la solicitud aún no fue resuelta por un administrador.
func (r *SellerRequest) Pending() bool {
	return r.ResolvedAt == nil
}

// SellerRequestView solicitud pendiente con los datos del solicitante (listado de administración).
type SellerRequestView struct {
	SellerRequest
	UserEmail string
	UserName  string
}
