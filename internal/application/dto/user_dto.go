package dto

import "time"

// RegisterRequest entrada para registro. Role vacío = buyer; "seller" crea una cuenta deshabilitada.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"omitempty,oneof=buyer seller"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID               string    `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Enabled          bool      `json:"enabled"`
	HasSellerRequest bool      `json:"has_seller_request"`
	AccountState     string    `json:"account_state"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios (administración).
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// EditProfileRequest edición del propio perfil.
// La contraseña solo cambia si ChangePassword es true.
type EditProfileRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ChangePassword bool   `json:"change_password"`
	NewPassword    string `json:"new_password"`
}

// SellerRequestInput mensaje de la solicitud de vendedor.
type SellerRequestInput struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// SellerRequestResponse solicitud pendiente (administración).
type SellerRequestResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
