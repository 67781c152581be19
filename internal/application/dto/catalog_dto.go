package dto

import "time"

// CategoryRequest alta o modificación de categoría.
type CategoryRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Color        string `json:"color" validate:"required"`
	IconCSSClass string `json:"icon_css_class" validate:"required"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	IconCSSClass string    `json:"icon_css_class"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentRequest nueva reseña.
type CommentRequest struct {
	Text      string `json:"text" validate:"required"`
	StarCount int    `json:"star_count" validate:"min=1,max=5"`
}

// CommentResponse reseña (administración).
type CommentResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	UserID      string    `json:"user_id"`
	Text        string    `json:"text"`
	StarCount   int       `json:"star_count"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContactRequest formulario de contacto.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// ContactResponse mensaje recibido (administración).
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
