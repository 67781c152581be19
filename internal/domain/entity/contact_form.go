package entity

import "time"

// ContactForm mensaje enviado desde el formulario de contacto.
type ContactForm struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
	SeenAt    *time.Time
}
