package entity

import "time"

// Category representa una categoría de productos del catálogo.
type Category struct {
	ID           string
	Name         string
	Color        string // color hex usado por la vitrina, ej. "#ff6600"
	IconCSSClass string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
