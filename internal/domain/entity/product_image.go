package entity

import "time"

// ProductImage imagen asociada a un producto; URL relativa al servidor de archivos (/uploads/...).
type ProductImage struct {
	ID        string
	ProductID string
	URL       string
	CreatedAt time.Time
}
