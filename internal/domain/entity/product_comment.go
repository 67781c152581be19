package entity

import "time"

// Valores permitidos para StarCount.
const (
	MinStarCount = 1
	MaxStarCount = 5
)

// ProductComment reseña de un producto. Una por (usuario, producto).
type ProductComment struct {
	ID          string
	ProductID   string
	UserID      string
	Text        string
	StarCount   int
	IsConfirmed bool
	CreatedAt   time.Time
}

// ProductReview reseña confirmada con el nombre del autor (lectura).
type ProductReview struct {
	ID        string
	Text      string
	StarCount int
	UserName  string
	CreatedAt time.Time
}
