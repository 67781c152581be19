package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mrvekratl/BE124/internal/domain"
	"github.com/mrvekratl/BE124/internal/domain/entity"
	"github.com/mrvekratl/BE124/internal/domain/repository"
)

var (
	_ repository.CommentRepository = (*CommentRepo)(nil)
	_ repository.ContactRepository = (*ContactRepo)(nil)
)

const commentColumns = `id, product_id, user_id, text, star_count, is_confirmed, created_at`

// CommentRepo reseñas de productos sobre PostgreSQL.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador de reseñas.
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// Create persiste una reseña; una por (usuario, producto).
func (r *CommentRepo) Create(ctx context.Context, c *entity.ProductComment) error {
	query := `INSERT INTO product_comments (` + commentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.ProductID, c.UserID, c.Text, c.StarCount, c.IsConfirmed, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID obtiene una reseña por ID.
func (r *CommentRepo) GetByID(ctx context.Context, id string) (*entity.ProductComment, error) {
	c, err := scanComment(r.q.QueryRow(ctx, `SELECT `+commentColumns+` FROM product_comments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

// ListConfirmedByProduct reseñas aprobadas con el nombre del autor, más recientes primero.
func (r *CommentRepo) ListConfirmedByProduct(ctx context.Context, productID string) ([]*entity.ProductReview, error) {
	query := `
		SELECT c.id, c.text, c.star_count, COALESCE(TRIM(u.first_name || ' ' || u.last_name), ''), c.created_at
		FROM product_comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.product_id = $1 AND c.is_confirmed
		ORDER BY c.created_at DESC, c.id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductReview
	for rows.Next() {
		var rv entity.ProductReview
		if err := rows.Scan(&rv.ID, &rv.Text, &rv.StarCount, &rv.UserName, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rv)
	}
	return list, rows.Err()
}

// List todas las reseñas (moderación), más recientes primero.
func (r *CommentRepo) List(ctx context.Context, limit, offset int) ([]*entity.ProductComment, error) {
	query := `SELECT ` + commentColumns + ` FROM product_comments ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductComment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Confirm marca la reseña como aprobada.
func (r *CommentRepo) Confirm(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `UPDATE product_comments SET is_confirmed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("confirm comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (*entity.ProductComment, error) {
	var c entity.ProductComment
	if err := row.Scan(&c.ID, &c.ProductID, &c.UserID, &c.Text, &c.StarCount, &c.IsConfirmed, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ContactRepo mensajes del formulario de contacto sobre PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository construye el adaptador de contacto.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

// Create persiste un mensaje.
func (r *ContactRepo) Create(ctx context.Context, f *entity.ContactForm) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO contact_forms (id, name, email, message, created_at, seen_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.Name, f.Email, f.Message, f.CreatedAt, f.SeenAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact form: %w", err)
	}
	return nil
}

// List mensajes, más recientes primero.
func (r *ContactRepo) List(ctx context.Context, limit, offset int) ([]*entity.ContactForm, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, email, message, created_at, seen_at FROM contact_forms ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limitArg(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list contact forms: %w", err)
	}
	defer rows.Close()

	var list []*entity.ContactForm
	for rows.Next() {
		var f entity.ContactForm
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Message, &f.CreatedAt, &f.SeenAt); err != nil {
			return nil, fmt.Errorf("scan contact form: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
