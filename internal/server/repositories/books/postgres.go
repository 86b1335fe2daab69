package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/dbx"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

const pgBookColumns = `id, user_id, title, author, isbn, year, description, cover, status, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO books (id, user_id, title, author, isbn, year, description, cover, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 `

	_, err := r.db.ExecContext(ctx, query,
		book.ID, book.UserID, book.Title, book.Author, book.ISBN, nullYear(book.Year),
		book.Description, book.Cover, string(book.Status), book.CreatedAt, book.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Book, error) {
	query :=
		`SELECT ` + pgBookColumns + ` FROM books
		 WHERE id = $1 AND user_id = $2
		 `

	book, err := scanPostgresBook(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	query :=
		`SELECT ` + pgBookColumns + ` FROM books
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Book, 0)
	for rows.Next() {
		book, err := scanPostgresBook(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`UPDATE books
		 SET title = $3, author = $4, isbn = $5, year = $6, description = $7, cover = $8, status = $9, updated_at = $10
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		book.ID, book.UserID, book.Title, book.Author, book.ISBN, nullYear(book.Year),
		book.Description, book.Cover, string(book.Status), book.UpdatedAt)
	if err := checkAffected(res, err); err != nil {
		return nil, err
	}
	return book, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1 AND user_id = $2`, id, ownerID)
	return checkAffected(res, err)
}

func scanPostgresBook(row rowScanner) (*models.Book, error) {
	var (
		b      models.Book
		year   sql.NullInt64
		status string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.ISBN, &year,
		&b.Description, &b.Cover, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Year = yearPtr(year)
	b.Status = models.Status(status)
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return &b, nil
}
