package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/dbx"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/server/models"
)

const sqliteBookColumns = `id, user_id, title, author, isbn, year, description, cover, status, created_at, updated_at`

// SQLiteRepository stores timestamps as unix milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}

	query := `INSERT INTO books (` + sqliteBookColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		book.ID, book.UserID, book.Title, book.Author, book.ISBN, nullYear(book.Year),
		book.Description, book.Cover, string(book.Status),
		book.CreatedAt.UnixMilli(), book.UpdatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Book, error) {
	query := `SELECT ` + sqliteBookColumns + ` FROM books WHERE id = ? AND user_id = ?`

	book, err := scanSQLiteBook(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return book, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	query := `SELECT ` + sqliteBookColumns + ` FROM books WHERE user_id = ? ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Book, 0)
	for rows.Next() {
		book, err := scanSQLiteBook(rows)
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

func (r *SQLiteRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	query := `UPDATE books
		SET title = ?, author = ?, isbn = ?, year = ?, description = ?, cover = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.ISBN, nullYear(book.Year), book.Description, book.Cover,
		string(book.Status), book.UpdatedAt.UnixMilli(), book.ID, book.UserID)
	if err := checkAffected(res, err); err != nil {
		return nil, err
	}
	return book, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ? AND user_id = ?`, id, ownerID)
	return checkAffected(res, err)
}

func scanSQLiteBook(row rowScanner) (*models.Book, error) {
	var (
		b                models.Book
		year             sql.NullInt64
		status           string
		created, updated int64
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.ISBN, &year,
		&b.Description, &b.Cover, &status, &created, &updated)
	if err != nil {
		return nil, err
	}
	b.Year = yearPtr(year)
	b.Status = models.Status(status)
	b.CreatedAt = time.UnixMilli(created).UTC()
	b.UpdatedAt = time.UnixMilli(updated).UTC()
	return &b, nil
}
