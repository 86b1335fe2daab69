package books

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/common"
	"github.com/ehsankhan420/SCD-FINAL-PROJECT/internal/dbx"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func nullYear(year *int) sql.NullInt64 {
	if year == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*year), Valid: true}
}

func yearPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	y := int(n.Int64)
	return &y
}

// checkAffected turns a statement that matched no row into common.ErrorNotFound.
func checkAffected(res sql.Result, err error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if err := dbx.ExpectAffected(res); err != nil {
		if errors.Is(err, dbx.ErrNoRowsAffected) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
