package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domainerrors "fnct-hackathon.backend/internal/domain/errors"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// storageErr maps driver faults onto the domain taxonomy.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	return fmt.Errorf("%w: %w", domainerrors.ErrStorageUnavailable, err)
}

func corruptRow(err error) error {
	return fmt.Errorf("%w: %w", domainerrors.ErrInvalidState, err)
}

// isDuplicate recognises unique-index violations whether or not the dialector
// translated them.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

// bumpVersion performs the optimistic guard shared by every versioned table.
func bumpVersion(ctx context.Context, db *gorm.DB, model interface{}, keyColumn string, key interface{}, expected int64) error {
	res := GetDB(ctx, db).
		Model(model).
		Where(keyColumn+" = ? AND version = ?", key, expected).
		UpdateColumn("version", gorm.Expr("version + 1"))
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrConcurrencyConflict
	}
	return nil
}

var marshalList = json.Marshal

// encodeList stores a string list as a JSON array; nil becomes "[]".
func encodeList(items []string) (null.JSON, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := marshalList(items)
	if err != nil {
		return null.JSON{}, fmt.Errorf("%w: encode list: %w", domainerrors.ErrInvalidInput, err)
	}
	return null.JSONFrom(raw), nil
}

func decodeList(j null.JSON) ([]string, error) {
	out := []string{}
	if !j.Valid || len(j.JSON) == 0 {
		return out, nil
	}
	if err := j.Unmarshal(&out); err != nil {
		return nil, err
	}
	return out, nil
}
