package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "vincowealth/internal/errors"
)

// Constraint names reported with integrity errors.
const (
	constraintClientPK       = "pk_clients_id"
	constraintTradeClientFK  = "fk_trades_client_id"
	constraintLetterClientFK = "fk_suitability_letters_client_id"
)

// translateDBError maps a store error for the given table to an AppError.
// AppErrors and context errors pass through unchanged.
func translateDBError(err error, table string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		if table == "clients" {
			return apperrors.Wrap(apperrors.ErrDuplicateClient, err)
		}
		return apperrors.Integrity(apperrors.ErrIntegrityViolation, table, "unique",
			fmt.Sprintf("duplicate key in %s", table), err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Integrity(apperrors.ErrIntegrityViolation, table, foreignKeyFor(table),
			fmt.Sprintf("%s references a client that does not exist", table), err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrReadonly, sqlite3.ErrCorrupt, sqlite3.ErrNotADB:
			return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		case sqlite3.ErrConstraint:
			return apperrors.Integrity(apperrors.ErrIntegrityViolation, table, "",
				fmt.Sprintf("constraint failed on %s", table), err)
		}
	}

	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func foreignKeyFor(table string) string {
	switch table {
	case "trades":
		return constraintTradeClientFK
	case "suitability_letters":
		return constraintLetterClientFK
	}
	return "fk_" + table
}

// missingClient is the integrity error for a child row naming an unknown client.
func missingClient(table, clientID string) error {
	return apperrors.Integrity(apperrors.ErrIntegrityViolation, table, foreignKeyFor(table),
		fmt.Sprintf("client %q does not exist", clientID), nil)
}

// clientExists reports whether a client with the given id is stored.
func clientExists(tx *gorm.DB, id string) (bool, error) {
	var n int64
	if err := tx.Table("clients").Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
