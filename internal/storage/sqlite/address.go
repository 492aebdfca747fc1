package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// Explicitly list columns; never use SELECT * in production code. If a
// column is added later, SELECT * would break Scan's ordering.
const addressColumns = "id, street, city, state, postal_code, country, created_at, updated_at"

func scanAddress(row scanner) (types.Address, error) {
	var a types.Address
	err := row.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func getAddress(ctx context.Context, q queryer, id uuid.UUID) (types.Address, error) {
	a, err := scanAddress(q.QueryRowContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Address{}, fmt.Errorf("address %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Address{}, fmt.Errorf("GetAddressByID: scan: %w", err)
	}
	return a, nil
}

func (s *SQLite) CreateAddress(ctx context.Context, input types.AddressCreate) (types.Address, error) {
	id := s.newID()
	if input.ID != nil {
		id = *input.ID
	}
	address := input.Record(id, s.nowFn())

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		taken, err := exists(ctx, tx, "SELECT 1 FROM addresses WHERE id = ? LIMIT 1", id)
		if err != nil {
			return fmt.Errorf("CreateAddress: check id: %w", err)
		}
		if taken {
			return fmt.Errorf("address %s already exists: %w", id, storage.ErrDuplicateID)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO addresses ("+addressColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			address.ID, address.Street, address.City, address.State, address.PostalCode, address.Country,
			address.CreatedAt, address.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("CreateAddress: exec: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return types.Address{}, err
	}
	return address, nil
}

func (s *SQLite) GetAddressByID(ctx context.Context, id uuid.UUID) (types.Address, error) {
	return getAddress(ctx, s.Db, id)
}

func (s *SQLite) GetAddresses(ctx context.Context, filter types.AddressFilter) ([]types.Address, error) {
	var w where
	w.eq("street", filter.Street)
	w.eq("city", filter.City)
	w.eq("state", filter.State)
	w.eq("postal_code", filter.PostalCode)
	w.eq("country", filter.Country)

	rows, err := s.Db.QueryContext(ctx, "SELECT "+addressColumns+" FROM addresses"+w.String()+" ORDER BY rowid", w.args...)
	if err != nil {
		return nil, fmt.Errorf("GetAddresses: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice so JSON encodes [] not null.
	addresses := make([]types.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("GetAddresses: scan row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetAddresses: rows iteration: %w", err)
	}
	return addresses, nil
}

func (s *SQLite) UpdateAddressByID(ctx context.Context, id uuid.UUID, patch types.AddressUpdate) (types.Address, error) {
	var address types.Address
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := getAddress(ctx, tx, id)
		if err != nil {
			return err
		}

		address = current
		patch.ApplyTo(&address)
		address.UpdatedAt = s.touch(current.UpdatedAt)

		_, err = tx.ExecContext(ctx,
			"UPDATE addresses SET street = ?, city = ?, state = ?, postal_code = ?, country = ?, updated_at = ? WHERE id = ?",
			address.Street, address.City, address.State, address.PostalCode, address.Country, address.UpdatedAt, id,
		)
		if err != nil {
			return fmt.Errorf("UpdateAddressByID: exec: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Address{}, err
	}
	return address, nil
}

func (s *SQLite) DeleteAddressByID(ctx context.Context, id uuid.UUID) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM addresses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteAddressByID: exec: %w", err)
	}
	return requireOne(result, "address", id)
}

// requireOne turns "no rows affected" into ErrNotFound.
func requireOne(result sql.Result, entity string, id uuid.UUID) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: rows affected: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, storage.ErrNotFound)
	}
	return nil
}
