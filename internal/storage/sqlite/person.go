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

// Embedded addresses live in person_addresses, keyed by (person_id,
// position) so the list keeps the order the client sent.

const personColumns = "id, uni, first_name, last_name, email, phone, birth_date, created_at, updated_at"

func scanPerson(row scanner) (types.Person, error) {
	var p types.Person
	var uni, first, last, email, phone, birthDate sql.NullString
	err := row.Scan(&p.ID, &uni, &first, &last, &email, &phone, &birthDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return types.Person{}, err
	}
	p.UNI = nullString(uni)
	p.FirstName = nullString(first)
	p.LastName = nullString(last)
	p.Email = nullString(email)
	p.Phone = nullString(phone)
	p.BirthDate = nullString(birthDate)
	return p, nil
}

func loadPersonAddresses(ctx context.Context, q queryer, personID uuid.UUID) ([]types.PersonAddress, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, street, city, state, postal_code, country FROM person_addresses WHERE person_id = ? ORDER BY position",
		personID,
	)
	if err != nil {
		return nil, fmt.Errorf("load addresses of person %s: %w", personID, err)
	}
	defer rows.Close()

	addrs := make([]types.PersonAddress, 0)
	for rows.Next() {
		var a types.PersonAddress
		if err := rows.Scan(&a.ID, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country); err != nil {
			return nil, fmt.Errorf("load addresses of person %s: scan: %w", personID, err)
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func savePersonAddresses(ctx context.Context, tx *sql.Tx, personID uuid.UUID, addrs []types.PersonAddress) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM person_addresses WHERE person_id = ?", personID); err != nil {
		return fmt.Errorf("clear addresses of person %s: %w", personID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO person_addresses (person_id, position, id, street, city, state, postal_code, country) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("save addresses of person %s: prepare: %w", personID, err)
	}
	defer stmt.Close()

	for i, a := range addrs {
		if _, err := stmt.ExecContext(ctx, personID, i, a.ID, a.Street, a.City, a.State, a.PostalCode, a.Country); err != nil {
			return fmt.Errorf("save addresses of person %s: exec: %w", personID, err)
		}
	}
	return nil
}

func getPerson(ctx context.Context, q queryer, id uuid.UUID) (types.Person, error) {
	p, err := scanPerson(q.QueryRowContext(ctx, "SELECT "+personColumns+" FROM persons WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Person{}, fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Person{}, fmt.Errorf("GetPersonByID: scan: %w", err)
	}
	if p.Addresses, err = loadPersonAddresses(ctx, q, id); err != nil {
		return types.Person{}, err
	}
	return p, nil
}

func (s *SQLite) CreatePerson(ctx context.Context, input types.PersonCreate) (types.Person, error) {
	person := input.Record(s.newID(), s.nowFn(), s.newID)

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO persons ("+personColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			person.ID, person.UNI, person.FirstName, person.LastName, person.Email, person.Phone, person.BirthDate,
			person.CreatedAt, person.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("CreatePerson: exec: %w", translate(err))
		}
		return savePersonAddresses(ctx, tx, person.ID, person.Addresses)
	})
	if err != nil {
		return types.Person{}, err
	}
	return person, nil
}

func (s *SQLite) GetPersonByID(ctx context.Context, id uuid.UUID) (types.Person, error) {
	var person types.Person
	// A transaction keeps the person row and its addresses consistent.
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		person, err = getPerson(ctx, tx, id)
		return err
	})
	return person, err
}

func (s *SQLite) GetPersons(ctx context.Context, filter types.PersonFilter) ([]types.Person, error) {
	var w where
	w.eq("uni", filter.UNI)
	w.eq("first_name", filter.FirstName)
	w.eq("last_name", filter.LastName)
	w.eq("email", filter.Email)
	w.eq("phone", filter.Phone)
	w.eq("birth_date", filter.BirthDate)
	if filter.City != nil {
		w.add("EXISTS (SELECT 1 FROM person_addresses pa WHERE pa.person_id = persons.id AND pa.city = ?)", *filter.City)
	}
	if filter.Country != nil {
		w.add("EXISTS (SELECT 1 FROM person_addresses pa WHERE pa.person_id = persons.id AND pa.country = ?)", *filter.Country)
	}

	persons := make([]types.Person, 0)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, "SELECT "+personColumns+" FROM persons"+w.String()+" ORDER BY rowid", w.args...)
		if err != nil {
			return fmt.Errorf("GetPersons: query: %w", err)
		}
		for rows.Next() {
			p, err := scanPerson(rows)
			if err != nil {
				rows.Close()
				return fmt.Errorf("GetPersons: scan row: %w", err)
			}
			persons = append(persons, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("GetPersons: rows iteration: %w", err)
		}

		for i := range persons {
			if persons[i].Addresses, err = loadPersonAddresses(ctx, tx, persons[i].ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return persons, nil
}

func (s *SQLite) UpdatePersonByID(ctx context.Context, id uuid.UUID, patch types.PersonUpdate) (types.Person, error) {
	var person types.Person
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := getPerson(ctx, tx, id)
		if err != nil {
			return err
		}

		person = current.Clone()
		patch.ApplyTo(&person, s.newID)
		person.UpdatedAt = s.touch(current.UpdatedAt)

		_, err = tx.ExecContext(ctx,
			"UPDATE persons SET uni = ?, first_name = ?, last_name = ?, email = ?, phone = ?, birth_date = ?, updated_at = ? WHERE id = ?",
			person.UNI, person.FirstName, person.LastName, person.Email, person.Phone, person.BirthDate, person.UpdatedAt, id,
		)
		if err != nil {
			return fmt.Errorf("UpdatePersonByID: exec: %w", err)
		}
		if patch.Addresses.Set {
			return savePersonAddresses(ctx, tx, id, person.Addresses)
		}
		return nil
	})
	if err != nil {
		return types.Person{}, err
	}
	return person, nil
}

func (s *SQLite) DeletePersonByID(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM person_addresses WHERE person_id = ?", id); err != nil {
			return fmt.Errorf("DeletePersonByID: exec addresses: %w", err)
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("DeletePersonByID: exec: %w", err)
		}
		return requireOne(result, "person", id)
	})
}
