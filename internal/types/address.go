package types

import (
	"time"

	"github.com/google/uuid"
)

// Address is a stored postal address. It is the only entity whose id may
// be chosen by the client.
type Address struct {
	ID         uuid.UUID `json:"id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AddressCreate is the POST /addresses payload. When ID is omitted the
// store generates one.
type AddressCreate struct {
	ID         *uuid.UUID `json:"id"`
	Street     string     `json:"street"      validate:"required"`
	City       string     `json:"city"        validate:"required"`
	State      string     `json:"state"       validate:"required"`
	PostalCode string     `json:"postal_code" validate:"required"`
	Country    string     `json:"country"     validate:"required"`
}

// Record builds the stored address, stamping both timestamps with now.
func (c AddressCreate) Record(id uuid.UUID, now time.Time) Address {
	return Address{
		ID:         id,
		Street:     c.Street,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
		Country:    c.Country,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AddressUpdate is the PATCH /addresses/{id} payload.
type AddressUpdate struct {
	Street     Optional[string] `json:"street"`
	City       Optional[string] `json:"city"`
	State      Optional[string] `json:"state"`
	PostalCode Optional[string] `json:"postal_code"`
	Country    Optional[string] `json:"country"`
}

// ApplyTo merges the fields present in u into a.
func (u AddressUpdate) ApplyTo(a *Address) {
	u.Street.ApplyTo(&a.Street)
	u.City.ApplyTo(&a.City)
	u.State.ApplyTo(&a.State)
	u.PostalCode.ApplyTo(&a.PostalCode)
	u.Country.ApplyTo(&a.Country)
}

// AddressFilter narrows GET /addresses.
type AddressFilter struct {
	Street     *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

// Match reports whether a satisfies every set filter field.
func (f AddressFilter) Match(a Address) bool {
	return matches(f.Street, a.Street) &&
		matches(f.City, a.City) &&
		matches(f.State, a.State) &&
		matches(f.PostalCode, a.PostalCode) &&
		matches(f.Country, a.Country)
}
