package types

import (
	"time"

	"github.com/google/uuid"
)

// PersonAddress is an address embedded in a person. It belongs to the
// person and is independent of the /addresses collection. A zero ID is
// replaced with a generated one when the person is stored.
type PersonAddress struct {
	ID         uuid.UUID `json:"id"`
	Street     string    `json:"street"      validate:"required"`
	City       string    `json:"city"        validate:"required"`
	State      string    `json:"state"       validate:"required"`
	PostalCode string    `json:"postal_code" validate:"required"`
	Country    string    `json:"country"     validate:"required"`
}

// Person is a stored person profile. Every profile field is nullable.
type Person struct {
	ID        uuid.UUID       `json:"id"`
	UNI       *string         `json:"uni"`
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Email     *string         `json:"email"`
	Phone     *string         `json:"phone"`
	BirthDate *string         `json:"birth_date"`
	Addresses []PersonAddress `json:"addresses"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Clone returns a deep copy so callers never share the address slice or
// field pointers with the store.
func (p Person) Clone() Person {
	out := p
	out.UNI = clonePtr(p.UNI)
	out.FirstName = clonePtr(p.FirstName)
	out.LastName = clonePtr(p.LastName)
	out.Email = clonePtr(p.Email)
	out.Phone = clonePtr(p.Phone)
	out.BirthDate = clonePtr(p.BirthDate)
	out.Addresses = append(make([]PersonAddress, 0, len(p.Addresses)), p.Addresses...)
	return out
}

// PersonCreate is the POST /persons payload.
type PersonCreate struct {
	UNI       *string         `json:"uni"        validate:"omitempty,uni"`
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Email     *string         `json:"email"      validate:"omitempty,email"`
	Phone     *string         `json:"phone"`
	BirthDate *string         `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Addresses []PersonAddress `json:"addresses"  validate:"dive"`
}

// Record builds the stored person. newID fills in missing embedded
// address ids.
func (c PersonCreate) Record(id uuid.UUID, now time.Time, newID func() uuid.UUID) Person {
	return Person{
		ID:        id,
		UNI:       clonePtr(c.UNI),
		FirstName: clonePtr(c.FirstName),
		LastName:  clonePtr(c.LastName),
		Email:     clonePtr(c.Email),
		Phone:     clonePtr(c.Phone),
		BirthDate: clonePtr(c.BirthDate),
		Addresses: WithAddressIDs(c.Addresses, newID),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PersonUpdate is the PATCH /persons/{id} payload. Addresses, when sent,
// replace the whole embedded list.
type PersonUpdate struct {
	UNI       Nullable[string]          `json:"uni"        validate:"omitnil,uni"`
	FirstName Nullable[string]          `json:"first_name"`
	LastName  Nullable[string]          `json:"last_name"`
	Email     Nullable[string]          `json:"email"      validate:"omitnil,email"`
	Phone     Nullable[string]          `json:"phone"`
	BirthDate Nullable[string]          `json:"birth_date" validate:"omitnil,datetime=2006-01-02"`
	Addresses Optional[[]PersonAddress] `json:"addresses"  validate:"omitempty,dive"`
}

// ApplyTo merges the fields present in u into p.
func (u PersonUpdate) ApplyTo(p *Person, newID func() uuid.UUID) {
	u.UNI.ApplyTo(&p.UNI)
	u.FirstName.ApplyTo(&p.FirstName)
	u.LastName.ApplyTo(&p.LastName)
	u.Email.ApplyTo(&p.Email)
	u.Phone.ApplyTo(&p.Phone)
	u.BirthDate.ApplyTo(&p.BirthDate)
	if u.Addresses.Set {
		p.Addresses = WithAddressIDs(u.Addresses.Value, newID)
	}
}

// WithAddressIDs copies addrs, giving every address without an id a new one.
func WithAddressIDs(addrs []PersonAddress, newID func() uuid.UUID) []PersonAddress {
	out := make([]PersonAddress, len(addrs))
	for i, a := range addrs {
		if a.ID == uuid.Nil {
			a.ID = newID()
		}
		out[i] = a
	}
	return out
}

// PersonFilter narrows GET /persons. City and Country match when at least
// one embedded address has that value.
type PersonFilter struct {
	UNI       *string
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	BirthDate *string
	City      *string
	Country   *string
}

// Match reports whether p satisfies every set filter field.
func (f PersonFilter) Match(p Person) bool {
	if !(matchesPtr(f.UNI, p.UNI) &&
		matchesPtr(f.FirstName, p.FirstName) &&
		matchesPtr(f.LastName, p.LastName) &&
		matchesPtr(f.Email, p.Email) &&
		matchesPtr(f.Phone, p.Phone) &&
		matchesPtr(f.BirthDate, p.BirthDate)) {
		return false
	}
	if f.City != nil && !anyAddress(p.Addresses, func(a PersonAddress) bool { return a.City == *f.City }) {
		return false
	}
	if f.Country != nil && !anyAddress(p.Addresses, func(a PersonAddress) bool { return a.Country == *f.Country }) {
		return false
	}
	return true
}

func anyAddress(addrs []PersonAddress, pred func(PersonAddress) bool) bool {
	for _, a := range addrs {
		if pred(a) {
			return true
		}
	}
	return false
}
