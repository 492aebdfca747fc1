// Package person contains the HTTP handlers for the Person resource.
//
// Every profile field is optional and nullable. A person embeds an ordered
// list of addresses that belong to it alone; they are not rows of the
// /addresses collection. A PATCH that sends "addresses" replaces the whole
// list.
package person

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/utils/request"
	"github.com/aanand-mishra/campus-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /persons
//
// Request body (JSON), every field optional:
//
//	{ "uni": "ab1234", "first_name": "Ada", "email": "ada@example.com",
//	  "birth_date": "1815-12-10",
//	  "addresses": [ { "street": "1 Main", "city": "NYC", "state": "NY",
//	                   "postal_code": "10001", "country": "USA" } ] }
//
// Embedded addresses without an "id" get a generated one.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.PersonStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a person")

		input, err := request.DecodeValid[types.PersonCreate](r)
		if err != nil {
			response.FromError(w, err)
			return
		}

		person, err := store.CreatePerson(r.Context(), input)
		if err != nil {
			slog.Error("error creating person", slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("person created", slog.String("id", person.ID.String()), slog.Int("addresses", len(person.Addresses)))
		response.WriteJSON(w, http.StatusCreated, person)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /persons
//
// Profile filters (uni, first_name, last_name, email, phone, birth_date)
// match the field exactly. city and country match when at least one
// embedded address has that value.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.PersonStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting persons")

		q := r.URL.Query()
		filter := types.PersonFilter{
			UNI:       request.QueryString(q, "uni"),
			FirstName: request.QueryString(q, "first_name"),
			LastName:  request.QueryString(q, "last_name"),
			Email:     request.QueryString(q, "email"),
			Phone:     request.QueryString(q, "phone"),
			BirthDate: request.QueryString(q, "birth_date"),
			City:      request.QueryString(q, "city"),
			Country:   request.QueryString(q, "country"),
		}

		persons, err := store.GetPersons(r.Context(), filter)
		if err != nil {
			slog.Error("error getting persons", slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, persons)
	}
}

// GetByID handles GET /persons/{id}
func GetByID(store storage.PersonStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("getting a person", slog.String("id", id.String()))

		person, err := store.GetPersonByID(r.Context(), id)
		if err != nil {
			slog.Error("error getting person", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, person)
	}
}

// Update handles PATCH /persons/{id}
//
//	{ "phone": null }                 clears phone
//	{ "addresses": [] }               removes every embedded address
//	{ "last_name": "King" }           leaves everything else as it was
func Update(store storage.PersonStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("updating a person", slog.String("id", id.String()))

		patch, err := request.DecodeValid[types.PersonUpdate](r)
		if err != nil {
			response.FromError(w, err)
			return
		}

		person, err := store.UpdatePersonByID(r.Context(), id, patch)
		if err != nil {
			slog.Error("error updating person", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("person updated", slog.String("id", id.String()))
		response.WriteJSON(w, http.StatusOK, person)
	}
}

// Delete handles DELETE /persons/{id}
func Delete(store storage.PersonStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("deleting a person", slog.String("id", id.String()))

		if err := store.DeletePersonByID(r.Context(), id); err != nil {
			slog.Error("error deleting person", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("person deleted", slog.String("id", id.String()))
		response.NoContent(w)
	}
}
