// Package address contains the HTTP handlers for the Address resource.
// Addresses may be created with a client-chosen id; reusing a taken id
// answers 400.
package address

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/utils/request"
	"github.com/aanand-mishra/campus-api/internal/utils/response"
)

// New handles POST /addresses
func New(store storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an address")

		input, err := request.DecodeValid[types.AddressCreate](r)
		if err != nil {
			response.FromError(w, err)
			return
		}

		address, err := store.CreateAddress(r.Context(), input)
		if err != nil {
			slog.Error("error creating address", slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("address created", slog.String("id", address.ID.String()))
		response.WriteJSON(w, http.StatusCreated, address)
	}
}

// GetList handles GET /addresses?street=&city=&state=&postal_code=&country=
func GetList(store storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting addresses")

		q := r.URL.Query()
		filter := types.AddressFilter{
			Street:     request.QueryString(q, "street"),
			City:       request.QueryString(q, "city"),
			State:      request.QueryString(q, "state"),
			PostalCode: request.QueryString(q, "postal_code"),
			Country:    request.QueryString(q, "country"),
		}

		addresses, err := store.GetAddresses(r.Context(), filter)
		if err != nil {
			slog.Error("error getting addresses", slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, addresses)
	}
}

// GetByID handles GET /addresses/{id}
func GetByID(store storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("getting an address", slog.String("id", id.String()))

		address, err := store.GetAddressByID(r.Context(), id)
		if err != nil {
			slog.Error("error getting address", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, address)
	}
}

// Update handles PATCH /addresses/{id}
func Update(store storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("updating an address", slog.String("id", id.String()))

		patch, err := request.DecodeValid[types.AddressUpdate](r)
		if err != nil {
			response.FromError(w, err)
			return
		}

		address, err := store.UpdateAddressByID(r.Context(), id, patch)
		if err != nil {
			slog.Error("error updating address", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("address updated", slog.String("id", id.String()))
		response.WriteJSON(w, http.StatusOK, address)
	}
}

// Delete handles DELETE /addresses/{id}
func Delete(store storage.AddressStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("deleting an address", slog.String("id", id.String()))

		if err := store.DeleteAddressByID(r.Context(), id); err != nil {
			slog.Error("error deleting address", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("address deleted", slog.String("id", id.String()))
		response.NoContent(w)
	}
}
