// Package assignment contains the HTTP handlers for the Assignment resource.
//
// An assignment always belongs to an existing course. A course_id that
// does not resolve, on create or in a PATCH, answers 400 and stores
// nothing.
package assignment

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/utils/request"
	"github.com/aanand-mishra/campus-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /assignments
//
//	{ "course_id": "…", "title": "HW1", "due_date": "2025-09-14", "points": 50 }
//
// points defaults to 100 when omitted; an explicit null stores no points.
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.AssignmentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an assignment")

		input, err := request.DecodeValid[types.AssignmentCreate](r)
		if err != nil {
			response.FromError(w, err)
			return
		}

		assignment, err := store.CreateAssignment(r.Context(), input)
		if err != nil {
			slog.Error("error creating assignment",
				slog.String("course_id", input.CourseID.String()),
				slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("assignment created",
			slog.String("id", assignment.ID.String()),
			slog.String("course_id", assignment.CourseID.String()))
		response.WriteJSON(w, http.StatusCreated, assignment)
	}
}

// GetList handles GET /assignments?course_id=&title=
func GetList(store storage.AssignmentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting assignments")

		q := r.URL.Query()
		courseID, err := request.QueryUUID(q, "course_id")
		if err != nil {
			response.FromError(w, err)
			return
		}
		filter := types.AssignmentFilter{
			CourseID: courseID,
			Title:    request.QueryString(q, "title"),
		}

		assignments, err := store.GetAssignments(r.Context(), filter)
		if err != nil {
			slog.Error("error getting assignments", slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, assignments)
	}
}

// GetByID handles GET /assignments/{id}
func GetByID(store storage.AssignmentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("getting an assignment", slog.String("id", id.String()))

		assignment, err := store.GetAssignmentByID(r.Context(), id)
		if err != nil {
			slog.Error("error getting assignment", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, assignment)
	}
}

// Update handles PATCH /assignments/{id}
// course_id, when sent, must name an existing course. due_date and points
// accept null to clear them.
func Update(store storage.AssignmentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("updating an assignment", slog.String("id", id.String()))

		patch, err := request.DecodeValid[types.AssignmentUpdate](r)
		if err != nil {
			response.FromError(w, err)
			return
		}

		assignment, err := store.UpdateAssignmentByID(r.Context(), id, patch)
		if err != nil {
			slog.Error("error updating assignment", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("assignment updated", slog.String("id", id.String()))
		response.WriteJSON(w, http.StatusOK, assignment)
	}
}

// Delete handles DELETE /assignments/{id}
func Delete(store storage.AssignmentStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("deleting an assignment", slog.String("id", id.String()))

		if err := store.DeleteAssignmentByID(r.Context(), id); err != nil {
			slog.Error("error deleting assignment", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("assignment deleted", slog.String("id", id.String()))
		response.NoContent(w)
	}
}
