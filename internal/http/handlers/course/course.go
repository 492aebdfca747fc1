// Package course contains the HTTP handlers for the Course resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a store. Each
// factory below accepts the dependency once, at route registration, and
// returns a closure that is called on every request:
//
//	router.HandleFunc("POST /courses", course.New(store))
//
// A course is identified by (code, semester); creating or renaming a
// course onto an existing pair answers 409 Conflict. Deleting a course
// also deletes its assignments.
package course

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/utils/request"
	"github.com/aanand-mishra/campus-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /courses
//
// Request body (JSON):
//
//	{ "code": "COMS4153", "title": "Cloud Computing",
//	  "instructor": "Prof. Ferguson", "semester": "Fall 2025" }
//
// Success response (201 Created): the stored course.
//
// Error responses:
//
//	422 Unprocessable Entity  empty body, malformed JSON, or failed validation
//	409 Conflict              (code, semester) already taken
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.CourseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a course")

		input, err := request.DecodeValid[types.CourseCreate](r)
		if err != nil {
			response.FromError(w, err)
			return
		}

		course, err := store.CreateCourse(r.Context(), input)
		if err != nil {
			slog.Error("error creating course", slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("course created", slog.String("id", course.ID.String()))
		response.WriteJSON(w, http.StatusCreated, course)
	}
}

// GetList handles GET /courses?code=&title=&instructor=&semester=
// Every query parameter is an exact-match filter; an empty result is [].
func GetList(store storage.CourseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting courses")

		q := r.URL.Query()
		filter := types.CourseFilter{
			Code:       request.QueryString(q, "code"),
			Title:      request.QueryString(q, "title"),
			Instructor: request.QueryString(q, "instructor"),
			Semester:   request.QueryString(q, "semester"),
		}

		courses, err := store.GetCourses(r.Context(), filter)
		if err != nil {
			slog.Error("error getting courses", slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, courses)
	}
}

// GetByID handles GET /courses/{id}
func GetByID(store storage.CourseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("getting a course", slog.String("id", id.String()))

		course, err := store.GetCourseByID(r.Context(), id)
		if err != nil {
			slog.Error("error getting course", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, course)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PATCH /courses/{id}
// Only the fields present in the body change; the merged course must still
// have a unique (code, semester).
//
//	{ "instructor": "Prof. Ross" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.CourseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("updating a course", slog.String("id", id.String()))

		patch, err := request.DecodeValid[types.CourseUpdate](r)
		if err != nil {
			response.FromError(w, err)
			return
		}

		course, err := store.UpdateCourseByID(r.Context(), id, patch)
		if err != nil {
			slog.Error("error updating course", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("course updated", slog.String("id", id.String()))
		response.WriteJSON(w, http.StatusOK, course)
	}
}

// Delete handles DELETE /courses/{id}. Answers 204 with no body.
func Delete(store storage.CourseStorage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.ParseID(r)
		if err != nil {
			response.FromError(w, err)
			return
		}
		slog.Info("deleting a course", slog.String("id", id.String()))

		if err := store.DeleteCourseByID(r.Context(), id); err != nil {
			slog.Error("error deleting course", slog.String("id", id.String()), slog.String("error", err.Error()))
			response.FromError(w, err)
			return
		}

		slog.Info("course deleted", slog.String("id", id.String()))
		response.NoContent(w)
	}
}
