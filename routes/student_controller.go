package routes

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/truthtechno/lockerroom-evals/app"
	"github.com/truthtechno/lockerroom-evals/httpx"
	"github.com/truthtechno/lockerroom-evals/log"
	"github.com/truthtechno/lockerroom-evals/model"
	"github.com/truthtechno/lockerroom-evals/store"
)

const (
	minSearchLength  = 2
	defaultSearchCap = 10
	maxSearchCap     = 25
)

func SearchStudents(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		limit, err := queryInt(query.Get("limit"))
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.limit")
			return
		}
		if limit < 1 {
			limit = defaultSearchCap
		}
		if limit > maxSearchCap {
			limit = maxSearchCap
		}

		// short queries come back empty instead of erroring, so typing
		// into the picker never flashes a failure state
		q := strings.TrimSpace(query.Get("q"))
		if utf8.RuneCountInString(q) < minSearchLength {
			render.JSON(w, r, map[string]any{
				"students": []model.StudentSummary{},
			})
			return
		}

		students, err := app.Store.SearchStudents(r.Context(), q, limit)
		if err != nil {
			httpx.LogInternalError(w, r, "db.search_students", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"students": students,
		})
	}
}

func GetStudentProfile(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		student, err := app.Store.GetStudent(r.Context(), id)
		if store.IsNotFound(err) {
			httpx.LogNotFound(w, r, "get_student_profile", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_student", err)
			return
		}

		render.JSON(w, r, student)
	}
}
