package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"

	"github.com/truthtechno/lockerroom-evals/app"
	"github.com/truthtechno/lockerroom-evals/metrics"
	"github.com/truthtechno/lockerroom-evals/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(metrics.Middleware, middleware.Logger, middleware.Recoverer)

	root.Get("/healthz", health(app))
	root.Method(http.MethodGet, "/metrics", metrics.Handler())

	root.Mount("/api/evaluation-forms", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()
	api.Use(jwtauth.Verifier(app.Tokens), jwtauth.Authenticator, middlewares.RequireStaff)

	api.Route("/templates", func(r chi.Router) {
		r.Get("/", ListTemplates(app))
		r.Get("/{id}", GetTemplateById(app))

		// template authoring is for admins only
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireRole("admin"))
			r.Post("/", CreateTemplate(app))
			r.Put("/{id}", UpdateTemplate(app))
			r.Delete("/{id}", DeleteTemplate(app))
		})
	})

	api.Route("/submissions", func(r chi.Router) {
		r.Get("/", ListSubmissions(app))
		r.Get("/stats", SubmissionStats(app))
		r.Post("/", CreateSubmission(app))
		r.Get("/{id}", GetSubmissionById(app))
		r.Put("/{id}", UpdateSubmission(app))
		r.Delete("/{id}", DeleteSubmission(app))
	})

	api.Route("/students", func(r chi.Router) {
		r.Get("/search", SearchStudents(app))
		r.Get("/{id}/profile", GetStudentProfile(app))
	})

	return api
}

func health(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := app.DB.PingContext(r.Context()); err != nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, map[string]any{"status": "degraded"})
			return
		}
		render.JSON(w, r, map[string]any{"status": "ok"})
	}
}
