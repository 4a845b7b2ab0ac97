package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"github.com/truthtechno/lockerroom-evals/app"
	"github.com/truthtechno/lockerroom-evals/form"
	"github.com/truthtechno/lockerroom-evals/httpx"
	"github.com/truthtechno/lockerroom-evals/log"
	"github.com/truthtechno/lockerroom-evals/metrics"
	"github.com/truthtechno/lockerroom-evals/model"
	"github.com/truthtechno/lockerroom-evals/store"
	"github.com/truthtechno/lockerroom-evals/validate"
)

type templateRequest struct {
	Name        string               `json:"name" validate:"required,max=255"`
	Description string               `json:"description" validate:"max=2000"`
	Status      model.TemplateStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Fields      []model.FormField    `json:"fields"`
	Version     int                  `json:"version"`
}

func (req templateRequest) toModel() model.FormTemplate {
	t := model.FormTemplate{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Fields:      req.Fields,
	}
	form.NormalizeTemplate(&t)
	return t
}

// renderValidation sends a 422 for payload problems and a 500 for
// anything else the validator coughed up.
func renderValidation(w http.ResponseWriter, r *http.Request, code string, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		httpx.ValidationFailed(w, r, code, verr)
		return
	}
	httpx.LogInternalError(w, r, code, err)
}

func CreateTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := templateRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := validate.Struct(req); err != nil {
			renderValidation(w, r, "create_template.payload", err)
			return
		}
		if err := form.ValidateTemplateFields(req.Fields); err != nil {
			httpx.ValidationFailed(w, r, "create_template.fields",
				model.NewValidationError("invalid template fields", form.TemplateFieldErrors(err)...))
			return
		}

		t := req.toModel()
		if err := app.Store.CreateTemplate(r.Context(), &t); err != nil {
			httpx.LogInternalError(w, r, "db.insert_template", err)
			return
		}
		app.Forms.Invalidate()
		metrics.TemplatesSaved.Inc()

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": t.ID,
		})
	}
}

func ListTemplates(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status != "" && !model.TemplateStatus(status).Valid() {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.status")
			return
		}

		templates, err := app.Forms.List(r.Context(), status)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_templates", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"templates": templates,
		})
	}
}

func GetTemplateById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.FromString(id); err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		t, err := app.Forms.Get(r.Context(), id)
		if store.IsNotFound(err) {
			httpx.LogNotFound(w, r, "get_template", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_template", err)
			return
		}

		render.JSON(w, r, t)
	}
}

func UpdateTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.FromString(id); err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		req := templateRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := validate.Struct(req); err != nil {
			renderValidation(w, r, "update_template.payload", err)
			return
		}
		if err := form.ValidateTemplateFields(req.Fields); err != nil {
			httpx.ValidationFailed(w, r, "update_template.fields",
				model.NewValidationError("invalid template fields", form.TemplateFieldErrors(err)...))
			return
		}

		t := req.toModel()
		t.ID = id
		err = app.Store.UpdateTemplate(r.Context(), &t, req.Version)
		if store.IsVersionConflict(err) {
			// optimistic lock
			httpx.LogStatus(w, r, http.StatusConflict, log.DebugLevel, "db.update_template.verify.conflict")
			return
		}
		if store.IsNotFound(err) {
			httpx.LogNotFound(w, r, "update_template", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_template", err)
			return
		}
		app.Forms.Invalidate()
		metrics.TemplatesSaved.Inc()

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteTemplate(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.FromString(id); err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		err := app.Store.DeleteTemplate(r.Context(), id)
		if store.IsNotFound(err) {
			httpx.LogNotFound(w, r, "delete_template", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_template", err)
			return
		}
		app.Forms.Invalidate()

		w.WriteHeader(http.StatusNoContent)
	}
}
