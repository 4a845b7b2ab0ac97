package routes

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"github.com/truthtechno/lockerroom-evals/app"
	"github.com/truthtechno/lockerroom-evals/form"
	"github.com/truthtechno/lockerroom-evals/httpx"
	"github.com/truthtechno/lockerroom-evals/log"
	"github.com/truthtechno/lockerroom-evals/metrics"
	"github.com/truthtechno/lockerroom-evals/model"
	"github.com/truthtechno/lockerroom-evals/routes/middlewares"
	"github.com/truthtechno/lockerroom-evals/store"
	"github.com/truthtechno/lockerroom-evals/validate"
)

type submissionRequest struct {
	FormTemplateID string                 `json:"formTemplateId" validate:"required"`
	StudentID      string                 `json:"studentId"`
	StudentData    *model.StudentData     `json:"studentData"`
	Responses      []responseEntry        `json:"responses" validate:"dive"`
	Status         model.SubmissionStatus `json:"status" validate:"required,oneof=draft submitted"`
}

type responseEntry struct {
	FieldID string `json:"fieldId" validate:"required"`
	Value   string `json:"value"`
}

func (req submissionRequest) modelResponses() []model.SubmissionResponse {
	out := make([]model.SubmissionResponse, len(req.Responses))
	for i, e := range req.Responses {
		out[i] = model.SubmissionResponse{FieldID: e.FieldID, Value: e.Value}
	}
	return out
}

// checkSubmissionPayload runs the whole engine pipeline over a decoded
// request: subject rule, template lookup, per-field normalization and
// the submit gate. On success it hands back the template, the frozen
// subject and the normalized response map.
func checkSubmissionPayload(ctx context.Context, app app.App, req submissionRequest) (model.FormTemplate, model.StudentData, map[string]string, error) {
	none := model.FormTemplate{}

	if err := form.ValidateTemplateRef(req.FormTemplateID); err != nil {
		return none, model.StudentData{}, nil, err
	}
	if err := form.ValidateSubject(req.StudentID, req.StudentData); err != nil {
		return none, model.StudentData{}, nil, err
	}

	template, err := app.Forms.Get(ctx, strings.TrimSpace(req.FormTemplateID))
	if store.IsNotFound(err) {
		return none, model.StudentData{}, nil, model.NewValidationError("form template not found",
			model.FieldError{Field: "formTemplateId", Error: "no such form template"})
	}
	if err != nil {
		return none, model.StudentData{}, nil, err
	}

	subject, err := resolveSubject(ctx, app, req.StudentID, req.StudentData)
	if err != nil {
		return none, model.StudentData{}, nil, err
	}

	responses, err := form.NormalizeAll(template, req.modelResponses())
	if err != nil {
		return none, model.StudentData{}, nil, err
	}
	if err := form.ValidateSubmit(template, responses, req.Status); err != nil {
		return none, model.StudentData{}, nil, err
	}
	return template, subject, responses, nil
}

// resolveSubject freezes the evaluation subject: a roster reference is
// snapshotted from the read model, a manual entry passes through
// trimmed.
func resolveSubject(ctx context.Context, app app.App, studentID string, manual *model.StudentData) (model.StudentData, error) {
	if sid := strings.TrimSpace(studentID); sid != "" {
		student, err := app.Store.GetStudent(ctx, sid)
		if store.IsNotFound(err) {
			return model.StudentData{}, model.NewValidationError("unknown player reference",
				model.FieldError{Field: "studentId", Error: "no such player"})
		}
		if err != nil {
			return model.StudentData{}, err
		}
		return student.Data(), nil
	}
	subject := *manual
	subject.Name = strings.TrimSpace(subject.Name)
	return subject, nil
}

func CreateSubmission(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := submissionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := validate.Struct(req); err != nil {
			renderValidation(w, r, "create_submission.payload", err)
			return
		}
		template, subject, responses, err := checkSubmissionPayload(r.Context(), app, req)
		if err != nil {
			renderValidation(w, r, "create_submission.check", err)
			return
		}

		sub := model.Submission{
			FormTemplateID: template.ID,
			SubmittedBy:    middlewares.StaffID(r.Context()),
			Status:         req.Status,
			StudentID:      strings.TrimSpace(req.StudentID),
			Student:        subject,
			Responses:      form.BuildResponses(template, responses),
		}
		if err := app.Store.CreateSubmission(r.Context(), &sub); err != nil {
			httpx.LogInternalError(w, r, "db.insert_submission", err)
			return
		}
		metrics.SubmissionsSaved.WithLabelValues(string(sub.Status)).Inc()

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": sub.ID,
		})
	}
}

func UpdateSubmission(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.FromString(id); err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		req := submissionRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		existing, err := app.Store.GetSubmission(r.Context(), id)
		if store.IsNotFound(err) {
			httpx.LogNotFound(w, r, "update_submission", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_submission", err)
			return
		}
		if existing.SubmittedBy != middlewares.StaffID(r.Context()) {
			httpx.LogStatus(w, r, http.StatusForbidden, log.DebugLevel, "update_submission.not_owner")
			return
		}

		if err := validate.Struct(req); err != nil {
			renderValidation(w, r, "update_submission.payload", err)
			return
		}
		if strings.TrimSpace(req.FormTemplateID) != existing.FormTemplateID {
			httpx.ValidationFailed(w, r, "update_submission.template_changed",
				model.NewValidationError("form template cannot be changed",
					model.FieldError{Field: "formTemplateId", Error: "must match the original form template"}))
			return
		}
		if existing.Status == model.StatusSubmitted && req.Status == model.StatusDraft {
			httpx.ValidationFailed(w, r, "update_submission.status_regression",
				model.NewValidationError("a submitted evaluation cannot return to draft",
					model.FieldError{Field: "status", Error: "submitted is final"}))
			return
		}

		template, subject, responses, err := checkSubmissionPayload(r.Context(), app, req)
		if err != nil {
			renderValidation(w, r, "update_submission.check", err)
			return
		}

		sub := existing
		sub.Status = req.Status
		sub.StudentID = strings.TrimSpace(req.StudentID)
		sub.Student = subject
		sub.Responses = form.BuildResponses(template, responses)
		if err := app.Store.UpdateSubmission(r.Context(), &sub); err != nil {
			httpx.LogInternalError(w, r, "db.update_submission", err)
			return
		}
		metrics.SubmissionsSaved.WithLabelValues(string(sub.Status)).Inc()

		w.WriteHeader(http.StatusNoContent)
	}
}

// submissionView swaps the stored responses for their resolved display
// forms.
type submissionView struct {
	model.Submission
	Responses []form.ResolvedResponse `json:"responses"`
}

func GetSubmissionById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.FromString(id); err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		sub, err := app.Store.GetSubmission(r.Context(), id)
		if store.IsNotFound(err) {
			httpx.LogNotFound(w, r, "get_submission", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_submission", err)
			return
		}
		if sub.SubmittedBy != middlewares.StaffID(r.Context()) && !middlewares.HasRole(r.Context(), "admin") {
			httpx.LogStatus(w, r, http.StatusForbidden, log.DebugLevel, "get_submission.not_owner")
			return
		}

		// a deleted template degrades display to raw values, it never
		// hides an evaluation
		template, err := app.Forms.Get(r.Context(), sub.FormTemplateID)
		if err != nil && !store.IsNotFound(err) {
			httpx.LogInternalError(w, r, "db.get_submission.template", err)
			return
		}

		render.JSON(w, r, submissionView{
			Submission: sub,
			Responses:  form.ResolveAll(template, sub.Responses),
		})
	}
}

func ListSubmissions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filter := store.SubmissionFilter{
			Status:      query.Get("status"),
			TemplateID:  query.Get("form_template_id"),
			SubmittedBy: query.Get("submitted_by"),
		}
		if filter.Status != "" && !model.SubmissionStatus(filter.Status).Valid() {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.status")
			return
		}
		var err error
		if filter.Page, err = queryInt(query.Get("page")); err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.page")
			return
		}
		if filter.Limit, err = queryInt(query.Get("limit")); err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.limit")
			return
		}

		// non-admins only ever see their own work
		if !middlewares.HasRole(r.Context(), "admin") {
			filter.SubmittedBy = middlewares.StaffID(r.Context())
		}

		page, err := app.Store.ListSubmissions(r.Context(), filter)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_submissions", err)
			return
		}

		render.JSON(w, r, page)
	}
}

func DeleteSubmission(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.FromString(id); err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		sub, err := app.Store.GetSubmission(r.Context(), id)
		if store.IsNotFound(err) {
			httpx.LogNotFound(w, r, "delete_submission", id)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_submission", err)
			return
		}
		// deletion does not honor the admin override
		if sub.SubmittedBy != middlewares.StaffID(r.Context()) {
			httpx.LogStatus(w, r, http.StatusForbidden, log.DebugLevel, "delete_submission.not_owner")
			return
		}

		if err := app.Store.DeleteSubmission(r.Context(), id); err != nil {
			httpx.LogInternalError(w, r, "db.delete_submission", err)
			return
		}
		metrics.SubmissionsDeleted.Inc()

		w.WriteHeader(http.StatusNoContent)
	}
}

func SubmissionStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := app.Store.CountSubmissions(r.Context(), middlewares.StaffID(r.Context()))
		if err != nil {
			httpx.LogInternalError(w, r, "db.count_submissions", err)
			return
		}
		render.JSON(w, r, stats)
	}
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
