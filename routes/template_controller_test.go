package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthtechno/lockerroom-evals/model"
)

func trialPayload() map[string]any {
	return map[string]any{
		"name":        "Trial Review",
		"description": "Notes after an open trial session.",
		"fields": []map[string]any{
			{"type": "section_header", "label": "Basics"},
			{"type": "short_text", "label": "Opponent", "required": true},
			{"type": "dropdown", "label": "Best position", "options": []map[string]any{
				{"value": "gk", "label": "Goalkeeper"},
				{"value": "df", "label": "Defender"},
			}},
		},
	}
}

func createTrialTemplate(t *testing.T, h http.Handler, admin string) string {
	t.Helper()
	w := doJSON(h, http.MethodPost, "/api/evaluation-forms/templates", admin, trialPayload())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decodeInto(t, w, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestCreateTemplate(t *testing.T) {
	a, h := newTestApp(t)
	admin := bearer(t, a, "admin-1", "admin,scout")

	id := createTrialTemplate(t, h, admin)

	w := doJSON(h, http.MethodGet, "/api/evaluation-forms/templates/"+id, bearer(t, a, "scout-1", "scout"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.FormTemplate
	decodeInto(t, w, &got)
	assert.Equal(t, "Trial Review", got.Name)
	assert.Equal(t, model.TemplateStatusActive, got.Status)
	assert.Equal(t, 1, got.Version)
	require.Len(t, got.Fields, 3)
	// ids are minted server side, order follows payload position
	for i, f := range got.Fields {
		assert.NotEmpty(t, f.ID)
		assert.Equal(t, i, f.Order)
	}
	assert.False(t, got.Fields[0].Required)
	assert.Equal(t, model.OptionList{
		{Value: "gk", Label: "Goalkeeper"},
		{Value: "df", Label: "Defender"},
	}, got.Fields[2].Options)
}

func TestTemplateAuthoringIsAdminOnly(t *testing.T) {
	a, h := newTestApp(t)
	scout := bearer(t, a, "scout-1", "scout")

	w := doJSON(h, http.MethodPost, "/api/evaluation-forms/templates", scout, trialPayload())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(h, http.MethodPut, "/api/evaluation-forms/templates/b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d201", scout, trialPayload())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(h, http.MethodDelete, "/api/evaluation-forms/templates/b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d201", scout, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// reading stays open to all staff
	w = doJSON(h, http.MethodGet, "/api/evaluation-forms/templates", scout, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTemplateValidation(t *testing.T) {
	a, h := newTestApp(t)
	admin := bearer(t, a, "admin-1", "admin")

	w := doRaw(h, http.MethodPost, "/api/evaluation-forms/templates", admin, "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload := trialPayload()
	delete(payload, "name")
	w = doJSON(h, http.MethodPost, "/api/evaluation-forms/templates", admin, payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, "invalid request payload", e.Error)
	require.Len(t, e.Details, 1)
	assert.Equal(t, "name", e.Details[0].Field)
	assert.Equal(t, "this field is required", e.Details[0].Error)

	payload = trialPayload()
	payload["fields"] = []map[string]any{
		{"type": "checkbox", "label": ""},
	}
	w = doJSON(h, http.MethodPost, "/api/evaluation-forms/templates", admin, payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	e = decodeError(t, w)
	assert.Equal(t, "invalid template fields", e.Error)
	assert.Equal(t, []string{"fields[0].type", "fields[0].label"}, detailFields(e))

	payload = trialPayload()
	payload["status"] = "archived"
	w = doJSON(h, http.MethodPost, "/api/evaluation-forms/templates", admin, payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	e = decodeError(t, w)
	require.Len(t, e.Details, 1)
	assert.Equal(t, "status", e.Details[0].Field)
}

func TestListTemplates(t *testing.T) {
	a, h := newTestApp(t)
	admin := bearer(t, a, "admin-1", "admin")
	scout := bearer(t, a, "scout-1", "scout")

	w := doJSON(h, http.MethodGet, "/api/evaluation-forms/templates", scout, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Templates []model.FormTemplate `json:"templates"`
	}
	decodeInto(t, w, &listed)
	// the seeded demo form is there with all its fields
	require.Len(t, listed.Templates, 1)
	assert.Equal(t, "Match Day Scouting Report", listed.Templates[0].Name)
	assert.Len(t, listed.Templates[0].Fields, 10)

	payload := trialPayload()
	payload["status"] = "inactive"
	w = doJSON(h, http.MethodPost, "/api/evaluation-forms/templates", admin, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(h, http.MethodGet, "/api/evaluation-forms/templates?status=inactive", scout, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeInto(t, w, &listed)
	require.Len(t, listed.Templates, 1)
	assert.Equal(t, "Trial Review", listed.Templates[0].Name)

	w = doJSON(h, http.MethodGet, "/api/evaluation-forms/templates?status=active", scout, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeInto(t, w, &listed)
	require.Len(t, listed.Templates, 1)
	assert.Equal(t, "Match Day Scouting Report", listed.Templates[0].Name)

	w = doJSON(h, http.MethodGet, "/api/evaluation-forms/templates?status=bogus", scout, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTemplateById(t *testing.T) {
	a, h := newTestApp(t)
	scout := bearer(t, a, "scout-1", "scout")

	w := doJSON(h, http.MethodGet, "/api/evaluation-forms/templates/not-a-uuid", scout, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(h, http.MethodGet, "/api/evaluation-forms/templates/b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d299", scout, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decodeError(t, w).Error)
}

func TestUpdateTemplate(t *testing.T) {
	a, h := newTestApp(t)
	admin := bearer(t, a, "admin-1", "admin")

	id := createTrialTemplate(t, h, admin)

	w := doJSON(h, http.MethodGet, "/api/evaluation-forms/templates/"+id, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var current model.FormTemplate
	decodeInto(t, w, &current)
	keptFieldID := current.Fields[1].ID

	update := map[string]any{
		"name":    "Trial Review v2",
		"version": 1,
		"fields": []map[string]any{
			{"id": keptFieldID, "type": "short_text", "label": "Opposition", "required": true},
			{"type": "number", "label": "Minutes played"},
		},
	}
	w = doJSON(h, http.MethodPut, "/api/evaluation-forms/templates/"+id, admin, update)
	assert.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = doJSON(h, http.MethodGet, "/api/evaluation-forms/templates/"+id, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got model.FormTemplate
	decodeInto(t, w, &got)
	assert.Equal(t, "Trial Review v2", got.Name)
	assert.Equal(t, 2, got.Version)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, keptFieldID, got.Fields[0].ID)
	assert.Equal(t, "Opposition", got.Fields[0].Label)

	// the same version token cannot win twice
	w = doJSON(h, http.MethodPut, "/api/evaluation-forms/templates/"+id, admin, update)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(h, http.MethodPut, "/api/evaluation-forms/templates/b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d299", admin, update)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(h, http.MethodPut, "/api/evaluation-forms/templates/not-a-uuid", admin, update)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTemplate(t *testing.T) {
	a, h := newTestApp(t)
	admin := bearer(t, a, "admin-1", "admin")

	id := createTrialTemplate(t, h, admin)

	w := doJSON(h, http.MethodDelete, "/api/evaluation-forms/templates/"+id, admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(h, http.MethodGet, "/api/evaluation-forms/templates/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(h, http.MethodDelete, "/api/evaluation-forms/templates/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
