package store

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/truthtechno/lockerroom-evals/model"
)

type templateRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	Version     int       `db:"version"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type fieldRow struct {
	ID          string `db:"id"`
	TemplateID  string `db:"template_id"`
	Type        string `db:"type"`
	Label       string `db:"label"`
	Placeholder string `db:"placeholder"`
	HelpText    string `db:"help_text"`
	Required    bool   `db:"required"`
	SortOrder   int    `db:"sort_order"`
	Options     string `db:"options"`
}

func (r templateRow) unpack() model.FormTemplate {
	return model.FormTemplate{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Status:      model.TemplateStatus(r.Status),
		Version:     r.Version,
		Fields:      []model.FormField{},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r fieldRow) unpack() model.FormField {
	return model.FormField{
		ID:          r.ID,
		Type:        model.FieldType(r.Type),
		Label:       r.Label,
		Placeholder: r.Placeholder,
		HelpText:    r.HelpText,
		Required:    r.Required,
		Order:       r.SortOrder,
		Options:     model.ParseOptions(r.Options),
	}
}

func (s *Store) CreateTemplate(ctx context.Context, t *model.FormTemplate) error {
	if t.ID == "" {
		t.ID = uuid.Must(uuid.NewV4()).String()
	}
	now := time.Now().UTC()
	t.Version = 1
	t.CreatedAt = now
	t.UpdatedAt = now

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "db.insert_template.begin")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO form_template (id, name, description, status, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, string(t.Status), t.Version, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "db.insert_template")
	}

	if err := insertFields(ctx, tx, t.ID, t.Fields); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "db.insert_template.commit")
}

func insertFields(ctx context.Context, tx *sqlx.Tx, templateID string, fields []model.FormField) error {
	if len(fields) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO form_field (id, template_id, type, label, placeholder, help_text, required, sort_order, options)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "db.insert_template.fields.prepare")
	}
	defer stmt.Close()

	for _, f := range fields {
		_, err := stmt.ExecContext(ctx,
			f.ID, templateID, string(f.Type), f.Label, f.Placeholder, f.HelpText, f.Required, f.Order, f.Options.Encode())
		if err != nil {
			return errors.Wrap(err, "db.insert_template.fields")
		}
	}
	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id string) (model.FormTemplate, error) {
	var row templateRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, description, status, version, created_at, updated_at
		FROM form_template WHERE id = ?`, id)
	if err != nil {
		return model.FormTemplate{}, trapNoRows(err, "db.select_template")
	}

	t := row.unpack()
	var frows []fieldRow
	err = s.db.SelectContext(ctx, &frows, `
		SELECT id, template_id, type, label, placeholder, help_text, required, sort_order, options
		FROM form_field WHERE template_id = ? ORDER BY sort_order, id`, id)
	if err != nil {
		return model.FormTemplate{}, errors.Wrap(err, "db.select_template.fields")
	}
	for _, fr := range frows {
		t.Fields = append(t.Fields, fr.unpack())
	}
	return t, nil
}

// ListTemplates returns templates newest first, optionally filtered by
// status, with fields attached in display order.
func (s *Store) ListTemplates(ctx context.Context, status string) ([]model.FormTemplate, error) {
	query := `
		SELECT id, name, description, status, version, created_at, updated_at
		FROM form_template`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id`

	var rows []templateRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "db.select_templates")
	}
	if len(rows) == 0 {
		return []model.FormTemplate{}, nil
	}

	ids := make([]string, len(rows))
	byID := make(map[string]int, len(rows))
	templates := make([]model.FormTemplate, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
		byID[r.ID] = i
		templates[i] = r.unpack()
	}

	fq, fargs, err := sqlx.In(`
		SELECT id, template_id, type, label, placeholder, help_text, required, sort_order, options
		FROM form_field WHERE template_id IN (?) ORDER BY sort_order, id`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "db.select_templates.fields.expand")
	}
	var frows []fieldRow
	if err := s.db.SelectContext(ctx, &frows, s.db.Rebind(fq), fargs...); err != nil {
		return nil, errors.Wrap(err, "db.select_templates.fields")
	}
	for _, fr := range frows {
		i := byID[fr.TemplateID]
		templates[i].Fields = append(templates[i].Fields, fr.unpack())
	}
	return templates, nil
}

// UpdateTemplate replaces a template and its whole field set, guarded
// by the version the client last saw. Field rows are dropped and
// recreated; ids supplied by the client survive the rewrite, which is
// what keeps old submission responses attached to their fields.
func (s *Store) UpdateTemplate(ctx context.Context, t *model.FormTemplate, expectedVersion int) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "db.update_template.begin")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE form_template
		SET name = ?, description = ?, status = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		t.Name, t.Description, string(t.Status), now, t.ID, expectedVersion)
	if err != nil {
		return errors.Wrap(err, "db.update_template")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db.update_template.rows_affected")
	}
	if n == 0 {
		var exists int
		err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM form_template WHERE id = ?`, t.ID)
		if err != nil {
			return errors.Wrap(err, "db.update_template.verify")
		}
		if exists == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM form_field WHERE template_id = ?`, t.ID); err != nil {
		return errors.Wrap(err, "db.update_template.clear_fields")
	}
	if err := insertFields(ctx, tx, t.ID, t.Fields); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "db.update_template.commit")
	}

	t.Version = expectedVersion + 1
	t.UpdatedAt = now
	return nil
}

// DeleteTemplate removes a template and its fields. Submissions made
// against it stay untouched and keep rendering from their stored
// values.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM form_template WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "db.delete_template")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db.delete_template.rows_affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
