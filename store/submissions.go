package store

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/truthtechno/lockerroom-evals/model"
)

type submissionRow struct {
	ID             string      `db:"id"`
	TemplateID     string      `db:"template_id"`
	SubmittedBy    string      `db:"submitted_by"`
	Status         string      `db:"status"`
	StudentID      null.String `db:"student_id"`
	StudentName    null.String `db:"student_name"`
	StudentPicture null.String `db:"student_picture"`
	Position       null.String `db:"student_position"`
	Height         null.String `db:"student_height"`
	Weight         null.String `db:"student_weight"`
	JerseyNumber   null.String `db:"student_jersey_number"`
	Sport          null.String `db:"student_sport"`
	SchoolID       null.String `db:"school_id"`
	SchoolName     null.String `db:"school_name"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

type responseRow struct {
	SubmissionID string `db:"submission_id"`
	FieldID      string `db:"field_id"`
	Value        string `db:"value"`
}

func packSubmission(sub model.Submission) submissionRow {
	opt := func(v string) null.String { return null.NewString(v, v != "") }
	return submissionRow{
		ID:             sub.ID,
		TemplateID:     sub.FormTemplateID,
		SubmittedBy:    sub.SubmittedBy,
		Status:         string(sub.Status),
		StudentID:      opt(sub.StudentID),
		StudentName:    opt(sub.Student.Name),
		StudentPicture: opt(sub.Student.Picture),
		Position:       opt(sub.Student.Position),
		Height:         opt(sub.Student.Height),
		Weight:         opt(sub.Student.Weight),
		JerseyNumber:   opt(sub.Student.JerseyNumber),
		Sport:          opt(sub.Student.Sport),
		SchoolID:       opt(sub.Student.SchoolID),
		SchoolName:     opt(sub.Student.SchoolName),
		CreatedAt:      sub.CreatedAt,
		UpdatedAt:      sub.UpdatedAt,
	}
}

func (r submissionRow) unpack() model.Submission {
	return model.Submission{
		ID:             r.ID,
		FormTemplateID: r.TemplateID,
		SubmittedBy:    r.SubmittedBy,
		Status:         model.SubmissionStatus(r.Status),
		StudentID:      r.StudentID.String,
		Student: model.StudentData{
			Name:         r.StudentName.String,
			Picture:      r.StudentPicture.String,
			Position:     r.Position.String,
			Height:       r.Height.String,
			Weight:       r.Weight.String,
			JerseyNumber: r.JerseyNumber.String,
			Sport:        r.Sport.String,
			SchoolID:     r.SchoolID.String,
			SchoolName:   r.SchoolName.String,
		},
		Responses: []model.SubmissionResponse{},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const submissionCols = `id, template_id, submitted_by, status,
	student_id, student_name, student_picture, student_position, student_height,
	student_weight, student_jersey_number, student_sport, school_id, school_name,
	created_at, updated_at`

func (s *Store) CreateSubmission(ctx context.Context, sub *model.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.Must(uuid.NewV4()).String()
	}
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	row := packSubmission(*sub)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "db.insert_submission.begin")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO submission (`+submissionCols+`)
		VALUES (:id, :template_id, :submitted_by, :status,
			:student_id, :student_name, :student_picture, :student_position, :student_height,
			:student_weight, :student_jersey_number, :student_sport, :school_id, :school_name,
			:created_at, :updated_at)`, row)
	if err != nil {
		return errors.Wrap(err, "db.insert_submission")
	}

	if err := insertResponses(ctx, tx, sub.ID, sub.Responses); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "db.insert_submission.commit")
}

func insertResponses(ctx context.Context, tx *sqlx.Tx, submissionID string, rs []model.SubmissionResponse) error {
	if len(rs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO submission_response (submission_id, field_id, value) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "db.insert_submission.responses.prepare")
	}
	defer stmt.Close()

	for _, r := range rs {
		if _, err := stmt.ExecContext(ctx, submissionID, r.FieldID, r.Value); err != nil {
			return errors.Wrap(err, "db.insert_submission.responses")
		}
	}
	return nil
}

// UpdateSubmission overwrites status, subject and the whole response
// set. Saves are last write wins; responses are dropped and recreated
// in one transaction.
func (s *Store) UpdateSubmission(ctx context.Context, sub *model.Submission) error {
	sub.UpdatedAt = time.Now().UTC()
	row := packSubmission(*sub)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "db.update_submission.begin")
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
		UPDATE submission SET status = :status,
			student_id = :student_id, student_name = :student_name, student_picture = :student_picture,
			student_position = :student_position, student_height = :student_height,
			student_weight = :student_weight, student_jersey_number = :student_jersey_number,
			student_sport = :student_sport, school_id = :school_id, school_name = :school_name,
			updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return errors.Wrap(err, "db.update_submission")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db.update_submission.rows_affected")
	}
	if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM submission_response WHERE submission_id = ?`, sub.ID); err != nil {
		return errors.Wrap(err, "db.update_submission.clear_responses")
	}
	if err := insertResponses(ctx, tx, sub.ID, sub.Responses); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "db.update_submission.commit")
}

func (s *Store) GetSubmission(ctx context.Context, id string) (model.Submission, error) {
	var row submissionRow
	err := s.db.GetContext(ctx, &row, `SELECT `+submissionCols+` FROM submission WHERE id = ?`, id)
	if err != nil {
		return model.Submission{}, trapNoRows(err, "db.select_submission")
	}
	sub := row.unpack()

	var rrows []responseRow
	err = s.db.SelectContext(ctx, &rrows, `
		SELECT submission_id, field_id, value
		FROM submission_response WHERE submission_id = ? ORDER BY field_id`, id)
	if err != nil {
		return model.Submission{}, errors.Wrap(err, "db.select_submission.responses")
	}
	for _, rr := range rrows {
		sub.Responses = append(sub.Responses, model.SubmissionResponse{FieldID: rr.FieldID, Value: rr.Value})
	}
	return sub, nil
}

func (s *Store) DeleteSubmission(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submission WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "db.delete_submission")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "db.delete_submission.rows_affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SubmissionFilter narrows and pages the submission listing. Zero
// values mean "no filter"; Normalize applies the paging defaults.
type SubmissionFilter struct {
	Status      string
	TemplateID  string
	SubmittedBy string
	Page        int
	Limit       int
}

func (f *SubmissionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

type SubmissionPage struct {
	Submissions []model.Submission `json:"submissions"`
	Total       int                `json:"total"`
	Page        int                `json:"page"`
	Limit       int                `json:"limit"`
	TotalPages  int                `json:"totalPages"`
}

func (f SubmissionFilter) where() (string, []any) {
	conds := []string{}
	args := []any{}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.TemplateID != "" {
		conds = append(conds, "template_id = ?")
		args = append(args, f.TemplateID)
	}
	if f.SubmittedBy != "" {
		conds = append(conds, "submitted_by = ?")
		args = append(args, f.SubmittedBy)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListSubmissions returns one page, newest first, with responses
// attached, plus the total count for the paging envelope.
func (s *Store) ListSubmissions(ctx context.Context, f SubmissionFilter) (SubmissionPage, error) {
	f.Normalize()
	where, args := f.where()
	page := SubmissionPage{
		Submissions: []model.Submission{},
		Page:        f.Page,
		Limit:       f.Limit,
	}

	err := s.db.GetContext(ctx, &page.Total, `SELECT COUNT(*) FROM submission`+where, args...)
	if err != nil {
		return page, errors.Wrap(err, "db.select_submissions.count")
	}
	page.TotalPages = (page.Total + f.Limit - 1) / f.Limit
	if page.Total == 0 {
		return page, nil
	}

	var rows []submissionRow
	listArgs := append(append([]any{}, args...), f.Limit, (f.Page-1)*f.Limit)
	err = s.db.SelectContext(ctx, &rows, `
		SELECT `+submissionCols+` FROM submission`+where+`
		ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return page, errors.Wrap(err, "db.select_submissions")
	}
	if len(rows) == 0 {
		return page, nil
	}

	ids := make([]string, len(rows))
	byID := make(map[string]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
		byID[r.ID] = i
		page.Submissions = append(page.Submissions, r.unpack())
	}

	rq, rargs, err := sqlx.In(`
		SELECT submission_id, field_id, value
		FROM submission_response WHERE submission_id IN (?) ORDER BY submission_id, field_id`, ids)
	if err != nil {
		return page, errors.Wrap(err, "db.select_submissions.responses.expand")
	}
	var rrows []responseRow
	if err := s.db.SelectContext(ctx, &rrows, s.db.Rebind(rq), rargs...); err != nil {
		return page, errors.Wrap(err, "db.select_submissions.responses")
	}
	for _, rr := range rrows {
		i := byID[rr.SubmissionID]
		page.Submissions[i].Responses = append(page.Submissions[i].Responses,
			model.SubmissionResponse{FieldID: rr.FieldID, Value: rr.Value})
	}
	return page, nil
}

type SubmissionStats struct {
	Total     int `json:"total"`
	Drafts    int `json:"drafts"`
	Submitted int `json:"submitted"`
}

// CountSubmissions breaks down one evaluator's submissions by status.
func (s *Store) CountSubmissions(ctx context.Context, submittedBy string) (SubmissionStats, error) {
	rows := []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT status, COUNT(*) AS n FROM submission WHERE submitted_by = ? GROUP BY status`, submittedBy)
	if err != nil {
		return SubmissionStats{}, errors.Wrap(err, "db.count_submissions")
	}
	var stats SubmissionStats
	for _, r := range rows {
		stats.Total += r.N
		switch model.SubmissionStatus(r.Status) {
		case model.StatusDraft:
			stats.Drafts += r.N
		case model.StatusSubmitted:
			stats.Submitted += r.N
		}
	}
	return stats, nil
}
