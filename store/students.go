package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/truthtechno/lockerroom-evals/model"
)

type studentRow struct {
	ID           string      `db:"id"`
	Name         string      `db:"name"`
	Picture      null.String `db:"picture"`
	Position     null.String `db:"position"`
	Height       null.String `db:"height"`
	Weight       null.String `db:"weight"`
	JerseyNumber null.String `db:"jersey_number"`
	Sport        null.String `db:"sport"`
	SchoolID     null.String `db:"school_id"`
	SchoolName   null.String `db:"school_name"`
}

func (r studentRow) unpack() model.Student {
	return model.Student{
		ID:           r.ID,
		Name:         r.Name,
		Picture:      r.Picture.String,
		Position:     r.Position.String,
		Height:       r.Height.String,
		Weight:       r.Weight.String,
		JerseyNumber: r.JerseyNumber.String,
		Sport:        r.Sport.String,
		SchoolID:     r.SchoolID.String,
		SchoolName:   r.SchoolName.String,
	}
}

// SearchStudents matches the query against player and school names,
// case-insensitively, capped at limit rows in name order.
func (s *Store) SearchStudents(ctx context.Context, q string, limit int) ([]model.StudentSummary, error) {
	like := "%" + q + "%"
	var rows []studentRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, picture, position, height, weight, jersey_number, sport, school_id, school_name
		FROM student
		WHERE name LIKE ? OR school_name LIKE ?
		ORDER BY name, id LIMIT ?`, like, like, limit)
	if err != nil {
		return nil, errors.Wrap(err, "db.search_students")
	}
	out := make([]model.StudentSummary, len(rows))
	for i, r := range rows {
		out[i] = model.StudentSummary{
			ID:             r.ID,
			Name:           r.Name,
			ProfilePicture: r.Picture.String,
			Position:       r.Position.String,
			Sport:          r.Sport.String,
			SchoolName:     r.SchoolName.String,
		}
	}
	return out, nil
}

func (s *Store) GetStudent(ctx context.Context, id string) (model.Student, error) {
	var row studentRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, picture, position, height, weight, jersey_number, sport, school_id, school_name
		FROM student WHERE id = ?`, id)
	if err != nil {
		return model.Student{}, trapNoRows(err, "db.select_student")
	}
	return row.unpack(), nil
}
