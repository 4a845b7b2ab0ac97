package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/truthtechno/lockerroom-evals/log"
	"github.com/truthtechno/lockerroom-evals/model"
	"github.com/truthtechno/lockerroom-evals/store"
)

type seedStudent struct {
	id, name, position, height, weight, jersey, sport, schoolID, schoolName string
}

var seedStudents = []seedStudent{
	{"a1b9fd11-6b3c-4f86-9e01-2d5a9be0c101", "Marcus Webb", "Forward", "6'1\"", "178 lbs", "9", "Soccer", "sch-eastside", "Eastside Prep"},
	{"a1b9fd11-6b3c-4f86-9e01-2d5a9be0c102", "Jaylen Ortiz", "Midfielder", "5'9\"", "152 lbs", "8", "Soccer", "sch-eastside", "Eastside Prep"},
	{"a1b9fd11-6b3c-4f86-9e01-2d5a9be0c103", "Tomás Rivera", "Goalkeeper", "6'3\"", "190 lbs", "1", "Soccer", "sch-northgate", "Northgate Academy"},
	{"a1b9fd11-6b3c-4f86-9e01-2d5a9be0c104", "Devon Price", "Defender", "5'11\"", "170 lbs", "4", "Soccer", "sch-northgate", "Northgate Academy"},
	{"a1b9fd11-6b3c-4f86-9e01-2d5a9be0c105", "Amara Diallo", "Winger", "5'7\"", "140 lbs", "11", "Soccer", "sch-lakeview", "Lakeview High"},
	{"a1b9fd11-6b3c-4f86-9e01-2d5a9be0c106", "Kai Thompson", "Point Guard", "6'0\"", "165 lbs", "3", "Basketball", "sch-lakeview", "Lakeview High"},
	{"a1b9fd11-6b3c-4f86-9e01-2d5a9be0c107", "Noah Bennett", "Center", "6'8\"", "225 lbs", "34", "Basketball", "sch-westbrook", "Westbrook High"},
	{"a1b9fd11-6b3c-4f86-9e01-2d5a9be0c108", "Lucas Meyer", "Shooting Guard", "6'2\"", "180 lbs", "23", "Basketball", "sch-westbrook", "Westbrook High"},
}

// Seed fills an empty database with demo roster players and a sample
// evaluation form so a fresh install has something to click on. Tables
// that already hold data are left alone.
func Seed(db *sqlx.DB) error {
	ctx := context.Background()

	var students int
	if err := db.GetContext(ctx, &students, `SELECT COUNT(*) FROM student`); err != nil {
		return errors.Wrap(err, "seed.count_students")
	}
	if students == 0 {
		if err := seedRoster(ctx, db); err != nil {
			return err
		}
		log.Infof("seeded %d demo players", len(seedStudents))
	}

	var templates int
	if err := db.GetContext(ctx, &templates, `SELECT COUNT(*) FROM form_template`); err != nil {
		return errors.Wrap(err, "seed.count_templates")
	}
	if templates == 0 {
		t := demoTemplate()
		if err := store.New(db).CreateTemplate(ctx, &t); err != nil {
			return errors.Wrap(err, "seed.demo_template")
		}
		log.Infof("seeded demo form template %q", t.Name)
	}

	return nil
}

func seedRoster(ctx context.Context, db *sqlx.DB) error {
	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO student (id, name, picture, position, height, weight, jersey_number, sport, school_id, school_name)
		VALUES (?, ?, NULL, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "seed.students.prepare")
	}
	defer stmt.Close()

	for _, st := range seedStudents {
		_, err := stmt.ExecContext(ctx,
			st.id, st.name, st.position, st.height, st.weight, st.jersey, st.sport, st.schoolID, st.schoolName)
		if err != nil {
			return errors.Wrap(err, "seed.students")
		}
	}
	return nil
}

func demoTemplate() model.FormTemplate {
	ratings := model.OptionList{
		{Value: "elite", Label: "Elite"},
		{Value: "above_average", Label: "Above average"},
		{Value: "average", Label: "Average"},
		{Value: "developing", Label: "Developing"},
	}
	strengths := model.OptionList{
		{Value: "speed", Label: "Speed"},
		{Value: "vision", Label: "Vision"},
		{Value: "finishing", Label: "Finishing"},
		{Value: "work_rate", Label: "Work rate"},
		{Value: "leadership", Label: "Leadership"},
	}
	recommend := model.OptionList{
		{Value: "sign", Label: "Sign now"},
		{Value: "watch", Label: "Keep watching"},
		{Value: "pass", Label: "Pass"},
	}

	return model.FormTemplate{
		Name:        "Match Day Scouting Report",
		Description: "Standard single match evaluation used by the scouting staff.",
		Status:      model.TemplateStatusActive,
		Fields: []model.FormField{
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d201", Type: model.FieldTypeSectionHeader, Label: "Match context", Order: 0},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d202", Type: model.FieldTypeDate, Label: "Match date", Required: true, Order: 1},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d203", Type: model.FieldTypeShortText, Label: "Opponent", Placeholder: "Who did they play?", Required: true, Order: 2},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d204", Type: model.FieldTypeNumber, Label: "Minutes played", Order: 3},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d205", Type: model.FieldTypeSectionHeader, Label: "Assessment", Order: 4},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d206", Type: model.FieldTypeStarRating, Label: "Overall performance", Required: true, Order: 5},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d207", Type: model.FieldTypeMultipleChoice, Label: "Technical level", Required: true, Order: 6, Options: ratings},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d208", Type: model.FieldTypeMultipleSelection, Label: "Standout strengths", Order: 7, Options: strengths, HelpText: "Pick everything that applied in this match."},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d209", Type: model.FieldTypeDropdown, Label: "Recommendation", Required: true, Order: 8, Options: recommend},
			{ID: "b2c0fe22-7c4d-4a97-8f12-3e6b0cf1d210", Type: model.FieldTypeParagraph, Label: "Notes", Placeholder: "Anything the ratings missed", Order: 9},
		},
	}
}
