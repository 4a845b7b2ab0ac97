package model

import (
	"strings"
	"time"
)

type TemplateStatus string

const (
	TemplateStatusActive   TemplateStatus = "active"
	TemplateStatusInactive TemplateStatus = "inactive"
)

func (s TemplateStatus) Valid() bool {
	return s == TemplateStatusActive || s == TemplateStatusInactive
}

type SubmissionStatus string

const (
	StatusDraft     SubmissionStatus = "draft"
	StatusSubmitted SubmissionStatus = "submitted"
)

func (s SubmissionStatus) Valid() bool {
	return s == StatusDraft || s == StatusSubmitted
}

// FormTemplate is a named, ordered collection of typed fields. Version
// counts up on every update and guards concurrent edits.
type FormTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Status      TemplateStatus `json:"status"`
	Version     int            `json:"version"`
	Fields      []FormField    `json:"fields"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (t FormTemplate) FieldByID(id string) (FormField, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FormField{}, false
}

type FormField struct {
	ID          string     `json:"id"`
	Type        FieldType  `json:"type"`
	Label       string     `json:"label"`
	Placeholder string     `json:"placeholder,omitempty"`
	HelpText    string     `json:"helpText,omitempty"`
	Required    bool       `json:"required"`
	Order       int        `json:"order"`
	Options     OptionList `json:"options,omitempty"`
}

// StudentData is the denormalized player block frozen into a submission
// at save time. For manual entries it is all we ever know about the
// player; for roster players it is a snapshot that survives roster
// edits.
type StudentData struct {
	Name         string `json:"name"`
	Picture      string `json:"picture,omitempty"`
	Position     string `json:"position,omitempty"`
	Height       string `json:"height,omitempty"`
	Weight       string `json:"weight,omitempty"`
	JerseyNumber string `json:"jerseyNumber,omitempty"`
	Sport        string `json:"sport,omitempty"`
	SchoolID     string `json:"schoolId,omitempty"`
	SchoolName   string `json:"schoolName,omitempty"`
}

func (d StudentData) Blank() bool {
	return strings.TrimSpace(d.Name) == ""
}

// Submission is one evaluation of one player against one template.
// Drafts may be incomplete; submitted evaluations passed the required
// field gate and never return to draft.
type Submission struct {
	ID             string               `json:"id"`
	FormTemplateID string               `json:"formTemplateId"`
	SubmittedBy    string               `json:"submittedBy"`
	Status         SubmissionStatus     `json:"status"`
	StudentID      string               `json:"studentId,omitempty"`
	Student        StudentData          `json:"studentData"`
	Responses      []SubmissionResponse `json:"responses"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// SubmissionResponse holds the single stored value for one field. Multi
// selection fields pack their whole selection into Value; see the form
// package for the encoding.
type SubmissionResponse struct {
	FieldID string `json:"fieldId"`
	Value   string `json:"value"`
}

// Student is a roster row from the read model this service searches
// against. Profile fields are free text as imported.
type Student struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Picture      string `json:"profilePicture,omitempty"`
	Position     string `json:"position,omitempty"`
	Height       string `json:"height,omitempty"`
	Weight       string `json:"weight,omitempty"`
	JerseyNumber string `json:"jerseyNumber,omitempty"`
	Sport        string `json:"sport,omitempty"`
	SchoolID     string `json:"schoolId,omitempty"`
	SchoolName   string `json:"schoolName,omitempty"`
}

// Data snapshots the roster row into the denormalized submission block.
func (s Student) Data() StudentData {
	return StudentData{
		Name:         s.Name,
		Picture:      s.Picture,
		Position:     s.Position,
		Height:       s.Height,
		Weight:       s.Weight,
		JerseyNumber: s.JerseyNumber,
		Sport:        s.Sport,
		SchoolID:     s.SchoolID,
		SchoolName:   s.SchoolName,
	}
}

// StudentSummary is the trimmed shape returned by the picker search.
type StudentSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Position       string `json:"position,omitempty"`
	Sport          string `json:"sport,omitempty"`
	SchoolName     string `json:"schoolName,omitempty"`
}
