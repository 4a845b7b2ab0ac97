package model

// FieldType identifies how a form field is rendered and how its
// response is validated. The set is closed: templates carrying an
// unknown type are rejected at write time.
type FieldType string

const (
	FieldTypeShortText         FieldType = "short_text"
	FieldTypeParagraph         FieldType = "paragraph"
	FieldTypeStarRating        FieldType = "star_rating"
	FieldTypeMultipleChoice    FieldType = "multiple_choice"
	FieldTypeMultipleSelection FieldType = "multiple_selection"
	FieldTypeNumber            FieldType = "number"
	FieldTypeDate              FieldType = "date"
	FieldTypeDropdown          FieldType = "dropdown"
	FieldTypeSectionHeader     FieldType = "section_header"
)

var fieldTypes = map[FieldType]struct{}{
	FieldTypeShortText:         {},
	FieldTypeParagraph:         {},
	FieldTypeStarRating:        {},
	FieldTypeMultipleChoice:    {},
	FieldTypeMultipleSelection: {},
	FieldTypeNumber:            {},
	FieldTypeDate:              {},
	FieldTypeDropdown:          {},
	FieldTypeSectionHeader:     {},
}

func (t FieldType) Valid() bool {
	_, ok := fieldTypes[t]
	return ok
}

// HasOptions reports whether the field type draws its values from a
// configured option set.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeMultipleChoice, FieldTypeMultipleSelection, FieldTypeDropdown:
		return true
	}
	return false
}

// Multi reports whether the stored value encodes a set of selections
// rather than a single one.
func (t FieldType) Multi() bool {
	return t == FieldTypeMultipleSelection
}

// Input reports whether the field collects a response at all. Section
// headers are layout only.
func (t FieldType) Input() bool {
	return t != FieldTypeSectionHeader
}
