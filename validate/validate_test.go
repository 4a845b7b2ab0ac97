package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthtechno/lockerroom-evals/model"
)

type payload struct {
	Name   string  `json:"name" validate:"required,max=8"`
	Status string  `json:"status" validate:"omitempty,oneof=active inactive"`
	Rows   []entry `json:"rows" validate:"dive"`
}

type entry struct {
	Label string `json:"label" validate:"required"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(payload{Name: "ok", Status: "active"}))

	err := Struct(payload{Status: "archived", Rows: []entry{{Label: "x"}, {}}})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid request payload", verr.Msg)
	require.Len(t, verr.Fields, 3)

	// paths use JSON member names with the root struct stripped
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Equal(t, "this field is required", verr.Fields[0].Error)
	assert.Equal(t, "status", verr.Fields[1].Field)
	assert.Contains(t, verr.Fields[1].Error, "must be one of")
	assert.Equal(t, "rows[1].label", verr.Fields[2].Field)
	assert.Equal(t, "this field is required", verr.Fields[2].Error)
}

func TestStructMax(t *testing.T) {
	err := Struct(payload{Name: "way past the limit"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Error, "maximum")
}
