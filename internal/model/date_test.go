package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.March, 9)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"09/03/2024"`), &back))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-09", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())

	assert.Error(t, d.Scan(42))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", v)
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError()
	assert.NoError(t, ve.ErrOrNil())

	ve.Add("metadata.year", "field required")
	ve.Add("name", "field required")

	err := ve.ErrOrNil()
	require.Error(t, err)
	assert.Equal(t, "validation failed: metadata.year: field required; name: field required", err.Error())

	got, ok := IsValidation(err)
	require.True(t, ok)
	assert.Len(t, got.Fields, 2)
}
