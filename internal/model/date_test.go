package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"", "2023-02-29", "29/02/2024", "2024-2-1"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-05-10"))
	assert.Equal(t, "2024-05-10", d.String())
	require.NoError(t, d.Scan([]byte("2024-05-11 00:00:00")))
	assert.Equal(t, "2024-05-11", d.String())
	require.NoError(t, d.Scan(time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-12", d.String())
	assert.Error(t, d.Scan(12))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-05-12", v)
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02"`, string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-04"`), &d))
	assert.Equal(t, "2024-03-04", d.String())
	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
}

func TestReportEffectiveDateAndLateness(t *testing.T) {
	day := func(s string) Date {
		d, err := ParseDate(s)
		require.NoError(t, err)
		return d
	}
	r := Report{Date: day("2024-05-10")}
	assert.Equal(t, "2024-05-10", r.EffectiveDate().String())
	assert.False(t, r.IsLate())

	past := day("2024-05-08")
	r.CustomDate = &past
	assert.Equal(t, "2024-05-08", r.EffectiveDate().String())
	assert.True(t, r.IsLate())

	future := day("2024-05-11")
	r.CustomDate = &future
	assert.False(t, r.IsLate())
}

func TestEnums(t *testing.T) {
	assert.True(t, TeamMarketing.Valid())
	assert.False(t, Team("pilot").Valid())
	assert.Equal(t, "Video Editor", TeamVideoEditor.Label())
	assert.Equal(t, "pilot", Team("pilot").Label())

	assert.True(t, ShiftHome.Valid())
	assert.Equal(t, "Work From Home", ShiftHome.Label())
	assert.Len(t, ShiftOptions(), len(Shifts))
	assert.Equal(t, Option{Value: "content_writer", Label: "Content Writer"}, TeamOptions()[0])
}

func TestFieldKinds(t *testing.T) {
	assert.NoError(t, FieldNumber.Kind().Check("2.5"))
	assert.EqualError(t, FieldNumber.Kind().Check("two"), "Enter a number.")
	assert.NoError(t, FieldDate.Kind().Check("2024-05-10"))
	assert.EqualError(t, FieldDate.Kind().Check("10 May"), "Enter a valid date.")
	assert.NoError(t, FieldText.Kind().Check("anything"))
	assert.Equal(t, "checkbox", FieldBoolean.Kind().InputType())
	assert.Equal(t, "textarea", FieldTextarea.Kind().InputType())

	assert.False(t, FieldType("color").Valid())
	assert.Equal(t, FieldText, FieldType("color").Kind().Type())
}
