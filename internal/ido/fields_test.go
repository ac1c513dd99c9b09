package ido_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWRT/arrival-location/internal/ido"
	"github.com/TWRT/arrival-location/internal/models"
)

type mapLookup map[string]string

func (m mapLookup) Get(name string) string { return m[name] }

func names(props []models.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Name
	}
	return out
}

func modifiedByName(props []models.Property) map[string]bool {
	out := make(map[string]bool, len(props))
	for _, p := range props {
		out[p.Name] = p.Modified
	}
	return out
}

func TestReadFields(t *testing.T) {
	props, err := ido.Fields(ido.ModeRead, map[string]string{"Item": "ignored"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Item", "Description", "QtyOrderedConv", "QtyShipped",
		"CoNum",
		"ue_Uf_update_time_from_mongoose", "ue_Uf_updator_from_mongoose",
		"RecordDate", "RowPointer", "_ItemId",
		"CoLine", "CoRelease",
	}, names(props))

	for _, p := range props {
		assert.Empty(t, p.Value, p.Name)
		assert.False(t, p.IsNull, p.Name)
	}

	mod := modifiedByName(props)
	for _, key := range []string{"CoNum", "CoLine", "CoRelease"} {
		assert.False(t, mod[key], key)
	}
	for _, name := range []string{"Item", "Description", "QtyOrderedConv", "QtyShipped", "RecordDate", "RowPointer", "_ItemId",
		"ue_Uf_update_time_from_mongoose", "ue_Uf_updator_from_mongoose"} {
		assert.True(t, mod[name], name)
	}
}

func TestInsertFields(t *testing.T) {
	values := map[string]string{"CoNum": "CO1", "CoLine": "1", "CoRelease": "0", "RowPointer": "rp"}
	props, err := ido.Fields(ido.ModeInsert, values)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ue_Uf_update_time_from_mongoose", "ue_Uf_updator_from_mongoose",
		"CoNum", "CoLine", "CoRelease",
	}, names(props))
	for _, p := range props {
		assert.True(t, p.Modified, p.Name)
	}
	assert.Equal(t, "CO1", props[2].Value)
}

func TestUpdateAndDeleteFields(t *testing.T) {
	for _, mode := range []ido.Mode{ido.ModeUpdate, ido.ModeDelete} {
		t.Run(mode.String(), func(t *testing.T) {
			props, err := ido.Fields(mode, map[string]string{"CoNum": "CO1", "_ItemId": "id"})
			require.NoError(t, err)

			assert.Equal(t, []string{
				"ue_Uf_update_time_from_mongoose", "ue_Uf_updator_from_mongoose",
				"CoNum", "CoLine", "CoRelease",
				"RecordDate", "RowPointer", "_ItemId",
			}, names(props))

			mod := modifiedByName(props)
			assert.False(t, mod["CoNum"])
			assert.False(t, mod["CoLine"])
			assert.False(t, mod["CoRelease"])
			assert.True(t, mod["RecordDate"])
			assert.True(t, mod["RowPointer"])
			assert.True(t, mod["_ItemId"])
			assert.Equal(t, "id", props[7].Value)
		})
	}
}

func TestFieldsRejectsUnknownMode(t *testing.T) {
	_, err := ido.Fields(ido.Mode(3), nil)
	require.ErrorIs(t, err, ido.ErrUnsupportedMode)
}

func TestWriteValues(t *testing.T) {
	vars := mapLookup{
		"User":             "tanaka",
		"selectCoNum":      "CO9",
		"selectCoLine":     "2",
		"selectCoRelease":  "1",
		"selectRecordDate": "2024-01-01",
		"selectRowPointer": "rp9",
		"selectItemId":     "id9",
	}

	values := ido.WriteValues(vars, "2024/01/01 09:00:00")

	assert.Equal(t, map[string]string{
		"ue_Uf_update_time_from_mongoose": "2024/01/01 09:00:00",
		"ue_Uf_updator_from_mongoose":     "tanaka",
		"CoNum":                           "CO9",
		"CoLine":                          "2",
		"CoRelease":                       "1",
		"RecordDate":                      "2024-01-01",
		"RowPointer":                      "rp9",
		"_ItemId":                         "id9",
	}, values)
}

func TestAuditStamp(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	now := time.Date(2024, 3, 31, 20, 5, 9, 0, time.UTC)
	assert.Equal(t, "2024/04/01 5:05:09", ido.AuditStamp(now, tokyo))
	assert.Equal(t, "2024/03/31 20:05:09", ido.AuditStamp(now, nil))

	tests := []struct {
		hour int
		want string
	}{
		{hour: 0, want: "2024/05/01 0:07:03"},
		{hour: 9, want: "2024/05/01 9:07:03"},
		{hour: 23, want: "2024/05/01 23:07:03"},
	}
	for _, tt := range tests {
		now := time.Date(2024, 5, 1, tt.hour, 7, 3, 0, time.UTC)
		assert.Equal(t, tt.want, ido.AuditStamp(now, time.UTC))
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "read", ido.ModeRead.String())
	assert.Equal(t, "delete", ido.ModeDelete.String())
	assert.Equal(t, "mode(3)", ido.Mode(3).String())
	assert.False(t, ido.Mode(3).Valid())
	assert.False(t, ido.ModeRead.IsWrite())
	assert.True(t, ido.ModeInsert.IsWrite())
}
