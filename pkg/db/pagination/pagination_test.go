package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "42", CreatedAt: "2026-03-01T12:00:00Z"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	cursor, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.Equal(t, "42", cursor.ID)
	assert.Equal(t, "2026-03-01T12:00:00Z", cursor.CreatedAt)
}

func TestDecodeCursor_RejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64!")
	assert.Error(t, err)
}

func TestBuildCursorPageInfo_HasMore(t *testing.T) {
	type row struct{ id string }
	rows := []*row{{"3"}, {"2"}, {"1"}}

	info := BuildCursorPageInfo(rows, 2, func(r *row) string { return r.id })
	assert.True(t, info.HasMore)
	assert.Equal(t, "2", info.NextPageToken)

	info = BuildCursorPageInfo(rows[:2], 2, func(r *row) string { return r.id })
	assert.False(t, info.HasMore)
}
