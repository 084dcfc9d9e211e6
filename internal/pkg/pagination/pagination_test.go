package pagination

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/formify/core/internal/pkg/apperr"
	"github.com/formify/core/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct{ ID string }

func rowID(r *row) string { return r.ID }

func TestParseDefaults(t *testing.T) {
	q, err := Parse("", "")
	require.NoError(t, err)
	assert.Equal(t, Query{Limit: DefaultLimit}, q)
}

func TestParseBounds(t *testing.T) {
	for _, raw := range []string{"0", "101", "-3", "ten"} {
		_, err := Parse(raw, "")
		assert.True(t, errors.Is(err, apperr.ErrValidation), "limit %q", raw)
	}

	q, err := Parse("100", " abc ")
	require.NoError(t, err)
	assert.Equal(t, 100, q.Limit)
	assert.Equal(t, "abc", q.Cursor)
}

func TestTrimReturnsNextCursorWhenMoreRowsExist(t *testing.T) {
	rows := []row{{"a"}, {"b"}, {"c"}}

	page, next := Trim(rows, 2, rowID)

	assert.Equal(t, []row{{"a"}, {"b"}}, page)
	assert.Equal(t, "c", next)
}

func TestTrimWithoutExtraRow(t *testing.T) {
	rows := []row{{"a"}, {"b"}}

	page, next := Trim(rows, 2, rowID)

	assert.Len(t, page, 2)
	assert.Empty(t, next)
}

type entry struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time
}

func (entry) TableName() string { return "entries" }

func entryID(e *entry) string { return e.ID }

func TestPaginateFromCursorIncludesAnchorRow(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	anchorAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT `?created_at`? FROM `entries` WHERE id = \\? LIMIT \\?").
		WithArgs("e-3", 1).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(anchorAt))
	mock.ExpectQuery("SELECT \\* FROM `entries` WHERE owner_id = \\? AND \\(entries.created_at < \\? OR \\(entries.created_at = \\? AND entries.id <= \\?\\)\\) "+
		"ORDER BY entries.created_at DESC,entries.id DESC LIMIT \\?").
		WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg(), "e-3", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "created_at"}).
			AddRow("e-3", "alice", anchorAt).
			AddRow("e-2", "alice", anchorAt.Add(-time.Hour)).
			AddRow("e-1", "alice", anchorAt.Add(-2*time.Hour)))

	var page []entry
	next, err := Paginate(db.Model(&entry{}).Where("owner_id = ?", "alice"), "entries", Query{Limit: 2, Cursor: "e-3"}, &page, entryID)
	require.NoError(t, err)
	assert.Equal(t, "e-1", next)
	require.Len(t, page, 2)
	assert.Equal(t, "e-3", page[0].ID)
	assert.Equal(t, "e-2", page[1].ID)
}

func TestPaginateLastPageHasNoNextCursor(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `entries` WHERE owner_id = \\? ORDER BY entries.created_at DESC,entries.id DESC LIMIT \\?").
		WithArgs("alice", 11).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "created_at"}).AddRow("e-1", "alice", time.Now()))

	var page []entry
	next, err := Paginate(db.Model(&entry{}).Where("owner_id = ?", "alice"), "entries", Query{}, &page, entryID)
	require.NoError(t, err)
	assert.Empty(t, next)
	assert.Len(t, page, 1)
}

func TestPaginateUnknownCursorIsValidationError(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT `?created_at`? FROM `entries` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

	var page []entry
	_, err := Paginate(db.Model(&entry{}), "entries", Query{Limit: 5, Cursor: "gone"}, &page, entryID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "cursor", verr.Issues[0].Field)
	assert.Nil(t, page)
}
