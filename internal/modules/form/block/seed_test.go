package block

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/formify/core/internal/modules/form/schema"
	"github.com/formify/core/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredefinedBlocksAreWellFormed(t *testing.T) {
	blocks := Predefined()
	require.Len(t, blocks, 8)

	seen := map[string]bool{}
	for _, b := range blocks {
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
		assert.False(t, b.IsCustom)
		assert.True(t, b.IsPublic)
		assert.Nil(t, b.CreatedByID)
		assert.Contains(t, Categories, b.Category)
		assert.NoError(t, schema.ValidateFields(b.Fields), b.ID)
	}
}

func TestPredefinedReturnsFreshCopy(t *testing.T) {
	a := Predefined()
	a[0].Fields[0].Label = "changed"
	assert.Equal(t, "Name", Predefined()[0].Fields[0].Label)
}

func TestSeedUpserts(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectExec("INSERT INTO `template_blocks` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 8))

	require.NoError(t, Seed(db))
}
