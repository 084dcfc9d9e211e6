package pagination

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/formify/core/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query holds parsed cursor pagination parameters.
// Cursor is the id of the first row of the requested page.
type Query struct {
	Limit  int
	Cursor string
}

// FromContext extracts and validates ?limit=&cursor= from the request.
func FromContext(c *gin.Context) (Query, error) {
	return Parse(c.Query("limit"), c.Query("cursor"))
}

// Parse validates raw pagination parameters. An empty limit means DefaultLimit.
func Parse(rawLimit, cursor string) (Query, error) {
	q := Query{Limit: DefaultLimit, Cursor: strings.TrimSpace(cursor)}
	rawLimit = strings.TrimSpace(rawLimit)
	if rawLimit == "" {
		return q, nil
	}
	n, err := strconv.Atoi(rawLimit)
	if err != nil || n < 1 || n > MaxLimit {
		return Query{}, apperr.Invalidf("limit", "must be an integer between 1 and %d", MaxLimit)
	}
	q.Limit = n
	return q, nil
}

// Trim cuts a limit+1 result set down to limit rows and returns the id of
// the row that would start the next page, or "" when there is none.
func Trim[T any](rows []T, limit int, idOf func(*T) string) ([]T, string) {
	if limit < 1 || len(rows) <= limit {
		return rows, ""
	}
	next := idOf(&rows[limit])
	return rows[:limit], next
}

// Paginate applies cursor/limit to a GORM query ordered by creation time
// (newest first) and fills dest. table names the queried table so the
// cursor row can be located.
func Paginate[T any](tx *gorm.DB, table string, q Query, dest *[]T, idOf func(*T) string) (string, error) {
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Cursor != "" {
		var anchor struct{ CreatedAt time.Time }
		err := tx.Session(&gorm.Session{NewDB: true}).
			Table(table).
			Select("created_at").
			Where("id = ?", q.Cursor).
			Take(&anchor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", apperr.Invalidf("cursor", "unknown cursor %q", q.Cursor)
			}
			return "", err
		}
		tx = tx.Where(
			table+".created_at < ? OR ("+table+".created_at = ? AND "+table+".id <= ?)",
			anchor.CreatedAt, anchor.CreatedAt, q.Cursor,
		)
	}

	var rows []T
	if err := tx.Order(table + ".created_at DESC").Order(table + ".id DESC").Limit(q.Limit + 1).Find(&rows).Error; err != nil {
		return "", err
	}
	page, next := Trim(rows, q.Limit, idOf)
	*dest = page
	return next, nil
}
