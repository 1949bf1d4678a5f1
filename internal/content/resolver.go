// Package content is the boundary to the content-generation subsystem that
// owns reviewable items. The scheduling core only needs to know whether an
// item exists and which topic it teaches.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrItemNotFound is returned when an item id is unknown to the registry.
// Scheduling an unknown item is nonsensical, so callers must not fall back.
var ErrItemNotFound = errors.New("item not found")

// DefaultTopic is assigned to items that carry no topic of their own.
const DefaultTopic = "General"

// Resolver resolves a reviewable item to the topic it teaches.
type Resolver interface {
	ResolveTopic(ctx context.Context, itemID string) (string, error)
}

// DBItemRepository implements Resolver over the items table.
type DBItemRepository struct {
	db *sqlx.DB
}

// NewDBItemRepository creates a new DBItemRepository.
func NewDBItemRepository(db *sqlx.DB) *DBItemRepository {
	return &DBItemRepository{db: db}
}

// ResolveTopic returns the topic for an item, or ErrItemNotFound when the id
// does not exist.
func (r *DBItemRepository) ResolveTopic(ctx context.Context, itemID string) (string, error) {
	var topic sql.NullString
	err := r.db.GetContext(ctx, &topic, "SELECT topic FROM items WHERE id = ?", itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("item %q: %w", itemID, ErrItemNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("db.GetContext(item topic) > %w", err)
	}
	if !topic.Valid || topic.String == "" {
		return DefaultTopic, nil
	}
	return topic.String, nil
}
