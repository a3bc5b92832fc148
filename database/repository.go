package database

import (
	"daily-planner/storage"

	"github.com/Masterminds/squirrel"
)

// Repository implements storage.Backend on top of the embedded database
type Repository struct {
	db *DB
	sq squirrel.StatementBuilderType
}

var _ storage.Backend = (*Repository)(nil)

func NewRepository(db *DB) *Repository {
	return &Repository{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// nullable converts an optional string into a driver value
func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
