// Package persistence provides GORM-based implementations of the entity
// repository over sqlite and postgres, including translation of
// MongoDB-style query documents into SQL.
package persistence
