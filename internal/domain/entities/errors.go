package entities

import "errors"

// ErrEntityNotFound indicates that no entity exists for the requested ID.
var ErrEntityNotFound = errors.New("entity not found")

// ErrDuplicateEntity indicates that an entity with the same ID already exists.
var ErrDuplicateEntity = errors.New("entity already exists")
