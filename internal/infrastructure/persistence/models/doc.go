// Package models contains the GORM database models for the entity store.
package models
