// Package entities defines the cross-BER entity data model and the
// contracts for querying and ingesting entities.
//
// An entity is a single record integrated from one of the BER data
// sources (EMSL, ESS-DIVE, JGI, NMDC, MONET). The types here mirror the
// bertron-schema data model.
package entities
