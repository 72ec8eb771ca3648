// Package client implements the Go client for the BERtron API server.
//
// It provides typed methods to query and retrieve entity data from the
// BER data sources, including MongoDB-style find queries and geospatial
// radius and bounding box searches.
package client
