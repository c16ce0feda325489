// Package store persists report rows to PostgreSQL through lib/pq.
//
// Every run writes its rows under a caller-chosen run id, in one
// transaction, with COPY. A failed run leaves no partial rows.
package store
