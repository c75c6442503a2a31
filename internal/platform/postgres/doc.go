// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces. All queries run through a store.DBTX so the same code serves
// pooled connections and transactions.
package postgres
