// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock has function fields that override behavior
// per test, plus a usable in-memory default so simple tests need no setup.
package mocks
