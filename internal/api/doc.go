// Package api contains the HTTP handlers, request/response models and
// error mapping for the task manager's REST surface. Handlers stay thin:
// decode, validate, call a store, map errors, respond.
package api
