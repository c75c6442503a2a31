// Package domain contains the core entities of the task manager: users and
// the tasks they exclusively own. Entities validate themselves; persistence
// and transport concerns live elsewhere.
package domain
