// Package types defines the entity model for kairu: tasks, groups, goals,
// user stats, the persisted State document, the Store interface, and the
// sentinel errors every layer shares.
package types
