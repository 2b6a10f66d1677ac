// Package domain holds the wizard's session model, the diagram service wire
// format and the contracts between the wizard, its transport and its store.
// Types live in domain/types and interfaces in domain/interfaces; this
// package re-exports both so callers import a single path.
package domain
