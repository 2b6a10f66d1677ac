// Package app wires application dependencies for the CLI.
//
// It loads Config in layers (defaults, YAML file, .env, environment; flags
// are applied by the commands), then builds the logger, the diagram client
// with its circuit breaker and the session store, exposing them via the Wire
// struct for commands to use.
package app
