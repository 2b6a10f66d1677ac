// Package render is the rendering layer for wizard results outside the
// browser: label sanitising, PNG export and a plain-text session summary.
package render
