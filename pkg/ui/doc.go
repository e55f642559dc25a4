// Package ui renders simulate reports for the terminal, as plain text or
// as JSON.
package ui
