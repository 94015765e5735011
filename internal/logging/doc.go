// Package logging provides slog attribute helpers and canonical attribute
// keys so that log output stays consistent across the codebase.
//
// Token values must never appear in logs; use SanitizeToken when a token
// needs to be referenced at all.
package logging
