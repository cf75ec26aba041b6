// Package sanitizer provides input normalization for mentor and booking data.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully, typically by returning
// empty strings or empty slices rather than errors. Validation happens afterwards.
//
// Normalization includes:
//   - Emails: trim and lowercase, so ownership comparisons are exact
//   - Names: collapse whitespace, trim leading/trailing spaces
//   - Skills: lowercase, collapse whitespace
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
