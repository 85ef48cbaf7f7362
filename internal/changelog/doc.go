// Package changelog parses and formats "Keep a Changelog" markdown documents.
//
// This package implements:
//   - Tokenizing CHANGELOG.md text into headings, list markers and free text
//   - Recursive-descent parsing into a Document with located ParseErrors
//   - Canonical rendering (sorted versions and sections, wrapped text)
//   - Version and entry querying for CLI display
//
// Parse and Render are pure functions. A Document produced by Parse and
// rendered with Render parses back to the same Document, and rendering
// it a second time changes nothing.
package changelog
