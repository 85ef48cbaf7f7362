package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// NormalizeVersion lowercases a version label and drops a "v" prefix and
// surrounding brackets, so "v1.0.0", "[1.0.0]" and "1.0.0" compare equal.
func NormalizeVersion(version string) string {
	v := strings.ToLower(strings.Trim(strings.TrimSpace(version), "[]"))
	return strings.TrimPrefix(v, "v")
}

// Version retrieves a version by number. Accepts "v0.6.0" and "0.6.0".
func (d *Document) Version(number string) (*Version, error) {
	normalized := NormalizeVersion(number)
	for i := range d.Versions {
		if NormalizeVersion(d.Versions[i].Number) == normalized {
			return &d.Versions[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           number,
		AvailableVersions: d.ListVersions(),
	}
}

// ListVersions returns the version numbers newest first.
func (d *Document) ListVersions() []string {
	sorted := sortVersions(d.Versions)
	versions := make([]string, len(sorted))
	for i, v := range sorted {
		versions[i] = v.Number
	}
	return versions
}

// Unreleased returns the "Unreleased" block, or nil.
func (d *Document) Unreleased() *Version {
	for i := range d.Versions {
		if d.Versions[i].IsUnreleased() {
			return &d.Versions[i]
		}
	}
	return nil
}

// LatestRelease returns the newest version that is a semantic version, or nil.
func (d *Document) LatestRelease() *Version {
	for _, v := range sortVersions(d.Versions) {
		if isSemver(v.Number) {
			return &v
		}
	}
	return nil
}

// AllEntries returns every item, newest version first.
func (d *Document) AllEntries() []Entry {
	var entries []Entry
	for _, v := range sortVersions(d.Versions) {
		entries = append(entries, v.Entries()...)
	}
	return entries
}

// LastN returns the n most recent entries across all versions.
func (d *Document) LastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	entries := d.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// EntryCount returns the total number of items across all versions.
func (d *Document) EntryCount() int {
	count := 0
	for _, v := range d.Versions {
		count += v.Count()
	}
	return count
}
