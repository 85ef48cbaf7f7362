package changelog

import (
	"slices"

	"github.com/Masterminds/semver/v3"
)

type orderedVersion struct {
	Version
	semver *semver.Version // nil when Number is not a semantic version
}

// sortVersions returns the versions newest first. Numbers that are not
// semantic versions (such as "Unreleased") sort above every release, and
// equal keys keep their input order.
func sortVersions(versions []Version) []Version {
	ordered := make([]orderedVersion, len(versions))
	for i, v := range versions {
		ordered[i].Version = v
		if sv, err := semver.NewVersion(v.Number); err == nil {
			ordered[i].semver = sv
		}
	}

	slices.SortStableFunc(ordered, func(a, b orderedVersion) int {
		switch {
		case a.semver == nil && b.semver == nil:
			return 0
		case a.semver == nil:
			return -1
		case b.semver == nil:
			return 1
		default:
			return b.semver.Compare(a.semver)
		}
	})

	out := make([]Version, len(ordered))
	for i, o := range ordered {
		out[i] = o.Version
	}
	return out
}

func isSemver(number string) bool {
	_, err := semver.NewVersion(number)
	return err == nil
}
