package gopms

import (
	"slices"

	"github.com/albertocavalcante/go-pms/atom"
	"github.com/albertocavalcante/go-pms/version"
)

// PackageChange represents an added or removed package in a Cpv diff.
type PackageChange struct {
	// Name is the category/package name.
	Name atom.Cpn `json:"name" yaml:"name"`

	// Version is the package version.
	Version version.Version `json:"version" yaml:"version"`
}

// PackageUpgrade represents a version change for a package present in both sets.
type PackageUpgrade struct {
	// Name is the category/package name.
	Name atom.Cpn `json:"name" yaml:"name"`

	// OldVersion is the version in the old set.
	OldVersion version.Version `json:"old_version" yaml:"old_version"`

	// NewVersion is the version in the new set.
	NewVersion version.Version `json:"new_version" yaml:"new_version"`
}

// CpvDiff describes the differences between two sets of installed package
// versions, for example two snapshots of a system's package database.
//
// Example usage:
//
//	diff := DiffCpvs(before, after)
//	if !diff.IsEmpty() {
//	    fmt.Printf("Changes: %d added, %d removed, %d upgraded, %d downgraded\n",
//	        len(diff.Added), len(diff.Removed), len(diff.Upgraded), len(diff.Downgraded))
//	}
type CpvDiff struct {
	// Added contains packages present in new but not in old.
	Added []PackageChange `json:"added,omitempty" yaml:"added,omitempty"`

	// Removed contains packages present in old but not in new.
	Removed []PackageChange `json:"removed,omitempty" yaml:"removed,omitempty"`

	// Upgraded contains packages where the new version is higher.
	Upgraded []PackageUpgrade `json:"upgraded,omitempty" yaml:"upgraded,omitempty"`

	// Downgraded contains packages where the new version is lower.
	Downgraded []PackageUpgrade `json:"downgraded,omitempty" yaml:"downgraded,omitempty"`
}

// IsEmpty returns true if there are no differences between the sets.
func (d *CpvDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Upgraded) == 0 &&
		len(d.Downgraded) == 0
}

// TotalChanges returns the total number of changes (added + removed + upgraded + downgraded).
func (d *CpvDiff) TotalChanges() int {
	return len(d.Added) + len(d.Removed) + len(d.Upgraded) + len(d.Downgraded)
}

// DiffCpvs computes the difference between two sets of package versions,
// keyed by category/package name.
//
// Versions are compared with PMS ordering, so "1.0" and "1.00" are the same
// version and produce no change. When a set lists a package more than once
// (several slots installed), the highest version stands for it.
//
// Results are sorted by category/package name for consistent output.
func DiffCpvs(old, new []atom.Cpv) *CpvDiff {
	diff := &CpvDiff{}

	oldPkgs := newestByName(old)
	newPkgs := newestByName(new)

	for name, newVersion := range newPkgs {
		oldVersion, existedBefore := oldPkgs[name]
		if !existedBefore {
			diff.Added = append(diff.Added, PackageChange{Name: name, Version: newVersion})
			continue
		}
		switch cmp := version.Compare(newVersion, oldVersion); {
		case cmp > 0:
			diff.Upgraded = append(diff.Upgraded, PackageUpgrade{Name: name, OldVersion: oldVersion, NewVersion: newVersion})
		case cmp < 0:
			diff.Downgraded = append(diff.Downgraded, PackageUpgrade{Name: name, OldVersion: oldVersion, NewVersion: newVersion})
		}
	}

	for name, oldVersion := range oldPkgs {
		if _, existsNow := newPkgs[name]; !existsNow {
			diff.Removed = append(diff.Removed, PackageChange{Name: name, Version: oldVersion})
		}
	}

	sortChanges(diff.Added)
	sortChanges(diff.Removed)
	sortUpgrades(diff.Upgraded)
	sortUpgrades(diff.Downgraded)

	return diff
}

func newestByName(cpvs []atom.Cpv) map[atom.Cpn]version.Version {
	out := make(map[atom.Cpn]version.Version, len(cpvs))
	for _, c := range cpvs {
		if prev, ok := out[c.Cpn()]; ok {
			out[c.Cpn()] = version.Max(prev, c.Version())
			continue
		}
		out[c.Cpn()] = c.Version()
	}
	return out
}

func sortChanges(changes []PackageChange) {
	slices.SortFunc(changes, func(a, b PackageChange) int {
		return a.Name.Compare(b.Name)
	})
}

func sortUpgrades(upgrades []PackageUpgrade) {
	slices.SortFunc(upgrades, func(a, b PackageUpgrade) int {
		return a.Name.Compare(b.Name)
	})
}
