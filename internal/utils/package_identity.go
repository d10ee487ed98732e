package utils

import (
	"fmt"

	"github.com/ralt/rpminventory/internal/models"
)

// PackageIdentity returns the key two inventory entries are compared on:
// name and version, exact and case-sensitive
func PackageIdentity(pkg models.Package) string {
	return fmt.Sprintf("%s\x00%s", pkg.Name, pkg.Version)
}

// IdentitySet indexes packages by PackageIdentity
func IdentitySet(packages []models.Package) map[string]bool {
	set := make(map[string]bool, len(packages))
	for _, pkg := range packages {
		set[PackageIdentity(pkg)] = true
	}
	return set
}
