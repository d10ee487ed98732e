package models

// UnknownRepoURL is recorded for packages whose repository is not configured.
const UnknownRepoURL = "Unknown"

// Provenance markers reported by zypper in the status column
const (
	StatusUserInstalled = "i+"
	StatusDependency    = "i"
)

// Package represents an installed package as recorded in an inventory
type Package struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Arch    string `json:"arch"`
	Repo    string `json:"repo"`
	RepoURL string `json:"repo_url"`
}

// UserInstalled reports whether the package was explicitly requested by a user
// rather than pulled in as a dependency.
func (p Package) UserInstalled() bool {
	return p.Status == StatusUserInstalled
}
