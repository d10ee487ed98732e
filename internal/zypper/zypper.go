package zypper

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ralt/rpminventory/internal/models"
	"github.com/sirupsen/logrus"
)

const binary = "zypper"

// Informational zypper exit codes that describe an empty result
const (
	exitNoRepos     = 6   // ZYPPER_EXIT_NO_REPOS
	exitCapNotFound = 104 // ZYPPER_EXIT_INF_CAP_NOT_FOUND
)

var (
	// Repository listing with full details; XML because it is the only
	// output mode that reliably carries the URL.
	listReposArgs = []string{"--terse", "--non-interactive", "--xmlout", "lr", "--details"}

	// Installed package search. Not XML: the XML output doesn't say whether a
	// package was user installed or pulled in as a dependency.
	searchInstalledArgs = []string{"--terse", "--non-interactive", "search", "--type", "package", "--installed-only", "--details"}
)

// Client queries zypper for repository and package state
type Client struct {
	runner Runner
}

// NewClient creates a new zypper client
func NewClient(r Runner) *Client {
	return &Client{runner: r}
}

// Repositories returns the configured repositories keyed by name
func (c *Client) Repositories(ctx context.Context) (map[string]models.Repository, error) {
	out, err := c.runner.Run(ctx, binary, listReposArgs...)
	if err != nil {
		if !hasExitCode(err, exitNoRepos) {
			return nil, commandError("failed to list repositories", err)
		}
		logrus.Warn("zypper has no repositories defined, every repo_url will be Unknown")
		return map[string]models.Repository{}, nil
	}

	repos, err := ParseRepositories(bytes.NewReader(out))
	if err != nil {
		return nil, err
	}

	logrus.Infof("Found %d repositories", len(repos))
	return repos, nil
}

// InstalledPackages returns the installed packages joined against repos
func (c *Client) InstalledPackages(ctx context.Context, repos map[string]models.Repository) ([]models.Package, error) {
	out, err := c.runner.Run(ctx, binary, searchInstalledArgs...)
	if err != nil {
		if !hasExitCode(err, exitCapNotFound) {
			return nil, commandError("failed to search installed packages", err)
		}
		logrus.Warn("zypper reported no installed packages")
	}

	packages, err := ParsePackages(bytes.NewReader(out), repos)
	if err != nil {
		return nil, err
	}

	userInstalled := 0
	for _, pkg := range packages {
		if pkg.UserInstalled() {
			userInstalled++
		}
	}
	logrus.Infof("Found %d installed packages (%d user installed, %d dependencies)",
		len(packages), userInstalled, len(packages)-userInstalled)

	return packages, nil
}

func hasExitCode(err error, code int) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode == code
}

func commandError(msg string, err error) error {
	return &models.InventoryError{
		Type: models.ErrCommand,
		Err:  fmt.Errorf("%s: %w", msg, err),
	}
}
