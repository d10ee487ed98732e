package zypper

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ralt/rpminventory/internal/models"
)

const (
	fieldDelimiter = "|"

	fieldStatus  = 0
	fieldName    = 1
	fieldVersion = 3
	fieldArch    = 4
	fieldRepo    = 5
	minFields    = 6
)

// installedLine matches rows whose status column is "i" (dependency) or
// "i+" (user installed) followed by more columns. Header, separator,
// not-installed rows and a bare status marker don't match.
var installedLine = regexp.MustCompile(`^i\+?[\s|].+$`)

// IsInstalledLine reports whether a trimmed line of
// `zypper search --details` output describes an installed package
func IsInstalledLine(line string) bool {
	return installedLine.MatchString(line)
}

// ParseLine splits an installed-package line into a Package and resolves its
// repository URL. A line with too few columns is a parse error carrying the line.
func ParseLine(line string, repos map[string]models.Repository) (models.Package, error) {
	fields := strings.Split(line, fieldDelimiter)
	if len(fields) < minFields {
		return models.Package{}, &models.InventoryError{
			Type: models.ErrParse,
			Line: line,
			Err: fmt.Errorf("failed to parse a line of zypper package output: expected at least %d fields, got %d",
				minFields, len(fields)),
		}
	}

	repo := strings.TrimSpace(fields[fieldRepo])
	return models.Package{
		Status:  strings.TrimSpace(fields[fieldStatus]),
		Name:    strings.TrimSpace(fields[fieldName]),
		Version: strings.TrimSpace(fields[fieldVersion]),
		Arch:    strings.TrimSpace(fields[fieldArch]),
		Repo:    repo,
		RepoURL: ResolveURL(repos, repo),
	}, nil
}

// ParsePackages parses `zypper --terse search --details` output, keeping only
// installed packages in output order
func ParsePackages(r io.Reader, repos map[string]models.Repository) ([]models.Package, error) {
	packages := make([]models.Package, 0, 1024)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !IsInstalledLine(line) {
			continue
		}

		pkg, err := ParseLine(line, repos)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}

	if err := scanner.Err(); err != nil {
		return nil, parseError(fmt.Errorf("failed to read package output: %w", err))
	}

	return packages, nil
}
