package zypper

import (
	"strings"
	"testing"

	"github.com/ralt/rpminventory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInstalledLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"i+ | libfoo | package | 1.2.3 | x86_64 | main-repo", true},
		{"i  | libfoo | package | 1.2.3 | x86_64 | main-repo", true},
		{"i+|libfoo|package|1.2.3|x86_64|main-repo", true},
		{"i|libfoo|package|1.2.3|x86_64|main-repo", true},
		{"i+ libfoo", true},
		{"S  | Name | Type | Version | Arch | Repository", false},
		{"---+------+------+---------+------+-----------", false},
		{"v  | libfoo | package | 1.2.4 | x86_64 | main-repo", false},
		{"| libfoo | package | 1.2.3 | x86_64 | main-repo", false},
		{"Loading repository data...", false},
		{"installed", false},
		{"i+", false},
		{"i", false},
		{"i+|", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsInstalledLine(tt.line), "line %q", tt.line)
	}
}

func TestParseLineResolvesRepository(t *testing.T) {
	line := "i+ | libfoo | | 1.2.3 | x86_64 | main-repo |"
	repos := map[string]models.Repository{
		"main-repo": {Alias: "oss", Name: "main-repo", URL: "https://example.com/repo"},
	}

	pkg, err := ParseLine(line, repos)
	require.NoError(t, err)
	assert.Equal(t, models.Package{
		Status:  "i+",
		Name:    "libfoo",
		Version: "1.2.3",
		Arch:    "x86_64",
		Repo:    "main-repo",
		RepoURL: "https://example.com/repo",
	}, pkg)
}

func TestParseLineUnknownRepository(t *testing.T) {
	pkg, err := ParseLine("i+ | libfoo | | 1.2.3 | x86_64 | main-repo |", map[string]models.Repository{})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", pkg.RepoURL)
}

func TestParseLineMissingFields(t *testing.T) {
	line := "i+ | libfoo | package | 1.2.3"

	_, err := ParseLine(line, nil)
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrParse))
	assert.Contains(t, err.Error(), line)
}

func TestParsePackagesPreservesOrder(t *testing.T) {
	input := strings.Join([]string{
		"S  | Name | Type    | Version | Arch   | Repository",
		"---+------+---------+---------+--------+-----------",
		"i  | zlib | package | 1.3     | x86_64 | main-repo",
		"i+ | bash | package | 5.2     | x86_64 | main-repo",
		"v  | bash | package | 5.3     | x86_64 | main-repo",
		"i  | acl  | package | 2.3     | x86_64 | main-repo",
	}, "\n")

	packages, err := ParsePackages(strings.NewReader(input), nil)
	require.NoError(t, err)

	var names []string
	for _, pkg := range packages {
		names = append(names, pkg.Name)
		assert.Equal(t, "Unknown", pkg.RepoURL)
	}
	assert.Equal(t, []string{"zlib", "bash", "acl"}, names)
}

func TestParsePackagesAbortsOnBadLine(t *testing.T) {
	input := "i | zlib | package | 1.3 | x86_64 | main-repo\ni+ | broken\ni | acl | package | 2.3 | x86_64 | main-repo\n"

	packages, err := ParsePackages(strings.NewReader(input), nil)
	require.Error(t, err)
	assert.Nil(t, packages)

	var ie *models.InventoryError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "i+ | broken", ie.Line)
}

func TestParsePackagesEmpty(t *testing.T) {
	packages, err := ParsePackages(strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.NotNil(t, packages)
	assert.Empty(t, packages)
}
