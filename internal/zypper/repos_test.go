package zypper

import (
	"strings"
	"testing"

	"github.com/ralt/rpminventory/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepositoriesLastNameWins(t *testing.T) {
	xml := `<stream><repo-list>
<repo alias="first" name="dup"><url>https://first.example.com</url></repo>
<repo alias="second" name="dup"><url>https://second.example.com</url></repo>
</repo-list></stream>`

	repos, err := ParseRepositories(strings.NewReader(xml))
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, models.Repository{Alias: "second", Name: "dup", URL: "https://second.example.com"}, repos["dup"])
}

func TestParseRepositoriesNoRepos(t *testing.T) {
	repos, err := ParseRepositories(strings.NewReader(`<stream><repo-list></repo-list></stream>`))
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestParseRepositoriesMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated", `<stream><repo-list><repo alias="a" name="b">`},
		{"missing url", `<stream><repo alias="a" name="b"></repo></stream>`},
		{"empty url", `<stream><repo alias="a" name="b"><url></url></repo></stream>`},
		{"blank url", `<stream><repo alias="a" name="b"><url>  </url></repo></stream>`},
		{"missing name", `<stream><repo alias="a"><url>x</url></repo></stream>`},
		{"missing alias", `<stream><repo name="b"><url>x</url></repo></stream>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRepositories(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, models.IsErrorType(err, models.ErrParse))
		})
	}
}

func TestResolveURL(t *testing.T) {
	repos := map[string]models.Repository{
		"main-repo": {Alias: "oss", Name: "main-repo", URL: "https://example.com/repo"},
	}

	assert.Equal(t, "https://example.com/repo", ResolveURL(repos, "main-repo"))
	assert.Equal(t, "Unknown", ResolveURL(repos, "Main-Repo"))
	assert.Equal(t, "Unknown", ResolveURL(nil, "main-repo"))
}
