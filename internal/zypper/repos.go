package zypper

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ralt/rpminventory/internal/models"
	"github.com/sirupsen/logrus"
)

// repoElement mirrors a <repo> element of `zypper --xmlout lr --details`
type repoElement struct {
	Alias *string `xml:"alias,attr"`
	Name  *string `xml:"name,attr"`
	URL   *string `xml:"url"`
}

// ParseRepositories parses zypper's XML repository listing into a table keyed
// by repository name. <repo> elements are collected at any depth. When two
// repositories share a name the later one wins.
func ParseRepositories(r io.Reader) (map[string]models.Repository, error) {
	repos := make(map[string]models.Repository)
	decoder := xml.NewDecoder(r)
	seenRoot := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(fmt.Errorf("invalid repository XML: %w", err))
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		seenRoot = true
		if start.Name.Local != "repo" {
			continue
		}

		var elem repoElement
		if err := decoder.DecodeElement(&elem, &start); err != nil {
			return nil, parseError(fmt.Errorf("invalid repo element: %w", err))
		}

		repo, err := elem.toRepository()
		if err != nil {
			return nil, parseError(err)
		}

		if prev, exists := repos[repo.Name]; exists {
			logrus.Debugf("Repository name %q is shared by aliases %s and %s, keeping %s",
				repo.Name, prev.Alias, repo.Alias, repo.Alias)
		}
		repos[repo.Name] = repo
	}

	if !seenRoot {
		return nil, parseError(fmt.Errorf("empty repository XML"))
	}

	return repos, nil
}

func (e repoElement) toRepository() (models.Repository, error) {
	switch {
	case e.Alias == nil:
		return models.Repository{}, fmt.Errorf("repo element is missing the alias attribute")
	case e.Name == nil:
		return models.Repository{}, fmt.Errorf("repo %s is missing the name attribute", *e.Alias)
	case e.URL == nil:
		return models.Repository{}, fmt.Errorf("repo %s has no url element", *e.Alias)
	}

	url := strings.TrimSpace(*e.URL)
	if url == "" {
		return models.Repository{}, fmt.Errorf("repo %s has an empty url element", *e.Alias)
	}

	return models.Repository{
		Alias: *e.Alias,
		Name:  *e.Name,
		URL:   url,
	}, nil
}

// ResolveURL returns the URL of the named repository, or UnknownRepoURL
func ResolveURL(repos map[string]models.Repository, name string) string {
	if repo, ok := repos[name]; ok {
		return repo.URL
	}
	return models.UnknownRepoURL
}

func parseError(err error) error {
	return &models.InventoryError{Type: models.ErrParse, Err: err}
}
