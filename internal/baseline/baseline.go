package baseline

import (
	"encoding/json"
	"fmt"

	"github.com/ralt/rpminventory/internal/inventory"
	"github.com/ralt/rpminventory/internal/models"
	"github.com/ralt/rpminventory/internal/utils"
	"github.com/sassoftware/go-rpmutils"
	"github.com/sirupsen/logrus"
)

// Direction describes how a package version moved relative to the baseline
type Direction string

const (
	Upgraded   Direction = "upgraded"
	Downgraded Direction = "downgraded"
	Changed    Direction = "changed"
)

// Change records a package present in the baseline under another version
type Change struct {
	Name      string
	From      string
	To        string
	Direction Direction
}

// Load reads a baseline inventory. Only the name and version of each entry
// are consulted, and every entry must carry both as strings under exactly
// those keys.
func Load(path string) ([]models.Package, error) {
	data, err := inventory.ReadFile(path)
	if err != nil {
		return nil, err
	}

	base, err := decodeEntries(data)
	if err != nil {
		return nil, &models.InventoryError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("invalid baseline %s: %w", path, err),
		}
	}

	logrus.Debugf("Loaded %d baseline packages from %s", len(base), path)
	return base, nil
}

// decodeEntries parses the baseline by exact key. encoding/json folds key
// case when decoding into structs, so entries are read as raw maps.
func decodeEntries(data []byte) ([]models.Package, error) {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	base := make([]models.Package, 0, len(entries))
	for i, entry := range entries {
		name, err := stringField(entry, "name")
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		version, err := stringField(entry, "version")
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		base = append(base, models.Package{Name: name, Version: version})
	}

	return base, nil
}

func stringField(entry map[string]json.RawMessage, key string) (string, error) {
	raw, ok := entry[key]
	if !ok || string(raw) == "null" {
		return "", fmt.Errorf("missing %q", key)
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%q is not a string", key)
	}
	return value, nil
}

// Subtract returns the packages that have no entry in base with the same name
// and version. Relative order is preserved.
func Subtract(packages, base []models.Package) []models.Package {
	known := utils.IdentitySet(base)

	retained := make([]models.Package, 0, len(packages))
	for _, pkg := range packages {
		if known[utils.PackageIdentity(pkg)] {
			continue
		}
		retained = append(retained, pkg)
	}

	logrus.Infof("Removed %d baseline packages, %d remaining", len(packages)-len(retained), len(retained))
	return retained
}

// VersionChanges lists packages whose name appears in base with a different
// version, ordered as in packages. A name listed several times in base is
// compared against its last entry.
func VersionChanges(packages, base []models.Package) []Change {
	versions := make(map[string]string, len(base))
	for _, pkg := range base {
		versions[pkg.Name] = pkg.Version
	}

	var changes []Change
	for _, pkg := range packages {
		from, ok := versions[pkg.Name]
		if !ok || from == pkg.Version {
			continue
		}

		direction := Changed
		switch rpmutils.Vercmp(pkg.Version, from) {
		case 1:
			direction = Upgraded
		case -1:
			direction = Downgraded
		}

		changes = append(changes, Change{
			Name:      pkg.Name,
			From:      from,
			To:        pkg.Version,
			Direction: direction,
		})
	}

	return changes
}
