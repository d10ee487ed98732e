// Package inventory reads and writes inventory files: JSON arrays of
// installed packages, optionally compressed according to the file name.
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ralt/rpminventory/internal/models"
	"github.com/ralt/rpminventory/internal/utils"
	"github.com/sirupsen/logrus"
)

// Encode serializes packages as two-space indented JSON.
// An empty inventory encodes as [] rather than null.
func Encode(packages []models.Package) ([]byte, error) {
	if packages == nil {
		packages = []models.Package{}
	}
	return json.MarshalIndent(packages, "", "  ")
}

// Decode parses an inventory JSON document
func Decode(data []byte) ([]models.Package, error) {
	var packages []models.Package
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// Write encodes packages to dir/fileName, replacing any existing file.
// It returns the path and the bytes written to disk.
func Write(dir, fileName string, packages []models.Package) (string, []byte, error) {
	path := filepath.Join(dir, fileName)

	data, err := Encode(packages)
	if err != nil {
		return "", nil, fileError(fmt.Errorf("failed to encode inventory: %w", err))
	}

	data, err = utils.Compress(data, fileName)
	if err != nil {
		return "", nil, fileError(fmt.Errorf("failed to compress inventory: %w", err))
	}

	if err := utils.WriteFile(path, data, 0644); err != nil {
		return "", nil, fileError(fmt.Errorf("failed to write %s: %w", path, err))
	}

	logrus.Infof("Wrote %d packages to %s (%s, sha256 %s)",
		len(packages), path, utils.CompressionFor(fileName), utils.SHA256Hex(data))

	return path, data, nil
}

// ReadFile returns the decompressed content of an inventory file
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(fmt.Errorf("failed to read %s: %w", path, err))
	}

	data, err = utils.Decompress(data, path)
	if err != nil {
		return nil, fileError(fmt.Errorf("failed to decompress %s: %w", path, err))
	}

	return data, nil
}

// Read loads an inventory file written by Write
func Read(path string) ([]models.Package, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	packages, err := Decode(data)
	if err != nil {
		return nil, fileError(fmt.Errorf("invalid inventory JSON in %s: %w", path, err))
	}

	return packages, nil
}

func fileError(err error) error {
	return &models.InventoryError{Type: models.ErrFileOp, Err: err}
}
