package signer

import (
	"fmt"

	"github.com/ralt/rpminventory/internal/models"
	"github.com/ralt/rpminventory/internal/utils"
	"github.com/sirupsen/logrus"
)

// Suffixes appended to an inventory path to name its signature and the
// public key that verifies it
const (
	SignatureSuffix = ".asc"
	PublicKeySuffix = ".pub"
)

// Signer interface for signing inventory files
type Signer interface {
	// SignDetached creates an armored detached signature
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key
	GetPublicKey() ([]byte, error)
}

// SignFile signs data, the content of the file at path, and writes the
// detached signature and the armored public key next to it. It returns the
// signature path.
func SignFile(s Signer, path string, data []byte) (string, error) {
	sig, err := s.SignDetached(data)
	if err != nil {
		return "", &models.InventoryError{Type: models.ErrSigning, Err: err}
	}

	pub, err := s.GetPublicKey()
	if err != nil {
		return "", &models.InventoryError{
			Type: models.ErrSigning,
			Err:  fmt.Errorf("failed to export public key: %w", err),
		}
	}

	sigPath := path + SignatureSuffix
	if err := writeFile(sigPath, sig); err != nil {
		return "", err
	}

	pubPath := path + PublicKeySuffix
	if err := writeFile(pubPath, pub); err != nil {
		return "", err
	}

	logrus.Infof("Signature written to: %s (public key: %s)", sigPath, pubPath)
	return sigPath, nil
}

func writeFile(path string, data []byte) error {
	if err := utils.WriteFile(path, data, 0644); err != nil {
		return &models.InventoryError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write %s: %w", path, err),
		}
	}
	return nil
}
