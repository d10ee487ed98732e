package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ralt/rpminventory/internal/baseline"
	"github.com/ralt/rpminventory/internal/inventory"
	"github.com/ralt/rpminventory/internal/models"
	"github.com/ralt/rpminventory/internal/signer"
	"github.com/ralt/rpminventory/internal/utils"
	"github.com/ralt/rpminventory/internal/zypper"
	"github.com/sirupsen/logrus"
)

func validateConfig(config *models.InventoryConfig) error {
	if !utils.IsDir(config.OutputDir) {
		return &models.InventoryError{
			Type: models.ErrInvalidArgs,
			Err:  fmt.Errorf("readable_dir:%s is not a valid path", config.OutputDir),
		}
	}

	// file_name may name a subdirectory of path, but it must already exist
	outputPath := filepath.Join(config.OutputDir, config.FileName)
	if config.FileName == "" || !utils.IsDir(filepath.Dir(outputPath)) || utils.IsDir(outputPath) {
		return &models.InventoryError{
			Type: models.ErrInvalidArgs,
			Err:  fmt.Errorf("file_name %q does not name a file in an existing directory", config.FileName),
		}
	}

	if config.BaseFile != "" && !utils.IsRegularFile(config.BaseFile) {
		return &models.InventoryError{
			Type: models.ErrInvalidArgs,
			Err:  fmt.Errorf("readable_file:%s is not a valid file path", config.BaseFile),
		}
	}

	if config.SignKeyPath != "" && !utils.IsRegularFile(config.SignKeyPath) {
		return &models.InventoryError{
			Type: models.ErrInvalidArgs,
			Err:  fmt.Errorf("sign-key %s is not a valid file path", config.SignKeyPath),
		}
	}

	return nil
}

func runInventory(ctx context.Context, client *zypper.Client, config *models.InventoryConfig) error {
	// Load the signing key up front so a bad key fails before zypper runs
	var gpgSigner signer.Signer
	if config.SignKeyPath != "" {
		s, err := signer.NewGPGSigner(config.SignKeyPath, config.SignPassphrase)
		if err != nil {
			return &models.InventoryError{
				Type: models.ErrSigning,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		gpgSigner = s
		logrus.Info("GPG signer initialized")
	}

	// Step 1: Resolve repositories
	repos, err := client.Repositories(ctx)
	if err != nil {
		return err
	}

	// Step 2: Enumerate installed packages
	packages, err := client.InstalledPackages(ctx, repos)
	if err != nil {
		return err
	}

	// Step 3: Subtract the baseline
	if config.BaseFile != "" {
		logrus.Infof("Removing packages already in %s", config.BaseFile)
		base, err := baseline.Load(config.BaseFile)
		if err != nil {
			return err
		}

		packages = baseline.Subtract(packages, base)
		for _, change := range baseline.VersionChanges(packages, base) {
			logrus.Infof("%s %s: %s -> %s", change.Name, change.Direction, change.From, change.To)
		}
	}

	// Step 4: Write the inventory
	path, data, err := inventory.Write(config.OutputDir, config.FileName, packages)
	if err != nil {
		return err
	}

	if gpgSigner != nil {
		if _, err := signer.SignFile(gpgSigner, path, data); err != nil {
			return err
		}
	}

	logrus.Infof("rpm inventory generation complete and written to %s", path)
	return nil
}
