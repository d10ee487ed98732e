package cli

import (
	"github.com/ralt/rpminventory/internal/models"
	"github.com/ralt/rpminventory/internal/zypper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(zypper.NewExecRunner())
}

func newRootCmd(runner zypper.Runner) *cobra.Command {
	var config models.InventoryConfig

	rootCmd := &cobra.Command{
		Use:   "rpminventory",
		Short: "Generate an inventory of installed RPM packages",
		Long: `Rpminventory asks zypper for the configured repositories and the
installed packages, records where each package came from and writes
the result as a JSON inventory.

When a baseline inventory is given, packages already present in it
with the same name and version are left out, so the output only lists
what was added since the baseline was taken.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate configuration
			if err := validateConfig(&config); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			logrus.Info("Generating rpm inventory.")
			logrus.Debugf("Configuration: %+v", config)

			return runInventory(cmd.Context(), zypper.NewClient(runner), &config)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Output flags
	rootCmd.Flags().StringVarP(&config.OutputDir, "path", "p", "", "Path to the directory where the inventory should be saved")
	rootCmd.Flags().StringVarP(&config.FileName, "file_name", "f", "inventory.json", "Filename for the inventory (.gz, .xz and .zst are compressed)")
	rootCmd.Flags().StringVarP(&config.BaseFile, "base", "b", "", "Baseline inventory whose packages are removed from the output")
	_ = rootCmd.MarkFlagRequired("path")

	// Signing flags
	rootCmd.Flags().StringVar(&config.SignKeyPath, "sign-key", "", "Path to a GPG private key used to sign the inventory")
	rootCmd.Flags().StringVar(&config.SignPassphrase, "sign-passphrase", "", "GPG key passphrase")

	return rootCmd
}
