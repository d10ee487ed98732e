package models

// Repository is a software source configured in zypper
type Repository struct {
	Alias string
	Name  string
	URL   string
}

// InventoryConfig contains configuration for inventory generation
type InventoryConfig struct {
	// Output
	OutputDir string
	FileName  string

	// Baseline inventory to subtract, empty when not set
	BaseFile string

	// Signing
	SignKeyPath    string
	SignPassphrase string
}
