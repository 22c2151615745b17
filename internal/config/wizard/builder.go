package wizard

import (
	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/util/naming"
)

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		ClusterName: result.ClusterName,
		Region:      result.Region,
		StackID:     result.StackID,
		Flavor:      result.Flavor,
		NodeCount:   result.NodeCount,
		LoginUser:   result.LoginUser,
		SSHKeyName:  naming.SSHKey(result.ClusterName),
	}

	if cfg.NodeCount == 0 {
		cfg.NodeCount = config.DefaultNodeCount
	}

	// Only set the key file if provided (empty means a key pair is
	// generated during init)
	if result.PublicKeyFile != "" {
		cfg.PublicKeyFile = result.PublicKeyFile
	}

	return cfg
}
