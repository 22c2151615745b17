package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/cbdctl/internal/config"
	"github.com/imamik/cbdctl/internal/config/wizard"
	"github.com/imamik/cbdctl/internal/keygen"
	"github.com/imamik/cbdctl/internal/util/naming"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.RunWizard

	// writeConfigFile writes the config to a file.
	writeConfigFile = wizard.WriteConfig

	// generateKeyPair creates a fresh RSA key pair.
	generateKeyPair = keygen.GenerateRSAKeyPair
)

// Init runs the configuration wizard and writes the result to a file.
// When the wizard is left without a public key file, a fresh RSA key
// pair is generated next to the config and the config points at its
// public half.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)

	keyInfo := ""
	if result.PublicKeyFile == "" {
		keyInfo, err = generateKeyFiles(cfg)
		if err != nil {
			return err
		}
	}

	if err := writeConfigFile(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg, keyInfo)

	return nil
}

// generateKeyFiles creates a key pair next to the config file and
// points the config at the public half.
func generateKeyFiles(cfg *config.Config) (string, error) {
	keyPair, err := generateKeyPair(keygen.DefaultBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate key pair: %w", err)
	}

	privPath := naming.PrivateKeyFile(cfg.ClusterName)
	pubPath := naming.PublicKeyFile(cfg.ClusterName)
	if err := keyPair.WriteFiles(privPath, pubPath); err != nil {
		return "", err
	}

	cfg.PublicKeyFile = pubPath

	fingerprint, err := keyPair.Fingerprint()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s (%s)", privPath, fingerprint), nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("cbdctl - Cloud Big Data clusters")
	fmt.Println("================================")
	fmt.Println()
	fmt.Println("This wizard creates a cluster configuration with sensible defaults.")
	fmt.Println("Just answer a few questions.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config, keyInfo string) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	if keyInfo != "" {
		fmt.Printf("  Key:  %s\n", keyInfo)
	}
	fmt.Println()

	// Summary
	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:    %s\n", cfg.ClusterName)
	fmt.Printf("  Region:  %s\n", cfg.Region)
	fmt.Printf("  Stack:   %s\n", cfg.StackID)
	fmt.Printf("  Workers: %d x %s\n", cfg.NodeCount, cfg.Flavor)
	fmt.Printf("  Login:   %s\n", cfg.LoginUser)
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set your control plane credentials:")
	fmt.Println("     export CBD_TENANT_ID=<your-tenant>")
	fmt.Println("     export CBD_USERNAME=<your-username>")
	fmt.Println("     export CBD_API_KEY=<your-api-key>")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Create your cluster:")
	fmt.Println("     cbdctl apply")
	fmt.Println()
}
