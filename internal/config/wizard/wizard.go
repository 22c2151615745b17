package wizard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/imamik/cbdctl/internal/config"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Cluster Identity
	ClusterName string
	Region      string

	// Distribution & Sizing
	StackID   string
	Flavor    string
	NodeCount int

	// Access
	LoginUser string

	// SSH key (optional - if empty, a key pair will be generated)
	PublicKeyFile string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runClusterIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("cluster identity: %w", err)
	}

	if err := runDistributionGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}

	if err := runAccessGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("access: %w", err)
	}

	return result, nil
}

// runClusterIdentityGroup prompts for cluster name and region.
func runClusterIdentityGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Name").
				Description("At most 50 characters").
				Placeholder("my-cluster").
				Value(&result.ClusterName).
				Validate(validateClusterName),
			huh.NewSelect[string]().
				Title("Region").
				Description("Cloud Big Data service region").
				Options(RegionsToOptions()...).
				Value(&result.Region),
		).Title("Cluster Identity"),
	).RunWithContext(ctx)
}

// runDistributionGroup prompts for stack, flavor, and node count.
func runDistributionGroup(ctx context.Context, result *WizardResult) error {
	nodeCountInput := strconv.Itoa(config.DefaultNodeCount)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Distribution Stack").
				Description("Determines the data platform installed on the cluster").
				Options(StacksToOptions()...).
				Value(&result.StackID),
			huh.NewSelect[string]().
				Title("Node Flavor").
				Description("Compute size class for worker nodes").
				Options(FlavorsToOptions()...).
				Value(&result.Flavor),
			huh.NewInput().
				Title("Worker Node Count").
				Description(fmt.Sprintf("Between %d and %d", config.MinNodeCount, config.MaxNodeCount)).
				Placeholder(strconv.Itoa(config.DefaultNodeCount)).
				Value(&nodeCountInput).
				Validate(validateNodeCount),
		).Title("Distribution & Sizing"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	count, err := strconv.Atoi(nodeCountInput)
	if err != nil {
		count = config.DefaultNodeCount
	}
	result.NodeCount = count
	return nil
}

// runAccessGroup prompts for the login user and optional public key file.
func runAccessGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Login").
				Description("User name for SSH access to cluster nodes").
				Placeholder("hadoop").
				Value(&result.LoginUser).
				Validate(validateLoginUser),
			huh.NewInput().
				Title("Public Key File (Optional)").
				Description("Path to an OpenSSH public key. Leave empty to auto-generate.").
				Placeholder("~/.ssh/id_rsa.pub (or leave empty)").
				Value(&result.PublicKeyFile),
		).Title("Access"),
	).RunWithContext(ctx)
}

func validateClusterName(name string) error {
	if name == "" {
		return errClusterNameRequired
	}
	if len(name) > config.MaxNameLength {
		return errClusterNameTooLong
	}
	return nil
}

func validateLoginUser(login string) error {
	if login == "" {
		return errLoginRequired
	}
	if len(login) > config.MaxLoginLength {
		return errLoginTooLong
	}
	return nil
}

func validateNodeCount(input string) error {
	if input == "" {
		return nil // default applies
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < config.MinNodeCount || n > config.MaxNodeCount {
		return errNodeCountInvalid
	}
	return nil
}
