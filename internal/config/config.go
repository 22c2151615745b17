package config

// Limits imposed by the Cloud Big Data control plane on cluster
// properties.
const (
	MaxNameLength      = 50
	MaxLoginLength     = 50
	MaxKeyNameLength   = 50
	MaxPublicKeyLength = 1000

	MinNodeCount     = 1
	MaxNodeCount     = 10
	DefaultNodeCount = 3
)

// Config holds the desired state of one managed cluster.
type Config struct {
	ClusterName string `yaml:"cluster_name"`
	Region      string `yaml:"region"`
	StackID     string `yaml:"stack_id"`
	Flavor      string `yaml:"flavor"`
	NodeCount   int    `yaml:"node_count"`
	LoginUser   string `yaml:"login_user"`

	// SSHKeyName names the provider-side credential. Defaults to
	// "<cluster_name>-key" when empty.
	SSHKeyName string `yaml:"ssh_key_name,omitempty"`

	// PublicKey is the OpenSSH-format public key registered with the
	// provider. PublicKeyFile points at a file to read it from
	// instead; exactly one of the two may be set.
	PublicKey     string `yaml:"public_key,omitempty"`
	PublicKeyFile string `yaml:"public_key_file,omitempty"`

	State StateConfig `yaml:"state,omitempty"`
}

// StateConfig selects where cluster state is persisted between CLI runs.
type StateConfig struct {
	// Backend is "local" (default) or "s3".
	Backend string `yaml:"backend,omitempty"`

	// Path is the local state file. Defaults to
	// "<cluster_name>.state.yaml" next to the config file.
	Path string `yaml:"path,omitempty"`

	S3 S3Config `yaml:"s3,omitempty"`
}

// S3Config holds the object-store settings for the s3 state backend.
// Credentials come from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY
// when AccessKey and SecretKey are empty.
type S3Config struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	Region    string `yaml:"region,omitempty"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
}

// Backend names for StateConfig.Backend.
const (
	StateBackendLocal = "local"
	StateBackendS3    = "s3"
)
