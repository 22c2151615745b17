package naming

import "fmt"

// Naming functions for cluster resources.
// All derived names follow consistent patterns to enable easy
// identification and cleanup.

func SSHKey(cluster string) string {
	return fmt.Sprintf("%s-key", cluster)
}

func PrivateKeyFile(cluster string) string {
	return fmt.Sprintf("%s_rsa", cluster)
}

func PublicKeyFile(cluster string) string {
	return fmt.Sprintf("%s_rsa.pub", cluster)
}

func StateObject(cluster string) string {
	return fmt.Sprintf("clusters/%s/state.yaml", cluster)
}

func StateFile(cluster string) string {
	return fmt.Sprintf("%s.state.yaml", cluster)
}
