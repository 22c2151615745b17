// Package keygen generates RSA key pairs for cluster login credentials.
//
// Keys are produced in PEM format (private) and OpenSSH authorized_keys
// format (public), suitable for registering with the Cloud Big Data
// control plane as cluster SSH keys.
package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// DefaultBits is the key size init uses when generating a key pair.
const DefaultBits = 2048

// KeyPair holds a generated private key (PEM) and its public key
// (OpenSSH authorized_keys line).
type KeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
}

// GenerateRSAKeyPair generates a new RSA key pair of the given size.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, err
	}

	if err := privateKey.Validate(); err != nil {
		return nil, err
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	publicKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  ssh.MarshalAuthorizedKey(publicKey),
	}, nil
}

// PublicKeyString returns the public key as a single authorized_keys
// line without the trailing newline.
func (k *KeyPair) PublicKeyString() string {
	return strings.TrimSpace(string(k.PublicKey))
}

// Fingerprint returns the SHA256 fingerprint of the public key.
func (k *KeyPair) Fingerprint() (string, error) {
	pub, _, _, _, err := ssh.ParseAuthorizedKey(k.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}
	return ssh.FingerprintSHA256(pub), nil
}

// WriteFiles persists the key pair to disk. The private key is written
// with owner-only permissions.
func (k *KeyPair) WriteFiles(privatePath, publicPath string) error {
	if err := os.WriteFile(privatePath, k.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(publicPath, k.PublicKey, 0o644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}
