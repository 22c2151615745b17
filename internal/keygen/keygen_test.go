package keygen

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

func TestGenerateRSAKeyPair(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	if len(keyPair.PrivateKey) == 0 {
		t.Error("expected non-empty private key")
	}
	if len(keyPair.PublicKey) == 0 {
		t.Error("expected non-empty public key")
	}
}

func TestGenerateRSAKeyPair_InvalidBits(t *testing.T) {
	t.Parallel()
	if _, err := GenerateRSAKeyPair(0); err == nil {
		t.Error("GenerateRSAKeyPair(0) should have failed")
	}
}

func TestKeyPair_PrivateKeyPEMFormat(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	block, rest := pem.Decode(keyPair.PrivateKey)
	if block == nil {
		t.Fatal("failed to decode PEM block")
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		t.Error("unexpected data after PEM block")
	}
	if block.Type != "RSA PRIVATE KEY" {
		t.Errorf("expected PEM type 'RSA PRIVATE KEY', got %q", block.Type)
	}

	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
		t.Errorf("failed to parse PKCS1 private key: %v", err)
	}
}

func TestKeyPair_PublicKeySSHFormat(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	if !strings.HasPrefix(string(keyPair.PublicKey), "ssh-rsa ") {
		t.Error("public key should start with 'ssh-rsa '")
	}
	if _, _, _, _, err := ssh.ParseAuthorizedKey(keyPair.PublicKey); err != nil {
		t.Errorf("failed to parse public key as authorized key: %v", err)
	}
}

func TestKeyPair_PublicKeyString(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	s := keyPair.PublicKeyString()
	if strings.HasSuffix(s, "\n") {
		t.Error("PublicKeyString should not carry a trailing newline")
	}
	if !strings.HasPrefix(s, "ssh-rsa ") {
		t.Error("PublicKeyString should start with 'ssh-rsa '")
	}
}

func TestKeyPair_Fingerprint(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	fp, err := keyPair.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	if !strings.HasPrefix(fp, "SHA256:") {
		t.Errorf("expected SHA256 fingerprint, got %q", fp)
	}
}

func TestKeyPair_WriteFiles(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		t.Fatalf("GenerateRSAKeyPair failed: %v", err)
	}

	dir := t.TempDir()
	privPath := filepath.Join(dir, "analytics_rsa")
	pubPath := filepath.Join(dir, "analytics_rsa.pub")

	if err := keyPair.WriteFiles(privPath, pubPath); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}

	info, err := os.Stat(privPath)
	if err != nil {
		t.Fatalf("private key not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("private key mode = %v, want 0600", info.Mode().Perm())
	}

	pub, err := os.ReadFile(pubPath)
	if err != nil {
		t.Fatalf("public key not written: %v", err)
	}
	if !bytes.Equal(pub, keyPair.PublicKey) {
		t.Error("written public key differs from generated key")
	}
}

func TestGenerateRSAKeyPair_Uniqueness(t *testing.T) {
	t.Parallel()
	kp1, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		t.Fatalf("first GenerateRSAKeyPair failed: %v", err)
	}
	kp2, err := GenerateRSAKeyPair(DefaultBits)
	if err != nil {
		t.Fatalf("second GenerateRSAKeyPair failed: %v", err)
	}

	if bytes.Equal(kp1.PrivateKey, kp2.PrivateKey) {
		t.Error("two generated key pairs should differ")
	}
}
