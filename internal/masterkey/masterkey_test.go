package masterkey

import (
	"bytes"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestGenerate(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(key) != KeySize {
		t.Fatalf("Expected %d-byte key, got %d bytes", KeySize, len(key))
	}

	other, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if bytes.Equal(key, other) {
		t.Error("Two generated keys should not be equal")
	}
}

func TestEncodeDecode(t *testing.T) {
	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	decoded := Decode(Encode(key))
	if !bytes.Equal(decoded, key) {
		t.Errorf("Decode(Encode(key)) = %x, want %x", decoded, key)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NotBase64", "not!!!base64"},
		{"WrongLength", "c2hvcnQ="}, // "short"
		{"Empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.input); got != nil {
				t.Errorf("Decode(%q) = %x, want nil", tt.input, got)
			}
		})
	}
}

func TestGet_NoKeyringNoEnv(t *testing.T) {
	// No keyring backend, no env var: absence must be a nil return,
	// never a panic or error.
	keyring.MockInitWithError(keyring.ErrNotFound)
	t.Setenv(EnvVar, "")

	if key := Get(); key != nil {
		t.Errorf("Expected nil key, got %x", key)
	}
	if src := Source(); src != "none" {
		t.Errorf("Expected source \"none\", got %q", src)
	}
}

func TestGet_EnvFallback(t *testing.T) {
	keyring.MockInitWithError(keyring.ErrNotFound)

	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	t.Setenv(EnvVar, Encode(key))

	got := Get()
	if !bytes.Equal(got, key) {
		t.Errorf("Get() = %x, want %x", got, key)
	}
	if src := Source(); src != "environment" {
		t.Errorf("Expected source \"environment\", got %q", src)
	}
}

func TestGet_KeyringBeatsEnv(t *testing.T) {
	keyring.MockInit()

	keyringKey, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	envKey, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if ok := StoreInKeyring(keyringKey); !ok {
		t.Fatal("StoreInKeyring failed against mock backend")
	}
	t.Setenv(EnvVar, Encode(envKey))

	got := Get()
	if !bytes.Equal(got, keyringKey) {
		t.Errorf("Get() should prefer the keyring key, got %x", got)
	}
	if src := Source(); src != "keyring" {
		t.Errorf("Expected source \"keyring\", got %q", src)
	}
}

func TestGet_MalformedEnvTreatedAsAbsent(t *testing.T) {
	keyring.MockInitWithError(keyring.ErrNotFound)
	t.Setenv(EnvVar, "not-a-valid-key")

	if key := Get(); key != nil {
		t.Errorf("Malformed env value should resolve to nil, got %x", key)
	}
}

func TestStoreInKeyring_NoBackend(t *testing.T) {
	keyring.MockInitWithError(keyring.ErrUnsupportedPlatform)

	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Must return false, not panic or error.
	if ok := StoreInKeyring(key); ok {
		t.Error("Expected StoreInKeyring to return false without a backend")
	}
}

func TestStoreInKeyring_RoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvVar, "")

	key, err := Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if ok := StoreInKeyring(key); !ok {
		t.Fatal("StoreInKeyring failed against mock backend")
	}

	got := Get()
	if !bytes.Equal(got, key) {
		t.Errorf("Get() = %x, want stored key %x", got, key)
	}
}
