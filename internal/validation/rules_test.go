package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDID(t *testing.T) {
	assert.NoError(t, DID.Validate("did:bio:0195a0b2-7c1e-7bb0-b1a5-333333333333"))
	assert.NoError(t, DID.Validate("did:key:z6Mk"))
	assert.Error(t, DID.Validate("not-a-did"))
	assert.Error(t, DID.Validate("did:bio:"))
	assert.Error(t, DID.Validate("did::abc"))
}

func TestAction(t *testing.T) {
	for _, valid := range []string{"read", "write", "delegate", "revoke"} {
		assert.NoError(t, Action.Validate(valid))
	}
	assert.Error(t, Action.Validate("admin"))
	assert.Error(t, Action.Validate(""))
}

func TestHexID(t *testing.T) {
	assert.NoError(t, HexID.Validate("a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90"))
	assert.Error(t, HexID.Validate("short"))
	assert.Error(t, HexID.Validate("A1B2C3D4E5F60718293A4B5C6D7E8F90A1B2C3D4E5F60718293A4B5C6D7E8F90"))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("x"))
	assert.Error(t, NotBlank.Validate("   "))
}

func TestBase64(t *testing.T) {
	assert.NoError(t, Base64.Validate("aGVsbG8="))
	assert.NoError(t, Base64.Validate(""))
	assert.Error(t, Base64.Validate("!!not base64!!"))
}

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	assert.NoError(t, rule.Validate("Str0ng!pass"))
	assert.Error(t, rule.Validate("short1!"))
	assert.Error(t, rule.Validate("alllower1!"))
	assert.Error(t, rule.Validate("NoNumbers!"))
	assert.Error(t, rule.Validate("NoSpecial1"))
}
