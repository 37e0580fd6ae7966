package policy

import (
	"strings"
	"testing"

	domainerrors "loginflow/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordPolicy_Validate(t *testing.T) {
	p := NewPasswordPolicy(DefaultMinLength)

	tests := []struct {
		name     string
		password string
		email    string
		wantRule domainerrors.PolicyRule
	}{
		{name: "valid password", password: "Ab3!defg", email: "user@x.com"},
		{name: "overlapping characters but no local part", password: "Ab3!defg", email: "ab3defg@x.com"},
		{name: "too short", password: "Ab3!def", email: "user@x.com", wantRule: domainerrors.PolicyRuleMinLength},
		{name: "no uppercase", password: "password", email: "user@x.com", wantRule: domainerrors.PolicyRuleUppercase},
		{name: "no lowercase", password: "PASSWORD1!", email: "user@x.com", wantRule: domainerrors.PolicyRuleLowercase},
		{name: "no digit", password: "Password!", email: "user@x.com", wantRule: domainerrors.PolicyRuleDigit},
		{name: "no symbol", password: "Password1", email: "user@x.com", wantRule: domainerrors.PolicyRuleSymbol},
		{name: "contains email local part", password: "Password1!", email: "password@x.com", wantRule: domainerrors.PolicyRuleEmailContent},
		{name: "local part match ignores case", password: "xxJOHNxx1!", email: "John@x.com", wantRule: domainerrors.PolicyRuleEmailContent},
		{name: "empty local part is skipped", password: "Ab3!defg", email: "@x.com"},
		{name: "non-ASCII uppercase does not count", password: "ÄbcdefG1!", email: "user@x.com"},
		{name: "only non-ASCII uppercase", password: "Äbcdefg1!", email: "user@x.com", wantRule: domainerrors.PolicyRuleUppercase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Validate(tt.password, tt.email)
			if tt.wantRule == "" {
				assert.NoError(t, err)

				return
			}

			var violation *domainerrors.PolicyViolationError
			require.ErrorAs(t, err, &violation)
			assert.Equal(t, tt.wantRule, violation.Rule())
			assert.Equal(t, "PASSWORD_POLICY_"+string(tt.wantRule), violation.ErrorCode())
		})
	}
}

func TestPasswordPolicy_FirstFailureWins(t *testing.T) {
	p := NewPasswordPolicy(DefaultMinLength)

	// Short, lowercase only, and contains the local part; length is reported.
	err := p.Validate("user", "user@x.com")

	var violation *domainerrors.PolicyViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, domainerrors.PolicyRuleMinLength, violation.Rule())
	assert.Equal(t, "Password must be at least 8 characters long", violation.Message())
}

func TestPasswordPolicy_ConfiguredMinLength(t *testing.T) {
	p := NewPasswordPolicy(12)
	assert.Equal(t, 12, p.MinLength())

	assert.Error(t, p.Validate("Ab3!defgh", "user@x.com"))
	assert.NoError(t, p.Validate("Ab3!defghijk", "user@x.com"))

	assert.Equal(t, DefaultMinLength, NewPasswordPolicy(0).MinLength())
}

func TestPasswordPolicy_IsDeterministic(t *testing.T) {
	p := NewPasswordPolicy(DefaultMinLength)

	for range 3 {
		assert.NoError(t, p.Validate("Ab3!defg", "user@x.com"))
		assert.Error(t, p.Validate("password", "user@x.com"))
	}
}

func TestPasswordPolicy_MaxBytes(t *testing.T) {
	unbounded := NewPasswordPolicy(DefaultMinLength)
	limited := unbounded.WithMaxBytes(72)
	long := "Ab3!" + strings.Repeat("x", 76)

	assert.Zero(t, unbounded.MaxBytes())
	assert.Equal(t, 72, limited.MaxBytes())
	assert.NoError(t, unbounded.Validate(long, "user@x.com"))
	assert.NoError(t, limited.Validate(long[:72], "user@x.com"))

	var violation *domainerrors.PolicyViolationError
	require.ErrorAs(t, limited.Validate(long, "user@x.com"), &violation)
	assert.Equal(t, domainerrors.PolicyRuleMaxLength, violation.Rule())
	assert.Equal(t, "Password must be at most 72 bytes long", violation.Message())

	// Multi-byte characters count by their encoded size.
	require.ErrorAs(t, limited.Validate("Ab3!"+strings.Repeat("é", 35), "user@x.com"), &violation)
	assert.Equal(t, domainerrors.PolicyRuleMaxLength, violation.Rule())
}
