// Package policy holds pure validation rules applied before any credential mutation.
package policy

import (
	"fmt"
	"strings"
	"unicode/utf8"

	domainerrors "loginflow/internal/domain/errors"
)

// DefaultMinLength is used when no minimum is configured.
const DefaultMinLength = 8

// Symbols is the fixed set that satisfies the symbol rule.
const Symbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?`~"

// PasswordPolicy validates new passwords. Character classes are ASCII only.
type PasswordPolicy struct {
	minLength int
	maxBytes  int // zero means unbounded
}

// NewPasswordPolicy returns a policy requiring at least minLength characters.
func NewPasswordPolicy(minLength int) *PasswordPolicy {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}

	return &PasswordPolicy{minLength: minLength}
}

// MinLength returns the configured minimum length.
func (p *PasswordPolicy) MinLength() int {
	return p.minLength
}

// WithMaxBytes returns a copy of the policy that also rejects passwords longer than n bytes.
// Credential stores that cannot hash longer input set this so such passwords fail as a policy
// violation instead of at the store.
func (p *PasswordPolicy) WithMaxBytes(n int) *PasswordPolicy {
	limited := *p
	limited.maxBytes = n

	return &limited
}

// MaxBytes returns the byte limit, or zero when unbounded.
func (p *PasswordPolicy) MaxBytes() int {
	return p.maxBytes
}

// Validate returns a *PolicyViolationError for the first rule the password breaks, or nil.
func (p *PasswordPolicy) Validate(password, email string) error {
	if utf8.RuneCountInString(password) < p.minLength {
		return domainerrors.NewPolicyViolationError(
			domainerrors.PolicyRuleMinLength,
			fmt.Sprintf("Password must be at least %d characters long", p.minLength),
		)
	}

	if p.maxBytes > 0 && len(password) > p.maxBytes {
		return domainerrors.NewPolicyViolationError(
			domainerrors.PolicyRuleMaxLength,
			fmt.Sprintf("Password must be at most %d bytes long", p.maxBytes),
		)
	}

	if !containsAny(password, isASCIIUpper) {
		return domainerrors.NewPolicyViolationError(
			domainerrors.PolicyRuleUppercase,
			"Password must contain at least one uppercase letter",
		)
	}

	if !containsAny(password, isASCIILower) {
		return domainerrors.NewPolicyViolationError(
			domainerrors.PolicyRuleLowercase,
			"Password must contain at least one lowercase letter",
		)
	}

	if !containsAny(password, isASCIIDigit) {
		return domainerrors.NewPolicyViolationError(
			domainerrors.PolicyRuleDigit,
			"Password must contain at least one number",
		)
	}

	if !strings.ContainsAny(password, Symbols) {
		return domainerrors.NewPolicyViolationError(
			domainerrors.PolicyRuleSymbol,
			"Password must contain at least one special character",
		)
	}

	if local := emailLocalPart(email); local != "" && strings.Contains(strings.ToLower(password), local) {
		return domainerrors.NewPolicyViolationError(
			domainerrors.PolicyRuleEmailContent,
			"Password must not contain your email address",
		)
	}

	return nil
}

func containsAny(s string, match func(r rune) bool) bool {
	for _, r := range s {
		if match(r) {
			return true
		}
	}

	return false
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// emailLocalPart returns the lower-cased text before the first '@'.
func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")

	return strings.ToLower(strings.TrimSpace(local))
}
