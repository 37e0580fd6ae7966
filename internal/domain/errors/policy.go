package errors

import (
	"net/http"
)

// PolicyRule identifies a single password policy check
type PolicyRule string

const (
	PolicyRuleMinLength    PolicyRule = "MIN_LENGTH"
	PolicyRuleMaxLength    PolicyRule = "MAX_LENGTH"
	PolicyRuleUppercase    PolicyRule = "UPPERCASE"
	PolicyRuleLowercase    PolicyRule = "LOWERCASE"
	PolicyRuleDigit        PolicyRule = "DIGIT"
	PolicyRuleSymbol       PolicyRule = "SYMBOL"
	PolicyRuleEmailContent PolicyRule = "CONTAINS_EMAIL"
)

// PolicyViolationError reports the first password rule a candidate broke.
// The message is shown to the client as is.
type PolicyViolationError struct {
	rule    PolicyRule
	message string
}

// NewPolicyViolationError creates a policy violation for rule
func NewPolicyViolationError(rule PolicyRule, message string) *PolicyViolationError {
	return &PolicyViolationError{rule: rule, message: message}
}

func (e *PolicyViolationError) Error() string {
	return e.message
}

// Rule returns the violated rule
func (e *PolicyViolationError) Rule() PolicyRule {
	return e.rule
}

func (e *PolicyViolationError) HTTPCode() int {
	return http.StatusBadRequest
}

func (e *PolicyViolationError) ErrorCode() string {
	return "PASSWORD_POLICY_" + string(e.rule)
}

func (e *PolicyViolationError) Message() string {
	return e.message
}

func (e *PolicyViolationError) Details() string {
	return ""
}
