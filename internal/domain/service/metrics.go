package service

// VerifyOutcome labels the result of one verify-login call
type VerifyOutcome string

const (
	VerifyOutcomeNormal        VerifyOutcome = "normal"
	VerifyOutcomeRequiresReset VerifyOutcome = "requires_reset"
	VerifyOutcomeExpired       VerifyOutcome = "expired"
	VerifyOutcomeInvalid       VerifyOutcome = "invalid"
	VerifyOutcomeError         VerifyOutcome = "error"
)

// ResetOutcome labels the result of one complete-password-reset call
type ResetOutcome string

const (
	ResetOutcomeSuccess         ResetOutcome = "success"
	ResetOutcomePolicyViolation ResetOutcome = "policy_violation"
	ResetOutcomeError           ResetOutcome = "error"
)

// LoginMetrics records flow outcomes.
type LoginMetrics interface {
	ObserveVerify(outcome VerifyOutcome)
	ObserveReset(outcome ResetOutcome)
	ObserveIssued()
}
