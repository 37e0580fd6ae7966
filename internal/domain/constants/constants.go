package constants

const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub provider names accepted in pubsub.provider
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Identity provider names accepted in identity.provider
const (
	IdentityProviderLocal    = "local"
	IdentityProviderFirebase = "firebase"
)

// Temporary password hash formats
const (
	HashAlgorithmBcrypt = "bcrypt"
	HashAlgorithmSHA256 = "sha256"
)
