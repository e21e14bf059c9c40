package auth

import "golang.org/x/crypto/bcrypt"

// Config holds auth settings loaded from the environment.
type Config struct {
	// GenericCredentialErrors hides whether a failed sign-in hit an unknown
	// email or a wrong password.
	GenericCredentialErrors bool `env:"AUTH_GENERIC_CREDENTIAL_ERRORS" envDefault:"false"`
	BcryptCost              int  `env:"AUTH_BCRYPT_COST" envDefault:"10"`
}

func (c Config) cost() int {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return c.BcryptCost
}
