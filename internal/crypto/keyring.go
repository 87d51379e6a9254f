package crypto

import "errors"

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "depobill"
	KeyName     = "db-encryption-key"

	// EnvKey overrides any OS keyring when set
	EnvKey = "DEPOBILL_DB_KEY"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// NewKeyring returns the environment keyring when DEPOBILL_DB_KEY is set,
// and the OS keyring otherwise.
func NewKeyring() Keyring {
	env := &envKeyring{}
	if env.IsAvailable() {
		return env
	}
	return &systemKeyring{}
}
