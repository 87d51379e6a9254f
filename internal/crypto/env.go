package crypto

import (
	"errors"
	"fmt"
	"os"
)

// envKeyring reads the key from DEPOBILL_DB_KEY. It cannot store anything.
type envKeyring struct{}

func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", EnvKey)
	}
	return key, nil
}

func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return fmt.Errorf("no keyring available: export %s to supply the key", EnvKey)
}

func (k *envKeyring) DeleteKey() error {
	return errors.New("key comes from the environment: unset " + EnvKey + " manually")
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
