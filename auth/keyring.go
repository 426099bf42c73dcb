// Package auth persists the Cookie API key in the system keyring.
package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "cookie-cli"
	user    = "api-key"
)

// ErrNoAPIKey is returned by GetAPIKey when no key is stored.
var ErrNoAPIKey = errors.New("no API key stored in keyring")

// SetAPIKey persists the Cookie API key to the system keyring.
func SetAPIKey(key string) error {
	if key == "" {
		return fmt.Errorf("refusing to store an empty API key")
	}
	return keyring.Set(service, user, key)
}

// GetAPIKey retrieves the Cookie API key from the system keyring.
func GetAPIKey() (string, error) {
	key, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoAPIKey
	}
	return key, err
}

// DeleteAPIKey removes the Cookie API key from the system keyring. Deleting
// a key that is not stored is not an error.
func DeleteAPIKey() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
