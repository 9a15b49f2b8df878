// Package keyring stores secrets in the OS keyring: the PostgreSQL
// connection string and the reasoning service API key. Secrets never
// live in config files or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/lifely/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the key.
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value string) error {
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the database connection string.
func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser)
}

// GetReasoningAPIKey retrieves the reasoning service API key.
func GetReasoningAPIKey() (string, error) {
	return get(constants.ReasoningKeyringUser)
}

// SetReasoningAPIKey stores the reasoning service API key.
func SetReasoningAPIKey(key string) error {
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	return set(constants.ReasoningKeyringUser, key)
}

// DeleteReasoningAPIKey removes the reasoning service API key.
func DeleteReasoningAPIKey() error {
	return del(constants.ReasoningKeyringUser)
}

// IsAvailable reports whether the OS keyring responds at all. Best
// effort; a missing test entry still proves the keyring is reachable.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
