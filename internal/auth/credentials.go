// Package auth performs the per-site sign-in handshake and holds the
// per-process login state.
package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Credentials is a stored email/password pair.
type Credentials struct {
	Email    string
	Password string
}

// CredentialSource looks up stored credentials by namespace.
// A nil result with a nil error means no credentials are stored and the
// site should be accessed anonymously.
type CredentialSource interface {
	Lookup(namespace string) (*Credentials, error)
}

// KeyringSource reads credentials from the system keyring. Each
// namespace is stored as two entries: "<ns>.email" and "<ns>.password".
type KeyringSource struct {
	Service string // keyring service name, e.g., "teachgrab"
}

// Lookup implements CredentialSource.
func (k KeyringSource) Lookup(namespace string) (*Credentials, error) {
	email, err := keyring.Get(k.Service, namespace+".email")
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("keyring lookup for %q: %w", namespace, err)
	}

	password, err := keyring.Get(k.Service, namespace+".password")
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("keyring lookup for %q: %w", namespace, err)
	}

	return &Credentials{Email: email, Password: password}, nil
}

// Store writes a credential pair to the keyring.
func (k KeyringSource) Store(namespace string, c Credentials) error {
	if err := keyring.Set(k.Service, namespace+".email", c.Email); err != nil {
		return fmt.Errorf("storing email for %q: %w", namespace, err)
	}
	if err := keyring.Set(k.Service, namespace+".password", c.Password); err != nil {
		return fmt.Errorf("storing password for %q: %w", namespace, err)
	}
	return nil
}

// Delete removes a namespace's credentials from the keyring.
func (k KeyringSource) Delete(namespace string) error {
	if err := keyring.Delete(k.Service, namespace+".email"); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting email for %q: %w", namespace, err)
	}
	if err := keyring.Delete(k.Service, namespace+".password"); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting password for %q: %w", namespace, err)
	}
	return nil
}

// StaticSource serves credentials from an in-memory map, used for the
// config-file [credentials] table and in tests.
type StaticSource map[string]Credentials

// Lookup implements CredentialSource.
func (s StaticSource) Lookup(namespace string) (*Credentials, error) {
	c, ok := s[namespace]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Sources tries each source in order and returns the first hit.
type Sources []CredentialSource

// Lookup implements CredentialSource.
func (s Sources) Lookup(namespace string) (*Credentials, error) {
	for _, src := range s {
		c, err := src.Lookup(namespace)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return c, nil
		}
	}
	return nil, nil
}
