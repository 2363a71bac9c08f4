package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Classify tags err with one of the taxonomy sentinels (ErrConfiguration, ErrIO,
// ErrSymbolCollision) so callers can branch on it with errors.Is.
func Classify(kind, err error) error {
	if err == nil || errors.Is(err, kind) {
		return err
	}
	return errors.Join(kind, err)
}

// WithMeta attaches metadata to err while keeping it matchable with errors.Is.
// zerr.With copies a *zerr.Error, so a bare sentinel would lose its identity.
func WithMeta(err error, key string, value any) error {
	return zerr.With(zerr.Wrap(err, ""), key, value)
}
