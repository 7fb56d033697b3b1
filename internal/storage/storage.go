package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable reports that the backing storage cannot be used at all.
var ErrUnavailable = errors.New("storage unavailable")

// Storage is a string key/value store local to this machine.
type Storage interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverNone   = "none"
)

// Open returns the backend named by driver rooted at path. An empty driver
// selects the file backend.
func Open(driver, path string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverFile:
		return OpenFile(path)
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	case DriverNone:
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// Disabled rejects every operation with ErrUnavailable.
type Disabled struct{}

func (Disabled) Get(context.Context, string) (string, bool, error) { return "", false, ErrUnavailable }
func (Disabled) Set(context.Context, string, string) error         { return ErrUnavailable }
func (Disabled) Remove(context.Context, string) error              { return ErrUnavailable }
func (Disabled) Close() error                                      { return nil }
