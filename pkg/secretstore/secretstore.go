package secretstore

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/betbot/polytrade/clob/types"
)

// Store keeps signing material and API credentials encrypted at rest.
// Encryption comes from Badger options (value log + key registry), not from
// this wrapper.
type Store struct {
	db *badger.DB
}

const (
	keyPrivateKey   = "wallet/private-key"
	keyAPICreds     = "clob/api-credentials"
	keyBuilderCreds = "clob/builder-credentials"
)

type OpenOptions struct {
	Path          string
	EncryptionKey []byte // 32 bytes; nil opens without encryption
	ReadOnly      bool
}

func Open(opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("secretstore: path is required")
	}
	bopts := badger.DefaultOptions(opts.Path).
		WithLogger(nil).
		WithReadOnly(opts.ReadOnly)
	if len(opts.EncryptionKey) > 0 {
		// Badger requires an index cache for encrypted workloads.
		bopts = bopts.
			WithEncryptionKey(opts.EncryptionKey).
			WithIndexCacheSize(100 << 20)
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) get(key string) ([]byte, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, errors.New("secretstore: not opened")
	}
	var out []byte
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			out = append([]byte(nil), val...)
			return nil
		})
	})
	return out, found, err
}

func (s *Store) set(key string, val []byte) error {
	if s == nil || s.db == nil {
		return errors.New("secretstore: not opened")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
}

// SavePrivateKey stores the hex signing key.
func (s *Store) SavePrivateKey(hexKey string) error {
	return s.set(keyPrivateKey, []byte(strings.TrimSpace(hexKey)))
}

// PrivateKey loads the hex signing key.
func (s *Store) PrivateKey() (string, bool, error) {
	b, ok, err := s.get(keyPrivateKey)
	return string(b), ok, err
}

// SaveAPICredentials stores user API credentials as JSON.
func (s *Store) SaveAPICredentials(creds *types.ApiKeyCreds) error {
	if !creds.Valid() {
		return errors.New("secretstore: refusing to store incomplete credentials")
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.set(keyAPICreds, data)
}

// APICredentials loads user API credentials.
func (s *Store) APICredentials() (*types.ApiKeyCreds, bool, error) {
	data, ok, err := s.get(keyAPICreds)
	if err != nil || !ok {
		return nil, ok, err
	}
	var creds types.ApiKeyCreds
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, true, fmt.Errorf("secretstore: corrupt credential record: %w", err)
	}
	return &creds, true, nil
}

// SaveBuilderCredentials stores builder credentials as JSON.
func (s *Store) SaveBuilderCredentials(creds *types.BuilderCreds) error {
	if !creds.Valid() {
		return errors.New("secretstore: refusing to store incomplete credentials")
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.set(keyBuilderCreds, data)
}

// BuilderCredentials loads builder credentials.
func (s *Store) BuilderCredentials() (*types.BuilderCreds, bool, error) {
	data, ok, err := s.get(keyBuilderCreds)
	if err != nil || !ok {
		return nil, ok, err
	}
	var creds types.BuilderCreds
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, true, fmt.Errorf("secretstore: corrupt credential record: %w", err)
	}
	return &creds, true, nil
}

// ParseKey expects 32 bytes as hex (with optional 0x prefix) or base64.
// Returns nil for empty input.
func ParseKey(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	rawHex := strings.TrimPrefix(raw, "0x")
	if b, err := hex.DecodeString(rawHex); err == nil {
		if len(b) != 32 {
			return nil, fmt.Errorf("decoded key length must be 32, got %d", len(b))
		}
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(raw); err == nil {
		if len(b) != 32 {
			return nil, fmt.Errorf("decoded key length must be 32, got %d", len(b))
		}
		return b, nil
	}
	return nil, errors.New("key must be base64(32 bytes) or hex(32 bytes)")
}
