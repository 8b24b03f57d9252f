// Package store persists the application's durable state: the ordered list of
// tracked medications and the user profile, each under its own fixed key in a
// local badger database.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger"

	"pillpal/internal/models"
)

// Fixed keys for the two durable blobs.
var (
	keyMedications = []byte("pillpal/medications")
	keyProfile     = []byte("pillpal/profile")
)

// Store is a badger-backed persistence layer. Writes commit synchronously;
// reads treat absent or unparsable blobs as "no data yet".
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the badger database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveMedications writes the full ordered medication list.
func (s *Store) SaveMedications(meds []models.Medication) error {
	return s.saveJSON(keyMedications, meds)
}

// LoadMedications reads the medication list. An absent or corrupt blob loads
// as an empty list rather than an error.
func (s *Store) LoadMedications() ([]models.Medication, error) {
	var meds []models.Medication
	found, err := s.loadJSON(keyMedications, &meds)
	if err != nil {
		return nil, err
	}
	if !found || meds == nil {
		return []models.Medication{}, nil
	}
	return meds, nil
}

// SaveProfile writes the user profile.
func (s *Store) SaveProfile(p models.UserProfile) error {
	return s.saveJSON(keyProfile, p)
}

// LoadProfile reads the user profile. Returns nil (and no error) when no
// profile has been stored or the stored blob cannot be parsed.
func (s *Store) LoadProfile() (*models.UserProfile, error) {
	var p models.UserProfile
	found, err := s.loadJSON(keyProfile, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

// DeleteProfile removes the stored profile. Deleting an absent profile is
// not an error.
func (s *Store) DeleteProfile() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(keyProfile)
	})
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

func (s *Store) saveJSON(key []byte, v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// loadJSON reads and decodes the blob at key. It reports found=false both for
// a missing key and for a blob that does not decode, so callers start fresh
// instead of crashing on corrupt state.
func (s *Store) loadJSON(key []byte, v any) (found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if jsonErr := json.Unmarshal(val, v); jsonErr != nil {
				return nil
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	return found, nil
}
