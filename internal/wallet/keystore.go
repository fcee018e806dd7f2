package wallet

import (
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/hdwallet"
)

type storedKey struct {
	account uint32
	key     hdwallet.DerivedKey
}

// KeyStore holds every key derived for the wallet, indexed by public key hash.
type KeyStore struct {
	mu       sync.RWMutex
	byHash   map[string]storedKey
	birthday time.Time
}

// NewKeyStore creates an empty KeyStore.
func NewKeyStore() *KeyStore {
	return &KeyStore{byHash: make(map[string]storedKey)}
}

// Importer returns the key importer of one account.
func (s *KeyStore) Importer(account uint32) hdwallet.KeyImporter {
	return accountImporter{store: s, account: account}
}

func (s *KeyStore) importKeys(account uint32, keys []hdwallet.DerivedKey, creationTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if len(key.PubKeyHash) != 20 {
			return fmt.Errorf("key %s: invalid public key hash length %d", key.Path(), len(key.PubKeyHash))
		}
	}
	for _, key := range keys {
		id := string(key.PubKeyHash)
		if _, ok := s.byHash[id]; ok {
			continue
		}
		key.CreationTime = creationTime
		s.byHash[id] = storedKey{account: account, key: key}
		if !creationTime.IsZero() && (s.birthday.IsZero() || creationTime.Before(s.birthday)) {
			s.birthday = creationTime
		}
	}
	return nil
}

// Lookup resolves a script identity to the stored key and its account.
func (s *KeyStore) Lookup(pubKey, pubKeyHash []byte) (hdwallet.DerivedKey, uint32, bool) {
	if pubKeyHash == nil && pubKey != nil {
		pubKeyHash = btcutil.Hash160(pubKey)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byHash[string(pubKeyHash)]
	return stored.key, stored.account, ok
}

// Len returns the number of stored keys.
func (s *KeyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byHash)
}

// Birthday is the earliest non-zero key creation time.
func (s *KeyStore) Birthday() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.birthday
}

type accountImporter struct {
	store   *KeyStore
	account uint32
}

func (i accountImporter) ImportKeys(keys []hdwallet.DerivedKey, creationTime time.Time) error {
	return i.store.importKeys(i.account, keys, creationTime)
}
