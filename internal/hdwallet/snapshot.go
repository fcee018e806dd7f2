package hdwallet

import (
	"encoding/json"
	"fmt"
)

// AccountSnapshot is the persisted form of an Account. Keys are never part of it.
type AccountSnapshot struct {
	Name    *string        `json:"name"`
	Receive *ChainSnapshot `json:"receive"`
	Change  *ChainSnapshot `json:"change"`
}

// ChainSnapshot is the persisted form of a Chain.
type ChainSnapshot struct {
	Name      *string           `json:"name"`
	IsReceive *bool             `json:"isReceive"`
	Addrs     []AddressSnapshot `json:"addrs"`
}

// AddressSnapshot is the persisted form of an Address.
type AddressSnapshot struct {
	Index     *uint32 `json:"index"`
	Balance   *int64  `json:"balance"`
	Available *int64  `json:"available"`
	EverUsed  *bool   `json:"everUsed,omitempty"`
}

// EncodeAccountSnapshot serializes a snapshot document.
func EncodeAccountSnapshot(snap AccountSnapshot) ([]byte, error) {
	if err := snap.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

// DecodeAccountSnapshot parses and validates a snapshot document.
func DecodeAccountSnapshot(data []byte) (AccountSnapshot, error) {
	var snap AccountSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return AccountSnapshot{}, fmt.Errorf("decode account snapshot: %w", err)
	}
	if err := snap.validate(); err != nil {
		return AccountSnapshot{}, err
	}
	return snap, nil
}

func (s AccountSnapshot) validate() error {
	if s.Name == nil {
		return missingField("name")
	}
	if s.Receive == nil {
		return missingField("receive")
	}
	if s.Change == nil {
		return missingField("change")
	}
	if err := s.Receive.validate("receive"); err != nil {
		return err
	}
	return s.Change.validate("change")
}

func (s ChainSnapshot) validate(path string) error {
	if s.Name == nil {
		return missingField(path + ".name")
	}
	if s.IsReceive == nil {
		return missingField(path + ".isReceive")
	}
	if s.Addrs == nil {
		return missingField(path + ".addrs")
	}
	for i, addr := range s.Addrs {
		if err := addr.validate(fmt.Sprintf("%s.addrs[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (s AddressSnapshot) validate(path string) error {
	switch {
	case s.Index == nil:
		return missingField(path + ".index")
	case s.Balance == nil:
		return missingField(path + ".balance")
	case s.Available == nil:
		return missingField(path + ".available")
	}
	return nil
}

func missingField(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, path)
}
