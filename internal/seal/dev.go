package seal

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
)

// DevSealer is the development stand-in for the real encryption scheme.
// The "ciphertext" is carried as-is and the proof is its SHA-256 digest, so
// the proof check is real even though nothing is actually encrypted. It
// retains the sealed bytes so the development oracle can decrypt them later.
type DevSealer struct {
	mu     sync.Mutex
	seq    uint64
	values map[Handle][]byte
	grants map[Handle]map[string]bool
}

func NewDevSealer() *DevSealer {
	return &DevSealer{
		values: make(map[Handle][]byte),
		grants: make(map[Handle]map[string]bool),
	}
}

func (s *DevSealer) Sealed(input []byte, proof []byte) (Handle, error) {
	if len(input) == 0 {
		return "", errors.New("empty ciphertext")
	}

	sum := sha256.Sum256(input)
	if !hmac.Equal(proof, sum[:]) {
		return "", errors.New("proof does not match ciphertext")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	h := Handle(fmt.Sprintf("seal-%d-%s", s.seq, hex.EncodeToString(sum[:8])))
	s.values[h] = append([]byte(nil), input...)
	return h, nil
}

func (s *DevSealer) Allow(h Handle, identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.grants[h]
	if !ok {
		g = make(map[string]bool)
		s.grants[h] = g
	}
	g[identity] = true
}

// Open returns the plaintext low byte behind a handle. Used only by the
// development oracle.
func (s *DevSealer) Open(h Handle) (byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[h]
	if !ok || len(v) == 0 {
		return 0, false
	}
	return v[len(v)-1], true
}

// Proof computes the validity proof the dev sealer expects for the given
// ciphertext bytes. Clients of a real deployment get this from the
// encryption SDK.
func Proof(input []byte) []byte {
	sum := sha256.Sum256(input)
	return sum[:]
}
