package oracle

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"sealed_rps/internal/logger"
	"sealed_rps/internal/seal"
)

// SimOracle simulates the decryption oracle network for development and
// tests. It decrypts through the DevSealer after a delay and delivers the
// result through Callback, the same entry point the HTTP callback route
// uses, so the asynchronous boundary is exercised for real.
type SimOracle struct {
	mu     sync.Mutex
	seq    uint64
	sealer *seal.DevSealer
	delay  time.Duration
	key    []byte

	// Callback delivers a decryption result to the game registry. Set after
	// construction; requests made while nil are dropped with a log line.
	Callback func(requestID uint64, payload []byte, proof []byte) error
}

func NewSimOracle(sealer *seal.DevSealer, delay time.Duration, key []byte) *SimOracle {
	return &SimOracle{
		sealer: sealer,
		delay:  delay,
		key:    key,
	}
}

// RequestDecryption is called with the registry lock held, so delivery must
// never happen on the calling goroutine. time.AfterFunc runs the callback on
// its own goroutine even with a zero delay.
func (o *SimOracle) RequestDecryption(handles []seal.Handle) (uint64, error) {
	payload := make([]byte, len(handles)*SlotSize)
	for i, h := range handles {
		v, ok := o.sealer.Open(h)
		if !ok {
			return 0, fmt.Errorf("unknown handle %q", h)
		}
		payload[i*SlotSize+SlotSize-1] = v
	}

	o.mu.Lock()
	o.seq++
	id := o.seq
	o.mu.Unlock()

	proof := o.sign(id, payload)

	time.AfterFunc(o.delay, func() {
		if o.Callback == nil {
			logger.Warn("sim oracle has no callback, dropping result", "request_id", id)
			return
		}
		if err := o.Callback(id, payload, proof); err != nil {
			logger.Error("sim oracle callback rejected", "request_id", id, "error", err)
		}
	})

	return id, nil
}

func (o *SimOracle) VerifyDecryptionProof(requestID uint64, payload []byte, proof []byte) error {
	if !hmac.Equal(proof, o.sign(requestID, payload)) {
		return errors.New("bad decryption proof")
	}
	return nil
}

func (o *SimOracle) sign(requestID uint64, payload []byte) []byte {
	mac := hmac.New(sha256.New, o.key)
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], requestID)
	mac.Write(id[:])
	mac.Write(payload)
	return mac.Sum(nil)
}
