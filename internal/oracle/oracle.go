package oracle

import "sealed_rps/internal/seal"

// Decryptor is the outbound half of the decryption oracle boundary. The
// caller does not block on the decryption itself: RequestDecryption records
// the batch and returns a correlation id immediately. The id is never zero
// (zero means "no outstanding request" to the caller).
type Decryptor interface {
	RequestDecryption(handles []seal.Handle) (uint64, error)
}

// ProofChecker validates the proof accompanying a decryption callback before
// the payload may be trusted.
type ProofChecker interface {
	VerifyDecryptionProof(requestID uint64, payload []byte, proof []byte) error
}

// SlotSize is the width of one plaintext slot in the callback payload:
// a 32-byte big-endian value whose low byte carries the move.
const SlotSize = 32
