package seal

// Handle - opaque reference to a sealed (encrypted) value. The empty string
// means "no value".
type Handle string

// Verifier is the encryption collaborator. The scheme internals live outside
// this service; the core only needs to turn untrusted external bytes plus a
// validity proof into a handle, and to grant read access on a handle.
type Verifier interface {
	// Sealed checks the proof against the ciphertext bytes and returns a
	// handle for the sealed value. It must reject any input whose proof
	// does not verify.
	Sealed(input []byte, proof []byte) (Handle, error)

	// Allow grants the given identity the right to later decrypt the value
	// behind the handle.
	Allow(h Handle, identity string)
}
