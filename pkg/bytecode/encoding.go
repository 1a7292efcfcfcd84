package bytecode

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical mode so that equal programs always encode to
// identical bytes, which Hash depends on.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalProgram serializes a Program to canonical CBOR bytes.
func MarshalProgram(p *Program) ([]byte, error) {
	return cborEncMode.Marshal(p)
}

// UnmarshalProgram deserializes and validates a Program from CBOR bytes.
func UnmarshalProgram(data []byte) (*Program, error) {
	var p Program
	if err := cbor.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal program: %w", err)
	}
	if p.Version != ProgramVersion {
		return nil, fmt.Errorf("bytecode: unsupported program version %d (want %d)", p.Version, ProgramVersion)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("bytecode: %w", err)
	}
	return &p, nil
}

// Hash computes the SHA-256 fingerprint of the program's canonical encoding.
// Two programs with the same instructions produce the same hash.
func (p *Program) Hash() [32]byte {
	data, err := MarshalProgram(p)
	if err != nil {
		// Only fixed-width integers are encoded; this cannot fail.
		panic(fmt.Sprintf("bytecode: encode program: %v", err))
	}
	return sha256.Sum256(data)
}

// HashString returns the hex form of Hash.
func (p *Program) HashString() string {
	h := p.Hash()
	return fmt.Sprintf("%x", h[:])
}
