package logging

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	log "github.com/sirupsen/logrus"
)

// TermHashTable is a structural hash-consing index for logging Terms
// (spec §4.4). The bucket key is the tuple (op, sort, children
// identities, symbol name if any, value hash if a value) — children
// contribute their own canonical hash rather than being re-walked, so
// hashing a deep term is linear rather than quadratic.
//
// Structural hashing uses Keccak256 (github.com/ethereum/go-ethereum/crypto),
// mirroring the teacher's internal/util.Sha3/GetCodeHash use of the same
// primitive for content-addressing byte strings.
type TermHashTable struct {
	buckets map[uint64][]*Term
	size    int
}

// NewTermHashTable returns an empty hash table.
func NewTermHashTable() *TermHashTable {
	return &TermHashTable{buckets: make(map[uint64][]*Term)}
}

// Len reports the number of canonical terms currently retained.
func (h *TermHashTable) Len() int { return h.size }

// Clear empties the table; used by LoggingSolver.Reset.
func (h *TermHashTable) Clear() {
	h.buckets = make(map[uint64][]*Term)
	h.size = 0
}

// LookupOrInsert returns the canonical term structurally equal to
// candidate, inserting candidate as the new canonical term if none
// existed. valueHash is the backend-provided hash of candidate's value
// (ignored for non-value terms); valueHashEqual compares two value terms'
// backend handles for equality when a bucket collision needs
// disambiguating. The bool result reports whether candidate was newly
// inserted (false means an existing term was returned and candidate
// should be discarded by the caller).
func (h *TermHashTable) LookupOrInsert(candidate *Term, valueHash uint64, valueHashEqual func(a, b *Term) bool) (*Term, bool) {
	key := h.structuralHash(candidate, valueHash)
	candidate.cachedHash = key
	candidate.hashed = true

	for _, existing := range h.buckets[key] {
		if existing.structurallyEqual(candidate, valueHashEqual) {
			log.Debugf("hash-cons hit for %s (bucket %d, %d entries)", candidate.Op, key, len(h.buckets[key]))
			return existing, false
		}
	}

	h.buckets[key] = append(h.buckets[key], candidate)
	h.size++
	log.Debugf("hash-cons insert for %s (table size now %d)", candidate.Op, h.size)
	return candidate, true
}

// structuralHash computes the bucket key for a candidate term. Children
// contribute their own already-computed hash (they are canonical by the
// time a parent is hashed), so this never re-walks a subterm.
func (h *TermHashTable) structuralHash(t *Term, valueHash uint64) uint64 {
	buf := make([]byte, 0, 64)
	buf = appendUint64(buf, uint64(t.Op.PrimOp))
	for _, idx := range t.Op.Indices {
		buf = appendUint64(buf, uint64(idx))
	}
	buf = appendUint64(buf, t.SortVal.Info.Hash())
	for _, c := range t.Children {
		if !c.hashed {
			// children are canonicalised before their parent is ever
			// built by LoggingSolver; a non-canonical child here is the
			// caller-bug case the spec calls out, treated as canonical.
			c.cachedHash = h.structuralHash(c, 0)
			c.hashed = true
		}
		buf = appendUint64(buf, c.cachedHash)
	}
	if t.HasSymbol {
		buf = append(buf, []byte(t.SymbolName)...)
	}
	if t.IsValue && len(t.Children) == 0 {
		buf = appendUint64(buf, valueHash)
	}

	digest := crypto.Keccak256(buf)
	return binary.BigEndian.Uint64(digest[:8])
}

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

// String is a debug helper for logging.
func (h *TermHashTable) String() string {
	return fmt.Sprintf("TermHashTable{buckets=%d, size=%d}", len(h.buckets), h.size)
}
