package abi

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signature renders the canonical signature string name(type1,type2,...).
func Signature(name string, args Arguments) string {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = a.Type.Canonical()
	}
	return name + "(" + strings.Join(types, ",") + ")"
}

var (
	sigCacheMu sync.RWMutex
	sigCache   = map[string]common.Hash{}
)

// hashSignature keccak-hashes a canonical signature string, caching per
// distinct string. Purely an optimization; the hash is a pure function.
func hashSignature(sig string) common.Hash {
	sigCacheMu.RLock()
	h, ok := sigCache[sig]
	sigCacheMu.RUnlock()
	if ok {
		return h
	}

	h = crypto.Keccak256Hash([]byte(sig))
	sigCacheMu.Lock()
	sigCache[sig] = h
	sigCacheMu.Unlock()
	return h
}

// Selector computes the 4-byte function selector that tags outgoing calldata.
func Selector(name string, args Arguments) [4]byte {
	var sel [4]byte
	h := hashSignature(Signature(name, args))
	copy(sel[:], h[:4])
	return sel
}

// EventID computes the 32-byte event signature hash carried as topic[0] of an
// emitted log.
func EventID(name string, args Arguments) common.Hash {
	return hashSignature(Signature(name, args))
}
