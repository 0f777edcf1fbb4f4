package idgen

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Hash function names accepted in Config.HashFunc.
const (
	HashSHA1    = "sha1"
	HashXXHash  = "xxhash"
	HashXXH3    = "xxh3"
	HashMurmur3 = "murmur3"
)

// shortHashLen is the number of digest bytes kept in a hashed ID.
const shortHashLen = 4

// digestFunc returns at least shortHashLen leading digest bytes of s.
// Integer digests are laid out big-endian.
type digestFunc func(s string) []byte

var hashFuncs = map[string]digestFunc{
	HashSHA1: func(s string) []byte {
		sum := sha1.Sum([]byte(s))
		return sum[:]
	},
	HashXXHash: func(s string) []byte {
		return binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(s))
	},
	HashXXH3: func(s string) []byte {
		return binary.BigEndian.AppendUint64(nil, xxh3.HashString(s))
	},
	HashMurmur3: func(s string) []byte {
		return binary.BigEndian.AppendUint32(nil, murmur3.Sum32([]byte(s)))
	},
}

// HashFuncs lists the supported hash function names in sorted order.
func HashFuncs() []string {
	names := make([]string, 0, len(hashFuncs))
	for name := range hashFuncs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// shortHash renders the first four digest bytes of s as eight lowercase hex digits.
func shortHash(h digestFunc, s string) string {
	return hex.EncodeToString(h(s)[:shortHashLen])
}
