// Package idgen assigns deterministic identifiers to VCF records from their
// chromosome, position and alleles.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/inodb/vcf-ids/internal/vcf"
)

// DefaultDelimiter separates the parts of a readable ID.
const DefaultDelimiter = "_"

// Config controls how IDs are built. It is read by every record and never
// changed once a run starts.
type Config struct {
	Delimiter string // placed between chrom, pos, ref and alt
	UseHash   bool   // replace the readable ID with a truncated digest
	HashFunc  string // digest used when UseHash is set; see HashFuncs
	Prefix    string // prepended verbatim to every ID
}

// DefaultConfig returns readable IDs joined with "_" and no prefix.
func DefaultConfig() Config {
	return Config{
		Delimiter: DefaultDelimiter,
		HashFunc:  HashSHA1,
	}
}

// Validate reports an unknown hash function. HashFunc is only checked
// when UseHash is set.
func (c Config) Validate() error {
	if !c.UseHash {
		return nil
	}
	if _, ok := hashFuncs[c.hashFunc()]; !ok {
		return fmt.Errorf("unknown hash function %q (want one of %s)", c.HashFunc, strings.Join(HashFuncs(), ", "))
	}
	return nil
}

func (c Config) hashFunc() string {
	if c.HashFunc == "" {
		return HashSHA1
	}
	return c.HashFunc
}

// FormatID builds the readable ID chrom<d>pos<d>ref<d>alt1,alt2,...
func FormatID(chrom string, pos int64, ref string, alts []string, delim string) string {
	var b strings.Builder
	b.Grow(64)
	b.WriteString(chrom)
	b.WriteString(delim)
	b.WriteString(strconv.FormatInt(pos, 10))
	b.WriteString(delim)
	b.WriteString(ref)
	b.WriteString(delim)
	for i, alt := range alts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(alt)
	}
	return b.String()
}

// Derive returns the ID for rec under cfg without modifying rec.
// CHROM, REF and every ALT allele must be valid UTF-8.
func Derive(rec *vcf.Record, cfg Config) (string, error) {
	if !utf8.Valid(rec.Chrom) {
		return "", &vcf.DecodeError{Field: "CHROM"}
	}
	if !utf8.Valid(rec.Ref) {
		return "", &vcf.DecodeError{Field: "REF"}
	}
	alts := make([]string, len(rec.Alt))
	for i, alt := range rec.Alt {
		if !utf8.Valid(alt) {
			return "", &vcf.DecodeError{Field: "ALT"}
		}
		alts[i] = string(alt)
	}

	id := FormatID(string(rec.Chrom), rec.Pos, string(rec.Ref), alts, cfg.Delimiter)
	if cfg.UseHash {
		h, ok := hashFuncs[cfg.hashFunc()]
		if !ok {
			return "", fmt.Errorf("unknown hash function %q", cfg.HashFunc)
		}
		id = shortHash(h, id)
	}
	return cfg.Prefix + id, nil
}

// Assign derives the ID for rec and makes it the record's only ID.
// On error rec is left unchanged.
func Assign(rec *vcf.Record, cfg Config) error {
	id, err := Derive(rec, cfg)
	if err != nil {
		return err
	}
	rec.SetID(id)
	return nil
}
