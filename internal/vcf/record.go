// Package vcf provides VCF file parsing and writing.
package vcf

// Record is a single VCF data line. CHROM, POS, ID, REF and ALT are split
// out; QUAL through the last sample column are carried as raw text so they
// can be written back unchanged.
//
// A Record filled by Parser.Read points into storage owned by the record and
// is only valid until the next Read into the same record.
type Record struct {
	Chrom []byte   // Chromosome name (e.g., "12", "chr12")
	Pos   int64    // 1-based genomic position
	ID    [][]byte // Identifiers; empty when the column is "."
	Ref   []byte   // Reference allele
	Alt   [][]byte // Alternate alleles in file order; a "." column is the single allele "."

	// Rest holds QUAL, FILTER, INFO and any FORMAT/sample columns,
	// tab-separated. Parsed records always have it; a Record built by hand
	// may leave it empty and is then written with "." for QUAL, FILTER and INFO.
	Rest []byte

	line []byte
}

// Reset clears the record so its storage can be reused for the next line.
func (r *Record) Reset() {
	r.Chrom = nil
	r.Pos = 0
	r.ID = r.ID[:0]
	r.Ref = nil
	r.Alt = r.Alt[:0]
	r.Rest = nil
	r.line = r.line[:0]
}

// SetID replaces all identifiers with the single value id.
func (r *Record) SetID(id string) {
	r.ID = append(r.ID[:0], []byte(id))
}
