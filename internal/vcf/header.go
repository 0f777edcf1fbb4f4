package vcf

import "strings"

// Header holds the meta-information lines and the #CHROM column line of a VCF.
// It is produced by a Parser and written unchanged by a Writer.
type Header struct {
	lines   []string
	samples []string
}

// NewHeader builds a header from raw lines without trailing newlines.
// The last line is expected to be the #CHROM column line.
func NewHeader(lines []string) *Header {
	h := &Header{lines: lines}
	if n := len(lines); n > 0 {
		h.samples = sampleColumns(lines[n-1])
	}
	return h
}

// Lines returns the header lines in file order.
func (h *Header) Lines() []string {
	return h.lines
}

// SampleNames returns sample names from the #CHROM header line.
// Returns nil if no sample columns are present.
func (h *Header) SampleNames() []string {
	return h.samples
}

// sampleColumns extracts sample names from columns after FORMAT (index 9+).
func sampleColumns(chromLine string) []string {
	if !strings.HasPrefix(chromLine, "#CHROM") {
		return nil
	}
	fields := strings.Split(chromLine, "\t")
	if len(fields) > 9 {
		return fields[9:]
	}
	return nil
}
