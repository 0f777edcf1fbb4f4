package vcf

import (
	"bufio"
	"io"
	"strconv"
)

// Writer writes a VCF header followed by records.
// Output is buffered; call Flush when done.
type Writer struct {
	w   *bufio.Writer
	buf []byte
}

// NewWriter creates a VCF writer and writes the header lines immediately.
func NewWriter(w io.Writer, h *Header) (*Writer, error) {
	vw := &Writer{
		w:   bufio.NewWriterSize(w, 64*1024),
		buf: make([]byte, 0, 512),
	}
	for _, line := range h.Lines() {
		if _, err := vw.w.WriteString(line); err != nil {
			return nil, &EncodeError{Err: err}
		}
		if err := vw.w.WriteByte('\n'); err != nil {
			return nil, &EncodeError{Err: err}
		}
	}
	return vw, nil
}

// Write serializes one record. Columns after ALT are written as read.
func (vw *Writer) Write(rec *Record) error {
	b := vw.buf[:0]

	b = append(b, rec.Chrom...)
	b = append(b, '\t')
	b = strconv.AppendInt(b, rec.Pos, 10)
	b = append(b, '\t')
	b = appendList(b, rec.ID, ';')
	b = append(b, '\t')
	b = append(b, rec.Ref...)
	b = append(b, '\t')
	b = appendList(b, rec.Alt, ',')
	b = append(b, '\t')
	if len(rec.Rest) > 0 {
		b = append(b, rec.Rest...)
	} else {
		// Hand-built record: missing QUAL, FILTER, INFO
		b = append(b, ".\t.\t."...)
	}
	b = append(b, '\n')

	vw.buf = b
	if _, err := vw.w.Write(b); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}

// Flush writes any buffered output to the underlying writer.
func (vw *Writer) Flush() error {
	if err := vw.w.Flush(); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}

// appendList writes values joined by sep, or "." for an empty list.
func appendList(b []byte, values [][]byte, sep byte) []byte {
	if len(values) == 0 {
		return append(b, '.')
	}
	for i, v := range values {
		if i > 0 {
			b = append(b, sep)
		}
		b = append(b, v...)
	}
	return b
}
