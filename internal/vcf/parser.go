package vcf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser reads records from a VCF stream.
type Parser struct {
	reader     *bufio.Reader
	closer     io.Closer
	lineNumber int
	header     *Header
}

// NewParser creates a new VCF parser for the given file.
// Supports plain VCF, gzipped VCF (.vcf.gz) and "-" for stdin.
func NewParser(path string) (*Parser, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}

	p, err := NewParserFromReader(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}
	p.closer = rc
	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader and reads its header.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{
		reader: bufio.NewReaderSize(r, 64*1024),
		header: &Header{},
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads the ## meta lines and the #CHROM column line.
func (p *Parser) parseHeader() error {
	var buf []byte
	for {
		var err error
		buf, err = p.readLine(buf[:0])
		if err != nil && !(errors.Is(err, io.EOF) && len(buf) > 0) {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line := string(trimEOL(buf))

		if strings.HasPrefix(line, "##") {
			p.header.lines = append(p.header.lines, line)
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			p.header.lines = append(p.header.lines, line)
			p.header.samples = sampleColumns(line)
			return nil
		}

		return &ParseError{
			Line:    p.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &ParseError{
		Line:    p.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// Read fills rec with the next record, reusing its storage.
// Returns false, nil at end of stream. A malformed line, including a final
// line cut short without its newline, is a *ParseError and never the end.
func (p *Parser) Read(rec *Record) (bool, error) {
	for {
		rec.Reset()

		line, err := p.readLine(rec.line)
		rec.line = line
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, fmt.Errorf("read variant line: %w", err)
		}
		p.lineNumber++

		if len(trimEOL(line)) == 0 {
			continue // Skip empty lines
		}

		if err := p.parseLine(trimEOL(line), rec); err != nil {
			return false, err
		}
		return true, nil
	}
}

// Next reads the next record into a freshly allocated Record.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	rec := &Record{}
	ok, err := p.Read(rec)
	if err != nil || !ok {
		return nil, err
	}
	return rec, nil
}

// readLine appends the next line, including its newline, to dst.
// A final line without a newline is returned together with io.EOF.
func (p *Parser) readLine(dst []byte) ([]byte, error) {
	for {
		chunk, err := p.reader.ReadSlice('\n')
		dst = append(dst, chunk...)
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return dst, err
	}
}

// parseLine splits a single VCF data line into rec. The fields of rec alias line.
func (p *Parser) parseLine(line []byte, rec *Record) error {
	if n := bytes.Count(line, tab) + 1; n < 8 {
		return &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", n),
		}
	}

	cols := bytes.SplitN(line, tab, 6)

	pos, err := strconv.ParseUint(string(cols[1]), 10, 63)
	if err != nil {
		return &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", cols[1]),
		}
	}

	rec.Chrom = cols[0]
	rec.Pos = int64(pos)
	rec.ID = rec.ID[:0]
	if !isMissing(cols[2]) {
		rec.ID = splitList(rec.ID, cols[2], ';')
	}
	rec.Ref = cols[3]
	rec.Alt = splitList(rec.Alt, cols[4], ',')
	rec.Rest = cols[5]

	return nil
}

// Header returns the VCF header read when the parser was created.
func (p *Parser) Header() *Header {
	return p.header
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the underlying stream if the parser opened it.
func (p *Parser) Close() error {
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}

var tab = []byte{'\t'}

// splitList appends the sep-separated values of col to dst[:0].
// An empty column yields an empty list; "." is kept as a value.
func splitList(dst [][]byte, col []byte, sep byte) [][]byte {
	dst = dst[:0]
	if len(col) == 0 {
		return dst
	}
	for {
		i := bytes.IndexByte(col, sep)
		if i < 0 {
			return append(dst, col)
		}
		dst = append(dst, col[:i])
		col = col[i+1:]
	}
}

func isMissing(col []byte) bool {
	return len(col) == 0 || (len(col) == 1 && col[0] == '.')
}

func trimEOL(line []byte) []byte {
	return bytes.TrimRight(line, "\r\n")
}
