package vcf

// RecordReader is implemented by sources that fill caller-owned records.
type RecordReader interface {
	// Read fills rec with the next record.
	// Returns false, nil when there are no more records.
	Read(rec *Record) (bool, error)

	// LineNumber returns the current line number being processed.
	LineNumber() int
}
