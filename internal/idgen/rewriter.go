package idgen

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vcf-ids/internal/vcf"
)

// RecordWriter defines the interface for writing rewritten records.
type RecordWriter interface {
	Write(rec *vcf.Record) error
	Flush() error
}

// Rewriter replaces the ID column of every record in a stream.
type Rewriter struct {
	cfg    Config
	logger *zap.Logger
}

// NewRewriter creates a rewriter for a validated configuration.
func NewRewriter(cfg Config) (*Rewriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Rewriter{
		cfg:    cfg,
		logger: zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for progress and summary messages.
func (r *Rewriter) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Run reads records from src, assigns each a new ID and writes it to dst,
// one record at a time. The first error stops the run; records written
// before it are still flushed to dst. Returns the number of records written.
func (r *Rewriter) Run(src vcf.RecordReader, dst RecordWriter) (int, error) {
	count, err := r.rewrite(src, dst)
	if flushErr := dst.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return count, err
	}

	if count == 0 {
		r.logger.Info("0 records processed")
	} else {
		r.logger.Info("rewrote record ids", zap.Int("records", count))
	}
	return count, nil
}

func (r *Rewriter) rewrite(src vcf.RecordReader, dst RecordWriter) (int, error) {
	var rec vcf.Record
	count := 0

	for {
		ok, err := src.Read(&rec)
		if err != nil {
			return count, fmt.Errorf("read record: %w", err)
		}
		if !ok {
			return count, nil
		}

		if err := Assign(&rec, r.cfg); err != nil {
			var de *vcf.DecodeError
			if errors.As(err, &de) {
				de.Line = src.LineNumber()
			}
			return count, err
		}

		if err := dst.Write(&rec); err != nil {
			return count, err
		}
		count++

		if count%1_000_000 == 0 {
			r.logger.Debug("rewriting ids", zap.Int("records", count))
		}
	}
}
