package vcf

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 is matched by every DecodeError.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// OpenError reports an input path that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open vcf file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}

// DecodeError reports a record field that must be read as text but is not valid UTF-8.
// Line is zero when the record was not read from a Parser.
type DecodeError struct {
	Line  int
	Field string
}

func (e *DecodeError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("vcf decode error: %s is not valid UTF-8", e.Field)
	}
	return fmt.Sprintf("vcf decode error at line %d: %s is not valid UTF-8", e.Line, e.Field)
}

func (e *DecodeError) Is(target error) bool { return target == ErrInvalidUTF8 }

// EncodeError wraps a failure to write to the output sink.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("write vcf output: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
