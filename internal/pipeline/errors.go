package pipeline

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so callers can decide on retry
// versus fallback without parsing messages.
type ErrorKind int

const (
	// KindInvalidType: unknown image type; caller error, retry is useless.
	KindInvalidType ErrorKind = iota + 1
	// KindNetwork: transport failure reaching the source host; transient.
	KindNetwork
	// KindFetch: source host answered but the download failed; transient.
	KindFetch
	// KindDecode: source bytes are not a supported raster image.
	KindDecode
	// KindEncode: internal encoder failure.
	KindEncode
	// KindStore: the object store rejected the upload; may be transient.
	KindStore
	// KindTimeout: a bounded operation exceeded its deadline; retryable.
	KindTimeout
	// KindInternal: everything else (cache store failures included).
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidType:
		return "invalid_type"
	case KindNetwork:
		return "network_error"
	case KindFetch:
		return "fetch_error"
	case KindDecode:
		return "decode_error"
	case KindEncode:
		return "encode_error"
	case KindStore:
		return "store_error"
	case KindTimeout:
		return "timeout"
	default:
		return "internal_error"
	}
}

// Error is the failure type surfaced by the pipeline. OriginalSize and
// ProcessedSize report whatever byte counts were gathered before the
// failure, for caller-side statistics.
type Error struct {
	Kind          ErrorKind
	Err           error
	OriginalSize  int64
	ProcessedSize int64
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind extracts the ErrorKind from err, or KindInternal for foreign errors.
func Kind(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}
