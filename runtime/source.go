package cbor

import (
	"io"

	"github.com/philhofer/fwd"
)

// ByteSource is the forward-only byte stream a Decoder consumes.
//
// Implementations must block until the requested bytes are available or
// the stream ends. End of stream is reported as ErrShortBytes (or as
// io.EOF/io.ErrUnexpectedEOF, which the Decoder normalizes), distinct
// from any malformed-content error. The Decoder owns the read cursor:
// once attached to a Decoder, a source must not be read elsewhere.
type ByteSource interface {
	// ReadByte returns the next byte in the stream.
	ReadByte() (byte, error)

	// ReadFull fills p entirely, or fails. A partial fill must be
	// reported as an error even if some bytes were consumed.
	ReadFull(p []byte) error
}

// Peeker is implemented by byte sources that can expose upcoming bytes
// without consuming them. Both built-in sources support it; NextType
// requires it.
type Peeker interface {
	Peek(n int) ([]byte, error)
}

// windower is implemented by in-memory sources that can hand out a view
// of the next n bytes directly, advancing the cursor past them. The
// returned slice aliases the source's buffer.
type windower interface {
	window(n int) ([]byte, error)
}

// skipper is implemented by sources that can discard n bytes without
// surfacing them (fwd.Reader provides this natively).
type skipper interface {
	Skip(n int) (int, error)
}

// eosError normalizes io end-of-stream conditions to ErrShortBytes so
// stream exhaustion stays distinguishable from malformed content.
func eosError(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrShortBytes
	}
	return err
}

// readerSource adapts a buffered fwd.Reader into a ByteSource.
type readerSource struct {
	r *fwd.Reader
}

func (s *readerSource) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, eosError(err)
	}
	return b, nil
}

func (s *readerSource) ReadFull(p []byte) error {
	if _, err := s.r.ReadFull(p); err != nil {
		return eosError(err)
	}
	return nil
}

func (s *readerSource) Peek(n int) ([]byte, error) {
	p, err := s.r.Peek(n)
	if err != nil {
		return p, eosError(err)
	}
	return p, nil
}

func (s *readerSource) Skip(n int) (int, error) {
	c, err := s.r.Skip(n)
	if err != nil {
		return c, eosError(err)
	}
	return c, nil
}

// bytesSource reads from an in-memory buffer. It supports zero-copy
// windows: byte-string reads alias the buffer instead of copying.
type bytesSource struct {
	buf []byte
	off int
}

func (s *bytesSource) ReadByte() (byte, error) {
	if s.off >= len(s.buf) {
		return 0, ErrShortBytes
	}
	b := s.buf[s.off]
	s.off++
	return b, nil
}

func (s *bytesSource) ReadFull(p []byte) error {
	v, err := s.window(len(p))
	if err != nil {
		return err
	}
	copy(p, v)
	return nil
}

func (s *bytesSource) Peek(n int) ([]byte, error) {
	if len(s.buf)-s.off < n {
		return s.buf[s.off:], ErrShortBytes
	}
	return s.buf[s.off : s.off+n], nil
}

func (s *bytesSource) window(n int) ([]byte, error) {
	if n < 0 || len(s.buf)-s.off < n {
		// Consume what was available; the cursor is no longer
		// trustworthy after a short read.
		s.off = len(s.buf)
		return nil, ErrShortBytes
	}
	v := s.buf[s.off : s.off+n]
	s.off += n
	return v, nil
}

// remaining returns the unread portion of the buffer.
func (s *bytesSource) remaining() []byte { return s.buf[s.off:] }
