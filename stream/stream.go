// Package stream drives automaton walkers from an io.Reader.
//
// Input is read in fixed-size chunks, so memory use does not depend on the
// length of the stream. Rune readers decode UTF-8 across chunk boundaries.
//
// Example usage with a compiled pattern:
//
//	file, _ := os.Open("large.log")
//	defer file.Close()
//
//	d := fauto.MustBuild("[a-z]+(,[a-z]+)*")
//	ok, err := stream.TestReader(ctx, file, d.Create(), stream.Config{
//	    BufferSize: 2 * 1024 * 1024, // 2MB chunks
//	})
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"

	"github.com/KromDaniel/fauto/auto"
)

// DefaultBufferSize is the chunk size used when Config.BufferSize is zero.
const DefaultBufferSize = 64 * 1024

// MinBufferSize is the smallest chunk that can hold any UTF-8 encoded rune.
const MinBufferSize = utf8.UTFMax

// Config configures streaming behavior.
type Config struct {
	// BufferSize is the chunk size for reading from the io.Reader.
	// Default: 64KB (65536).
	// Larger values reduce syscall overhead but use more memory.
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults.
// BufferSize defaults to 64KB.
func DefaultConfig() Config {
	return Config{
		BufferSize: DefaultBufferSize,
	}
}

// ErrBufferTooSmall is returned when Config.BufferSize is less than
// the minimum required.
type ErrBufferTooSmall struct {
	Requested int
	Minimum   int
}

func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("stream: buffer size %d too small (minimum %d)", e.Requested, e.Minimum)
}

// Validate validates the Config and returns an error if invalid.
// A zero BufferSize is valid and means the default.
func (c Config) Validate(minBuffer int) error {
	if c.BufferSize < 0 || (c.BufferSize > 0 && c.BufferSize < minBuffer) {
		return ErrBufferTooSmall{Requested: c.BufferSize, Minimum: minBuffer}
	}
	return nil
}

// ApplyDefaults returns a Config with defaults applied for any zero values.
func (c Config) ApplyDefaults(minBuffer int) Config {
	result := c

	if result.BufferSize == 0 {
		result.BufferSize = DefaultBufferSize
	}
	if result.BufferSize < minBuffer {
		result.BufferSize = minBuffer
	}
	return result
}

// TestReader reports whether the whole of r, decoded as UTF-8, is accepted
// by w. Reading stops at the first rejected rune.
func TestReader(ctx context.Context, r io.Reader, w auto.Walker[rune], cfg Config) (bool, error) {
	src, err := newSource(ctx, r, cfg)
	if err != nil {
		return false, err
	}
	return test(w, src.runes(), src)
}

// SearchReader reports whether some prefix of r, decoded as UTF-8, is
// accepted by w. Reading stops as soon as the answer is known.
func SearchReader(ctx context.Context, r io.Reader, w auto.Walker[rune], cfg Config) (bool, error) {
	src, err := newSource(ctx, r, cfg)
	if err != nil {
		return false, err
	}
	return search(w, src.runes(), src)
}

// TestByteReader is TestReader for walkers over raw bytes.
func TestByteReader(ctx context.Context, r io.Reader, w auto.Walker[byte], cfg Config) (bool, error) {
	src, err := newSource(ctx, r, cfg)
	if err != nil {
		return false, err
	}
	return test(w, src.bytes(), src)
}

// SearchByteReader is SearchReader for walkers over raw bytes.
func SearchByteReader(ctx context.Context, r io.Reader, w auto.Walker[byte], cfg Config) (bool, error) {
	src, err := newSource(ctx, r, cfg)
	if err != nil {
		return false, err
	}
	return search(w, src.bytes(), src)
}

func test[T comparable](w auto.Walker[T], seq iter.Seq[T], src *source) (bool, error) {
	ok := auto.Test(w, seq)
	if src.err != nil {
		return false, src.err
	}
	return ok, nil
}

func search[T comparable](w auto.Walker[T], seq iter.Seq[T], src *source) (bool, error) {
	for label := range seq {
		if w.IsAccepted() {
			return true, nil
		}
		if !w.TestTrigger(label) {
			return false, nil
		}
		w.Trigger(label)
	}
	if src.err != nil {
		return false, src.err
	}
	return w.IsAccepted(), nil
}

// source reads r chunk by chunk. The first read or context error ends
// iteration and is kept in err.
type source struct {
	ctx context.Context
	r   io.Reader
	buf []byte
	err error
}

func newSource(ctx context.Context, r io.Reader, cfg Config) (*source, error) {
	if err := cfg.Validate(MinBufferSize); err != nil {
		return nil, err
	}
	cfg = cfg.ApplyDefaults(MinBufferSize)
	return &source{ctx: ctx, r: r, buf: make([]byte, cfg.BufferSize)}, nil
}

// fill reads the next chunk into buf[off:]. It returns the number of bytes
// read and whether the stream has ended.
func (s *source) fill(off int) (int, bool) {
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return 0, true
	}
	n, err := s.r.Read(s.buf[off:])
	if errors.Is(err, io.EOF) {
		return n, true
	}
	if err != nil {
		s.err = fmt.Errorf("stream: read failed: %w", err)
		return n, true
	}
	return n, false
}

func (s *source) bytes() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for {
			n, done := s.fill(0)
			if s.err != nil {
				return
			}
			for _, c := range s.buf[:n] {
				if !yield(c) {
					return
				}
			}
			if done {
				return
			}
		}
	}
}

// runes decodes like ranging over a string: each byte of an invalid
// sequence yields utf8.RuneError. A rune split across chunks is carried
// over to the next read.
func (s *source) runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		carry := 0
		for {
			n, done := s.fill(carry)
			if s.err != nil {
				return
			}
			end := carry + n
			i := 0
			for i < end {
				if !done && !utf8.FullRune(s.buf[i:end]) {
					break
				}
				r, size := utf8.DecodeRune(s.buf[i:end])
				if !yield(r) {
					return
				}
				i += size
			}
			if done {
				return
			}
			carry = copy(s.buf, s.buf[i:end])
		}
	}
}
