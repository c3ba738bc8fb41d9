package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/fauto/auto"
	"github.com/KromDaniel/fauto/dfa"
	"github.com/KromDaniel/fauto/pkg/fauto"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BufferSize != 64*1024 {
		t.Errorf("DefaultConfig().BufferSize = %d, want %d", cfg.BufferSize, 64*1024)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		minBuffer int
		wantErr   bool
	}{
		{
			name:      "zero buffer size is valid",
			cfg:       Config{BufferSize: 0},
			minBuffer: 100,
			wantErr:   false,
		},
		{
			name:      "buffer size equal to minimum",
			cfg:       Config{BufferSize: 100},
			minBuffer: 100,
			wantErr:   false,
		},
		{
			name:      "buffer size larger than minimum",
			cfg:       Config{BufferSize: 1000},
			minBuffer: 100,
			wantErr:   false,
		},
		{
			name:      "buffer size smaller than minimum",
			cfg:       Config{BufferSize: 50},
			minBuffer: 100,
			wantErr:   true,
		},
		{
			name:      "negative buffer size",
			cfg:       Config{BufferSize: -1},
			minBuffer: 100,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.minBuffer)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	tests := []struct {
		name           string
		cfg            Config
		minBuffer      int
		wantBufferSize int
	}{
		{"zero gets default", Config{}, 100, 64 * 1024},
		{"buffer below minimum gets minimum", Config{BufferSize: 50}, 100, 100},
		{"explicit value preserved", Config{BufferSize: 1000}, 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.ApplyDefaults(tt.minBuffer)
			if got.BufferSize != tt.wantBufferSize {
				t.Errorf("ApplyDefaults().BufferSize = %d, want %d", got.BufferSize, tt.wantBufferSize)
			}
		})
	}
}

func TestErrBufferTooSmall(t *testing.T) {
	err := ErrBufferTooSmall{Requested: 2, Minimum: 4}
	assert.Equal(t, "stream: buffer size 2 too small (minimum 4)", err.Error())

	_, got := TestReader(context.Background(), strings.NewReader("a"), fauto.MustBuild("a").Create(), Config{BufferSize: 2})
	var tooSmall ErrBufferTooSmall
	require.True(t, errors.As(got, &tooSmall))
	assert.Equal(t, MinBufferSize, tooSmall.Minimum)
}

func TestReaderMatchesInMemory(t *testing.T) {
	patterns := []string{"(日本|ab)+", "(a|b)*.(c|d)", ".+", "(?i)straße"}
	inputs := []string{"", "ab", "日本ab日本", "日本a", "aac", "ababbbe-d", "\xffx", "STRASSE", "Straße", "a\xe6\x97"}
	readers := []struct {
		name string
		wrap func(io.Reader) io.Reader
		cfg  Config
	}{
		{"default", func(r io.Reader) io.Reader { return r }, DefaultConfig()},
		{"one byte", iotest.OneByteReader, Config{BufferSize: MinBufferSize}},
		{"half", iotest.HalfReader, Config{BufferSize: 5}},
	}

	for _, pattern := range patterns {
		d := fauto.MustBuild(pattern)
		for _, rd := range readers {
			t.Run(pattern+"/"+rd.name, func(t *testing.T) {
				for _, input := range inputs {
					wantTest := d.Create().Test(auto.Runes(input))
					gotTest, err := TestReader(context.Background(), rd.wrap(strings.NewReader(input)), d.Create(), rd.cfg)
					require.NoError(t, err)
					if gotTest != wantTest {
						t.Errorf("TestReader(%q) = %v, want %v", input, gotTest, wantTest)
					}

					wantSearch := d.Create().Search(auto.Runes(input))
					gotSearch, err := SearchReader(context.Background(), rd.wrap(strings.NewReader(input)), d.Create(), rd.cfg)
					require.NoError(t, err)
					if gotSearch != wantSearch {
						t.Errorf("SearchReader(%q) = %v, want %v", input, gotSearch, wantSearch)
					}
				}
			})
		}
	}
}

func TestInvalidUTF8(t *testing.T) {
	d := fauto.MustBuild("..")
	ok, err := TestReader(context.Background(), strings.NewReader("\xff\xfe"), d.Create(), Config{BufferSize: MinBufferSize})
	require.NoError(t, err)
	assert.True(t, ok, "each invalid byte decodes to one rune")
}

// endless yields 'a' forever.
type endless struct{ reads int }

func (e *endless) Read(p []byte) (int, error) {
	e.reads++
	for i := range p {
		p[i] = 'a'
	}
	return len(p), nil
}

func TestSearchStopsEarly(t *testing.T) {
	r := &endless{}
	ok, err := SearchReader(context.Background(), r, fauto.MustBuild("a+").Create(), Config{BufferSize: 16})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, r.reads)

	r = &endless{}
	ok, err = TestReader(context.Background(), r, fauto.MustBuild("b").Create(), Config{BufferSize: 16})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, r.reads)
}

func TestContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := TestReader(ctx, &endless{}, fauto.MustBuild("a*").Create(), DefaultConfig())
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)

	ok, err = SearchByteReader(ctx, strings.NewReader("xy"), xyStar().Create(), DefaultConfig())
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("aaaa"), iotest.ErrReader(boom))

	ok, err := TestReader(context.Background(), r, fauto.MustBuild("a*").Create(), Config{BufferSize: MinBufferSize})
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

// xyStar accepts (xy)* over bytes.
func xyStar() *dfa.Blueprint[int, byte] {
	return dfa.Start[int, byte](0).
		Connect(0, 'x', 1).
		Connect(1, 'y', 0).
		Accept(0).
		MustFinalize()
}

func TestByteReaders(t *testing.T) {
	tests := []struct {
		input  string
		test   bool
		search bool
	}{
		{"", true, true},
		{"xy", true, true},
		{"xyxy", true, true},
		{"xyx", false, true},
		{"yx", false, true},
		{"xz", false, true},
	}

	for _, tt := range tests {
		got, err := TestByteReader(context.Background(), iotest.OneByteReader(strings.NewReader(tt.input)), xyStar().Create(), DefaultConfig())
		require.NoError(t, err)
		if got != tt.test {
			t.Errorf("TestByteReader(%q) = %v, want %v", tt.input, got, tt.test)
		}

		got, err = SearchByteReader(context.Background(), strings.NewReader(tt.input), xyStar().Create(), DefaultConfig())
		require.NoError(t, err)
		if got != tt.search {
			t.Errorf("SearchByteReader(%q) = %v, want %v", tt.input, got, tt.search)
		}
	}
}
