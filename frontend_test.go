package ciclo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dangerclosesec/ciclo/language/parser"
)

func newTestFrontend(buf *bytes.Buffer) *Frontend {
	cfg := NewConfig(context.Background())
	cfg.SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return New(cfg)
}

func TestFrontendTokenize(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFrontend(&buf)

	tokens, summary, err := f.Tokenize("x = 5\ny = abc@def\n")
	require.NoError(t, err)
	assert.Equal(t, len(tokens), summary.Total)
	require.Len(t, summary.Illegal, 1)
	assert.Equal(t, "abc@def", summary.Illegal[0].Literal)
	assert.Contains(t, buf.String(), "tokenized source")
}

func TestFrontendParse(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFrontend(&buf)

	program, err := f.Parse("x = 5\ny = 10\nz = x + y\n")
	require.NoError(t, err)
	assert.Len(t, program.Items, 3)

	_, err = f.Parse("while x > 0 { y = x }\n")
	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Errors[0].Line)
}

func TestFrontendValidate(t *testing.T) {
	f := New(nil)

	report, err := f.Validate("for (i = 0; i < 10) { x = i }\n")
	require.NoError(t, err)
	require.True(t, report.HasErrors())
	assert.Contains(t, report.Errors()[0].Message, "fewer than 2")
}

func TestFrontendOptimize(t *testing.T) {
	f := New(nil)

	result, err := f.Optimize("x = a + b\ny = a + b\n")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.SubexpressionsEliminated)
}

func TestFrontendConvert(t *testing.T) {
	f := New(nil)

	conversions, err := f.Convert("x = (a + b) * c\n")
	require.NoError(t, err)
	require.Len(t, conversions, 1)
	assert.Equal(t, "*+abc", conversions[0].Prefix)
	assert.Len(t, conversions[0].Triplets.Triplets, 2)

	_, err = f.Convert("x = (\n")
	assert.Error(t, err)
}

func TestFrontendPrefix(t *testing.T) {
	out, err := New(nil).Prefix("A^B^C")
	require.NoError(t, err)
	assert.Equal(t, "^A^BC", out)
}

func TestFrontendSourceLimit(t *testing.T) {
	cfg := NewConfig(context.Background())
	cfg.SetMaxSourceBytes(8)
	f := New(cfg)

	src := strings.Repeat("x", 9)

	_, _, err := f.Tokenize(src)
	assert.ErrorIs(t, err, ErrSourceTooLarge)
	_, err = f.Parse(src)
	assert.ErrorIs(t, err, ErrSourceTooLarge)
	_, err = f.Validate(src)
	assert.ErrorIs(t, err, ErrSourceTooLarge)
	_, err = f.Optimize(src)
	assert.ErrorIs(t, err, ErrSourceTooLarge)
	_, err = f.Prefix(src)
	assert.ErrorIs(t, err, ErrSourceTooLarge)

	cfg.SetMaxSourceBytes(0)
	_, _, err = f.Tokenize(src)
	assert.NoError(t, err)
}
