package serializer_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/dangerclosesec/ciclo/internal/serializer"
	"github.com/dangerclosesec/ciclo/language/codegen"
	"github.com/dangerclosesec/ciclo/language/lexer"
	"github.com/dangerclosesec/ciclo/language/optimizer"
	"github.com/dangerclosesec/ciclo/language/parser"
	"github.com/dangerclosesec/ciclo/language/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ExampleModal struct {
	Name string `json:"name"`
}

type ExampleSerializer struct{}

func (s *ExampleSerializer) Decode(input []byte, output any) error {
	output.(*ExampleModal).Name = string(input)
	return nil
}

func (s *ExampleSerializer) Encode(input any, output io.ByteWriter) error {
	for _, b := range []byte(input.(*ExampleModal).Name) {
		output.WriteByte(b)
	}
	return nil
}

func init() {
	serializer.Register(&ExampleModal{}, &ExampleSerializer{})
}

func TestRegisteredSerializer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, serializer.Encode(&ExampleModal{Name: "John Doe"}, &buf))
	assert.Equal(t, "John Doe", buf.String())

	m := &ExampleModal{}
	require.NoError(t, serializer.Decode(m, []byte("Jane")))
	assert.Equal(t, "Jane", m.Name)
}

func TestUnregisteredModel(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorContains(t, serializer.Encode(42, &buf), "no serializer found for model int")
	assert.False(t, serializer.Registered(42))
}

func TestEncodeTokens(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, serializer.Encode(lexer.Tokenize("x = 5 @"), &buf))

	out := buf.String()
	assert.Contains(t, out, "'x' (line 1, pos 0) [IDENTIFIER_VAR]")
	assert.Contains(t, out, "Total tokens: 4")
	assert.Contains(t, out, "Lexical errors: 1")
	assert.Contains(t, out, "line 1, column 6: invalid token '@'")
}

func TestEncodeProgram(t *testing.T) {
	program, err := parser.ParseSource("z = 1\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, serializer.Encode(program, &buf))
	assert.Equal(t, "Program\n  Decl: z\n    Literal(INTEGER): 1\n", buf.String())
}

func TestEncodeReport(t *testing.T) {
	report := semantic.Validate(lexer.Tokenize("x = 5\n"))

	var buf bytes.Buffer
	require.NoError(t, serializer.Encode(report, &buf))
	assert.Equal(t, report.String(), buf.String())
}

func TestEncodeOptimization(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, serializer.Encode(optimizer.Optimize("x=1\n"), &buf))
	assert.Contains(t, buf.String(), "=== OPTIMIZATION COMPLETE ===")
	assert.Contains(t, buf.String(), "\nx = 1\n")
}

func TestEncodeConversions(t *testing.T) {
	program, err := parser.ParseSource("x = a + b\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, serializer.Encode(codegen.NewConverter().ConvertAll(program), &buf))
	assert.Contains(t, buf.String(), "Prefix: +ab\n")
	assert.Contains(t, buf.String(), "1: (+, a, b, t1)\n")

	buf.Reset()
	require.NoError(t, serializer.Encode([]codegen.Conversion{}, &buf))
	assert.Equal(t, "No arithmetic expressions found.\n", buf.String())
}

func TestTextSerializersDoNotDecode(t *testing.T) {
	err := serializer.Decode(&semantic.Report{}, []byte("report"))
	assert.True(t, errors.Is(err, serializer.ErrDecodeUnsupported))
}
