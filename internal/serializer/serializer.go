package serializer

import (
	"errors"
	"fmt"
	"io"
	"reflect"
)

var serializers = make(Serializers)

// ErrDecodeUnsupported is returned by serializers that only render output
var ErrDecodeUnsupported = errors.New("decoding not supported")

type Serializers map[reflect.Type]Serializer

// Serializer is the interface that wraps the basic serialization methods
type Serializer interface {

	// Decode decodes the input into the output
	Decode(input []byte, output any) error

	// Encode encodes the input into the output
	Encode(input any, output io.ByteWriter) error
}

// Register registers a model and its serializer
func Register(model any, serializer Serializer) {
	serializers[reflect.TypeOf(model)] = serializer
}

// Registered reports whether a serializer exists for the type of model
func Registered(model any) bool {
	_, ok := serializers[reflect.TypeOf(model)]
	return ok
}

func Encode(model any, output io.ByteWriter) error {
	if serializer, ok := serializers[reflect.TypeOf(model)]; ok {
		return serializer.Encode(model, output)
	}

	return fmt.Errorf("no serializer found for model %T", model)
}

func Decode(model any, input []byte) error {
	if serializer, ok := serializers[reflect.TypeOf(model)]; ok {
		return serializer.Decode(input, model)
	}

	return fmt.Errorf("no serializer found for model %T", model)
}

func writeString(output io.ByteWriter, s string) error {
	if w, ok := output.(io.StringWriter); ok {
		_, err := w.WriteString(s)
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := output.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}
