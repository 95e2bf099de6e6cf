package types

import (
	"encoding/json"
	fmt "fmt"

	"cosmossdk.io/collections/codec"
)

// JSONValue returns a collections value codec persisting T as JSON. State
// types in this module are hand-written Go structs, so JSON serves as both the
// storage and the genesis encoding.
func JSONValue[T any](name string) codec.ValueCodec[T] {
	return jsonValueCodec[T]{name: name}
}

type jsonValueCodec[T any] struct {
	name string
}

var (
	_ codec.ValueCodec[Pool]   = jsonValueCodec[Pool]{}
	_ codec.ValueCodec[Params] = jsonValueCodec[Params]{}
)

func (c jsonValueCodec[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c jsonValueCodec[T]) Decode(b []byte) (T, error) {
	var value T
	if err := json.Unmarshal(b, &value); err != nil {
		return value, fmt.Errorf("decoding %s value: %w", c.name, err)
	}
	return value, nil
}

func (c jsonValueCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c jsonValueCodec[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (c jsonValueCodec[T]) Stringify(value T) string {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

func (c jsonValueCodec[T]) ValueType() string {
	return c.name
}
