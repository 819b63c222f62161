package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// CodecName is the content-subtype clients must request ("application/grpc+structpb").
const CodecName = "structpb"

func init() {
	encoding.RegisterCodec(structCodec{})
}

// structCodec sends reporting messages as a google.protobuf.Value built from
// their JSON field names. Decimals travel as strings. Generated protobuf
// messages are passed through unchanged.
type structCodec struct{}

func (structCodec) Marshal(v interface{}) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var fields interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	value, err := structpb.NewValue(fields)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return proto.Marshal(value)
}

func (structCodec) Unmarshal(data []byte, v interface{}) error {
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}

	var value structpb.Value
	if err := proto.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	raw, err := json.Marshal(value.AsInterface())
	if err != nil {
		return fmt.Errorf("decode %T: %w", v, err)
	}
	return json.Unmarshal(raw, v)
}

func (structCodec) Name() string {
	return CodecName
}
