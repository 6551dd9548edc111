package grpc

import (
	"encoding/json"
	"fmt"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype JobGuard messages travel under
// (application/grpc+json).
const CodecName = "json"

func init() {
	encoding.RegisterCodec(messageCodec{})
}

// CallOption selects the JobGuard codec on a client call.
func CallOption() grpclib.CallOption {
	return grpclib.CallContentSubtype(CodecName)
}

// messageCodec carries the hand-declared JobGuard messages as JSON. An empty
// payload decodes to the zero message so argument-less RPCs need no body.
type messageCodec struct{}

func (messageCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return data, nil
}

func (messageCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return nil
}

func (messageCodec) Name() string {
	return CodecName
}
