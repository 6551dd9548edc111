package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"

	"github.com/jobguard/jobguard/internal/application/dto"
)

func TestMessageCodec_Registered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	require.NotNil(t, codec)
	assert.Equal(t, CodecName, codec.Name())
}

func TestMessageCodec_EmptyPayloadIsZeroMessage(t *testing.T) {
	var out CheckBlacklistRequest
	require.NoError(t, messageCodec{}.Unmarshal(nil, &out))
	assert.Equal(t, CheckBlacklistRequest{}, out)
}

func TestMessageCodec_Errors(t *testing.T) {
	_, err := messageCodec{}.Marshal(make(chan int))
	assert.ErrorContains(t, err, "failed to encode chan int")

	var out dto.CheckBlacklistResponse
	err = messageCodec{}.Unmarshal([]byte("{"), &out)
	assert.ErrorContains(t, err, "failed to decode *dto.CheckBlacklistResponse")
}
