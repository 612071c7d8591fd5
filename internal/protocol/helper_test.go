package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_EncodeDecode(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgJoinLobby, JoinLobbyPayload{LobbyID: "123456"})
	require.NoError(t, err)

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgJoinLobby, decoded.Type)

	payload, err := ParsePayload[JoinLobbyPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "123456", payload.LobbyID)
}

func TestNewMessage_NilPayload(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(MsgStopUno, nil)
	require.NoError(t, err)
	assert.Nil(t, msg.Payload)

	data, err := msg.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, MsgStopUno, decoded.Type)
	assert.Empty(t, decoded.Payload)
}

func TestDecode_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestParsePayload_TypeMismatch(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(MsgChooseColor, ChooseColorPayload{Color: 2})
	payload, err := ParsePayload[ChooseColorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Color)

	// Payload that is not an object fails to parse into a struct
	bad := &Message{Type: MsgChooseColor, Payload: []byte(`"red"`)}
	_, err = ParsePayload[ChooseColorPayload](bad)
	assert.Error(t, err)
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessage(ErrCodeLobbyFull)
	require.Equal(t, MsgError, msg.Type)

	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeLobbyFull, payload.Code)
	assert.Equal(t, ErrorMessages[ErrCodeLobbyFull], payload.Message)
}

func TestNewErrorMessageWithText(t *testing.T) {
	t.Parallel()

	msg := NewErrorMessageWithText(ErrCodeUnknown, "boom")
	payload, err := ParsePayload[ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, ErrCodeUnknown, payload.Code)
	assert.Equal(t, "boom", payload.Message)
}

func TestErrorMessages_CoverAllCodes(t *testing.T) {
	t.Parallel()

	codes := []int{
		ErrCodeUnknown, ErrCodeInvalidMsg, ErrCodeRateLimit,
		ErrCodeLobbyNotFound, ErrCodeLobbyFull, ErrCodeNotInLobby,
		ErrCodeGameStarted, ErrCodeNotEnough, ErrCodeAlreadyInside,
		ErrCodeGameNotStart, ErrCodeNotYourTurn, ErrCodeInvalidCard,
		ErrCodeInvalidColor, ErrCodeInvalidAction,
	}
	for _, code := range codes {
		assert.NotEmpty(t, ErrorMessages[code], "code %d has no message", code)
	}
}
