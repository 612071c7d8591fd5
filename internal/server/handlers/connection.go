package handlers

import (
	"strings"
	"time"

	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/server/types"
)

const maxUsernameLength = 20

// handlePing 处理心跳
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		payload = &protocol.PingPayload{}
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleUsername 处理设置用户名
func (h *Handler) handleUsername(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.UsernamePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	name := strings.TrimSpace(payload.Username)
	if name == "" || len([]rune(name)) > maxUsernameLength {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	client.SetName(name)
	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.GetID(),
		PlayerName: name,
	}))
}
