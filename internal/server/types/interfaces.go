package types

import (
	"github.com/palemoky/uno-online/internal/protocol"
)

// ClientInterface 客户端接口，大厅与处理器通过它与连接层交互，
// 测试中用轻量 mock 替代真实 WebSocket 连接
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetLobby() string
	SetLobby(id string)
	SendMessage(msg *protocol.Message)
	Close()
}
