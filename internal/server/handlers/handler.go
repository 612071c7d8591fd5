package handlers

import (
	"errors"
	"log"

	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/server/lobby"
	"github.com/palemoky/uno-online/internal/server/storage"
	"github.com/palemoky/uno-online/internal/server/types"
)

// Handler 消息处理器
type Handler struct {
	lobbies     *lobby.Manager
	leaderboard *storage.LeaderboardManager
}

// NewHandler 创建处理器
func NewHandler(lobbies *lobby.Manager, leaderboard *storage.LeaderboardManager) *Handler {
	return &Handler{
		lobbies:     lobbies,
		leaderboard: leaderboard,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)
	case protocol.MsgUsername:
		h.handleUsername(client, msg)

	// 大厅操作
	case protocol.MsgCreateLobby:
		h.handleCreateLobby(client)
	case protocol.MsgJoinLobby:
		h.handleJoinLobby(client, msg)
	case protocol.MsgLeaveLobby:
		h.handleLeaveLobby(client)
	case protocol.MsgGetLobbyList:
		h.handleGetLobbyList(client)
	case protocol.MsgStartGame:
		h.handleStartGame(client)

	// 游戏操作
	case protocol.MsgPlayCard:
		h.handlePlayCard(client, msg)
	case protocol.MsgDrawCard:
		h.handleDrawCard(client)
	case protocol.MsgChooseColor:
		h.handleChooseColor(client, msg)
	case protocol.MsgUno:
		h.handleUno(client)
	case protocol.MsgCounterUno:
		h.handleCounterUno(client)

	// 排行榜操作
	case protocol.MsgGetStats:
		h.handleGetStats(client)
	case protocol.MsgGetLeaderboard:
		h.handleGetLeaderboard(client, msg)

	default:
		log.Printf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// sendError 把错误翻译成协议错误消息发给客户端
func sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessage(gameErr.Code))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
