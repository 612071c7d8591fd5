package handlers

import (
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/server/types"
)

// handleCreateLobby 处理创建大厅
func (h *Handler) handleCreateLobby(client types.ClientInterface) {
	l, err := h.lobbies.Create(client)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgLobbyCreated, protocol.LobbyCreatedPayload{
		LobbyID: l.ID,
		Player:  protocol.PlayerInfo{ID: client.GetID(), Name: client.GetName()},
	}))
}

// handleJoinLobby 处理加入大厅
func (h *Handler) handleJoinLobby(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinLobbyPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	l, err := h.lobbies.Join(client, payload.LobbyID)
	if err != nil {
		sendError(client, err)
		return
	}

	info := l.Info(true)
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLobbyJoined, protocol.LobbyJoinedPayload{
		LobbyID: l.ID,
		Players: info.Players,
	}))
}

// handleLeaveLobby 处理离开大厅
func (h *Handler) handleLeaveLobby(client types.ClientInterface) {
	if err := h.lobbies.Leave(client); err != nil {
		sendError(client, err)
	}
}

// handleGetLobbyList 获取大厅列表
func (h *Handler) handleGetLobbyList(client types.ClientInterface) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLobbyList, protocol.LobbyListPayload{
		Lobbies: h.lobbies.List(),
	}))
}

// handleStartGame 处理开始游戏
func (h *Handler) handleStartGame(client types.ClientInterface) {
	if err := h.lobbies.StartGame(client); err != nil {
		sendError(client, err)
	}
}
