package handlers

import (
	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/game/engine"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/server/types"
)

// gameOf 找到客户端所在大厅的当前对局
func (h *Handler) gameOf(client types.ClientInterface) (*engine.Game, error) {
	l := h.lobbies.Get(client.GetLobby())
	if l == nil {
		return nil, apperrors.ErrNotInLobby
	}
	g := l.Game()
	if g == nil {
		return nil, apperrors.ErrGameNotStart
	}
	return g, nil
}

// handlePlayCard 处理出牌
func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	g, err := h.gameOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	// 出牌校验失败时引擎已回复 card_validation，这里无需重复报错
	_ = g.HandlePlayCard(client.GetID(), protocol.InfoToCard(payload.Card))
}

// handleDrawCard 处理摸牌
func (h *Handler) handleDrawCard(client types.ClientInterface) {
	g, err := h.gameOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := g.HandleDrawCard(client.GetID()); err != nil {
		sendError(client, err)
	}
}

// handleChooseColor 处理万能牌选色
func (h *Handler) handleChooseColor(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ChooseColorPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	g, err := h.gameOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := g.HandleChooseColor(client.GetID(), card.Color(payload.Color)); err != nil {
		sendError(client, err)
	}
}

// handleUno 处理喊 Uno
func (h *Handler) handleUno(client types.ClientInterface) {
	g, err := h.gameOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := g.HandleUno(client.GetID()); err != nil {
		sendError(client, err)
	}
}

// handleCounterUno 处理反制 Uno
func (h *Handler) handleCounterUno(client types.ClientInterface) {
	g, err := h.gameOf(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := g.HandleCounterUno(client.GetID()); err != nil {
		sendError(client, err)
	}
}
