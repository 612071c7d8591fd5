package apperrors

import (
	"github.com/palemoky/uno-online/internal/protocol"
)

// GameError 游戏错误（大厅和引擎共享），携带协议错误码
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrLobbyNotFound = &GameError{Code: protocol.ErrCodeLobbyNotFound, Message: "大厅不存在"}
	ErrLobbyFull     = &GameError{Code: protocol.ErrCodeLobbyFull, Message: "大厅已满"}
	ErrNotInLobby    = &GameError{Code: protocol.ErrCodeNotInLobby, Message: "您不在大厅中"}
	ErrGameStarted   = &GameError{Code: protocol.ErrCodeGameStarted, Message: "游戏已开始"}
	ErrNotEnough     = &GameError{Code: protocol.ErrCodeNotEnough, Message: "玩家人数不足"}
	ErrAlreadyInside = &GameError{Code: protocol.ErrCodeAlreadyInside, Message: "您已在大厅中"}
	ErrGameNotStart  = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "游戏尚未开始"}
	ErrNotYourTurn   = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrInvalidCard   = &GameError{Code: protocol.ErrCodeInvalidCard, Message: "这张牌不能出"}
	ErrInvalidColor  = &GameError{Code: protocol.ErrCodeInvalidColor, Message: "无效的颜色"}
	ErrInvalidAction = &GameError{Code: protocol.ErrCodeInvalidAction, Message: "当前状态不允许该操作"}
)
