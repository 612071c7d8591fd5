package protocol

// 错误码
const (
	ErrCodeUnknown       = 1000
	ErrCodeInvalidMsg    = 1001
	ErrCodeRateLimit     = 1002 // 速率限制
	ErrCodeLobbyNotFound = 2001
	ErrCodeLobbyFull     = 2002
	ErrCodeNotInLobby    = 2003
	ErrCodeGameStarted   = 2004 // 游戏已开始
	ErrCodeNotEnough     = 2005 // 人数不足
	ErrCodeAlreadyInside = 2006 // 已在大厅中
	ErrCodeGameNotStart  = 3001
	ErrCodeNotYourTurn   = 3002
	ErrCodeInvalidCard   = 3003
	ErrCodeInvalidColor  = 3004
	ErrCodeInvalidAction = 3005 // 当前状态不允许该操作
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:       "未知错误",
	ErrCodeInvalidMsg:    "无效的消息格式",
	ErrCodeRateLimit:     "请求过于频繁",
	ErrCodeLobbyNotFound: "大厅不存在",
	ErrCodeLobbyFull:     "大厅已满",
	ErrCodeNotInLobby:    "您不在大厅中",
	ErrCodeGameStarted:   "游戏已开始",
	ErrCodeNotEnough:     "玩家人数不足",
	ErrCodeAlreadyInside: "您已在大厅中",
	ErrCodeGameNotStart:  "游戏尚未开始",
	ErrCodeNotYourTurn:   "还没轮到您",
	ErrCodeInvalidCard:   "这张牌不能出",
	ErrCodeInvalidColor:  "无效的颜色",
	ErrCodeInvalidAction: "当前状态不允许该操作",
}
