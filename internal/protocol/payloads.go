package protocol

// CardInfo 牌的传输格式，颜色与牌面值沿用引擎的枚举编号
type CardInfo struct {
	Color int `json:"color"`
	Value int `json:"value"`
}

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HandSize int    `json:"hand_size,omitempty"`
	Score    int    `json:"score,omitempty"`
}

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// UsernamePayload 设置用户名请求
type UsernamePayload struct {
	Username string `json:"username"`
}

// JoinLobbyPayload 加入大厅请求
type JoinLobbyPayload struct {
	LobbyID string `json:"lobby_id"`
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	Card CardInfo `json:"card"`
}

// ChooseColorPayload 万能牌选色请求
type ChooseColorPayload struct {
	Color int `json:"color"`
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Limit int `json:"limit"` // 数量，0 表示默认
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// LobbyInfo 大厅摘要信息
type LobbyInfo struct {
	LobbyID     string       `json:"lobby_id"`
	PlayerCount int          `json:"player_count"`
	MaxPlayers  int          `json:"max_players"`
	InGame      bool         `json:"in_game"`
	Players     []PlayerInfo `json:"players,omitempty"`
}

// LobbyCreatedPayload 大厅创建成功响应
type LobbyCreatedPayload struct {
	LobbyID string     `json:"lobby_id"`
	Player  PlayerInfo `json:"player"`
}

// LobbyJoinedPayload 加入大厅成功响应
type LobbyJoinedPayload struct {
	LobbyID string       `json:"lobby_id"`
	Players []PlayerInfo `json:"players"` // 大厅内所有玩家
}

// LobbyDestroyedPayload 大厅解散通知
type LobbyDestroyedPayload struct {
	LobbyID string `json:"lobby_id"`
}

// LobbyListPayload 大厅列表响应
type LobbyListPayload struct {
	Lobbies []LobbyInfo `json:"lobbies"`
}

// PlayerJoinedLobbyPayload 其他玩家加入通知
type PlayerJoinedLobbyPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftLobbyPayload 玩家离开通知
type PlayerLeftLobbyPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// GameStartPayload 游戏开始通知
type GameStartPayload struct {
	Players []PlayerInfo `json:"players"` // 按座位顺序排列
}

// DealHandPayload 发初始手牌通知
type DealHandPayload struct {
	Cards []CardInfo `json:"cards"`
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	PlayerID string   `json:"player_id"`
	Card     CardInfo `json:"card"`
}

// CardValidationPayload 出牌校验结果
type CardValidationPayload struct {
	Valid bool `json:"valid"`
}

// CardDrawnPayload 摸牌通知（只发给摸牌者本人）
type CardDrawnPayload struct {
	Cards []CardInfo `json:"cards"`
}

// HandSizePayload 玩家手牌数通知
type HandSizePayload struct {
	PlayerID string `json:"player_id"`
	Size     int    `json:"size"`
}

// PassTurnPayload 轮转通知
type PassTurnPayload struct {
	PlayerID string `json:"player_id"` // 新的当前玩家
}

// CurrentColorPayload 当前生效颜色通知
type CurrentColorPayload struct {
	Color int `json:"color"`
}

// UnoCallPayload Uno 相关提示，标记谁处于 Uno 待结算状态
type UnoCallPayload struct {
	PlayerID string `json:"player_id"`
}

// PlayerScorePayload 玩家累计得分通知
type PlayerScorePayload struct {
	PlayerID string `json:"player_id"`
	Score    int    `json:"score"`
}

// GameEndPayload 游戏结束通知
type GameEndPayload struct {
	WinnerID   string `json:"winner_id"`
	WinnerName string `json:"winner_name"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	PlayerID    string  `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	TotalGames  int     `json:"total_games"`
	Wins        int     `json:"wins"`
	PenaltySum  int     `json:"penalty_sum"`
	WinRate     float64 `json:"win_rate"`
	CurrentRank int64   `json:"current_rank"` // 0 表示未上榜
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
