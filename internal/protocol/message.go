package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing     MessageType = "ping"     // 心跳 ping
	MsgUsername MessageType = "username" // 设置用户名

	// 大厅操作
	MsgCreateLobby  MessageType = "create_lobby"   // 创建大厅
	MsgJoinLobby    MessageType = "join_lobby"     // 加入大厅
	MsgLeaveLobby   MessageType = "leave_lobby"    // 离开大厅
	MsgGetLobbyList MessageType = "get_lobby_list" // 获取大厅列表
	MsgStartGame    MessageType = "start_game"     // 开始游戏

	// 游戏操作
	MsgPlayCard    MessageType = "play_card"    // 出牌
	MsgDrawCard    MessageType = "draw_card"    // 摸牌
	MsgChooseColor MessageType = "choose_color" // 万能牌选色
	MsgUno         MessageType = "uno"          // 喊 Uno
	MsgCounterUno  MessageType = "counter_uno"  // 反制 Uno

	// 排行榜
	MsgGetStats       MessageType = "get_stats"       // 获取个人统计
	MsgGetLeaderboard MessageType = "get_leaderboard" // 获取排行榜
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功，下发玩家 ID
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 大厅相关
	MsgLobbyCreated      MessageType = "lobby_created"       // 大厅创建成功
	MsgLobbyJoined       MessageType = "lobby_joined"        // 加入大厅成功
	MsgLobbyDestroyed    MessageType = "lobby_destroyed"     // 大厅已解散
	MsgLobbyList         MessageType = "lobby_list"          // 大厅列表
	MsgPlayerJoinedLobby MessageType = "player_joined_lobby" // 其他玩家加入
	MsgPlayerLeftLobby   MessageType = "player_left_lobby"   // 玩家离开

	// 游戏流程
	MsgGameStart      MessageType = "game_start"       // 游戏开始
	MsgDealHand       MessageType = "deal_hand"        // 发初始手牌
	MsgCardPlayed     MessageType = "card_played"      // 有人出牌
	MsgCardValidation MessageType = "card_validation"  // 出牌校验结果
	MsgCardDrawn      MessageType = "card_drawn"       // 你摸到了一张牌
	MsgHandSize       MessageType = "hand_size"        // 玩家手牌数变化
	MsgPassTurn       MessageType = "pass_turn"        // 轮到某玩家
	MsgCurrentColor   MessageType = "current_color"    // 当前生效颜色
	MsgHaveToDrawCard MessageType = "have_to_draw"     // 你无牌可出，必须摸牌
	MsgUnoCall        MessageType = "uno_call"         // 提示当前玩家喊 Uno
	MsgStopUno        MessageType = "stop_uno"         // Uno 已结算，停止提示
	MsgCounterUnoCall MessageType = "counter_uno_call" // 提示其他玩家可反制 Uno
	MsgStopCounterUno MessageType = "stop_counter_uno" // 反制窗口关闭
	MsgPlayerScore    MessageType = "player_score"     // 玩家累计得分
	MsgGameEnd        MessageType = "game_end"         // 游戏结束

	// 排行榜
	MsgStatsResult       MessageType = "stats_result"       // 个人统计结果
	MsgLeaderboardResult MessageType = "leaderboard_result" // 排行榜结果

	// 错误
	MsgError MessageType = "error" // 错误消息
)
