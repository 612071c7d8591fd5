package lobby

import (
	"sync"
	"time"

	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/game/engine"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/server/types"
)

// State 大厅状态
type State int

const (
	StateWaiting State = iota // 等待玩家
	StatePlaying              // 游戏中
	StateEnded                // 已结束，等待回收
)

// Lobby 游戏大厅。一个大厅最多承载一局游戏，
// 游戏期间的所有玩家输入都经由它串行送入回合引擎
type Lobby struct {
	ID        string
	CreatedAt time.Time

	mu      sync.RWMutex
	state   State
	players map[string]types.ClientInterface
	order   []string // 按入座顺序
	game    *engine.Game

	maxPlayers int
}

// newLobby 创建大厅
func newLobby(id string, maxPlayers int) *Lobby {
	return &Lobby{
		ID:         id,
		CreatedAt:  time.Now(),
		state:      StateWaiting,
		players:    make(map[string]types.ClientInterface),
		order:      make([]string, 0, maxPlayers),
		maxPlayers: maxPlayers,
	}
}

// Broadcast 广播消息给大厅内所有玩家
func (l *Lobby) Broadcast(msg *protocol.Message) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, c := range l.players {
		c.SendMessage(msg)
	}
}

// SendTo 发送消息给大厅内指定玩家
func (l *Lobby) SendTo(playerID string, msg *protocol.Message) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if c, ok := l.players[playerID]; ok {
		c.SendMessage(msg)
	}
}

// GameFinished 引擎结束回调：大厅回到等待状态，空胜者表示全员离开后的解散
func (l *Lobby) GameFinished(winnerID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.game = nil
	if winnerID == "" && len(l.players) == 0 {
		l.state = StateEnded
		return
	}
	l.state = StateWaiting
}

// Game 当前进行中的游戏，没有则返回 nil
func (l *Lobby) Game() *engine.Game {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.game
}

// State 当前大厅状态
func (l *Lobby) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// PlayerCount 当前人数
func (l *Lobby) PlayerCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.players)
}

// Info 大厅摘要，withPlayers 时附带玩家列表
func (l *Lobby) Info(withPlayers bool) protocol.LobbyInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	info := protocol.LobbyInfo{
		LobbyID:     l.ID,
		PlayerCount: len(l.players),
		MaxPlayers:  l.maxPlayers,
		InGame:      l.state == StatePlaying,
	}
	if withPlayers {
		for _, id := range l.order {
			c := l.players[id]
			info.Players = append(info.Players, protocol.PlayerInfo{ID: c.GetID(), Name: c.GetName()})
		}
	}
	return info
}

// addPlayer 入座，返回 false 表示大厅已满或游戏已开始
func (l *Lobby) addPlayer(c types.ClientInterface) (full, started bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateWaiting {
		return false, true
	}
	if len(l.players) >= l.maxPlayers {
		return true, false
	}

	l.players[c.GetID()] = c
	l.order = append(l.order, c.GetID())
	c.SetLobby(l.ID)
	return false, false
}

// removePlayer 离座，返回仍需通知的游戏实例与大厅是否已空。
// 引擎调用必须发生在锁外，调用方负责
func (l *Lobby) removePlayer(c types.ClientInterface) (g *engine.Game, empty bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := c.GetID()
	if _, ok := l.players[id]; !ok {
		return nil, len(l.players) == 0
	}

	delete(l.players, id)
	for i, oid := range l.order {
		if oid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	c.SetLobby("")

	return l.game, len(l.players) == 0
}

// disband 解散大厅，通知所有玩家并清空席位
func (l *Lobby) disband() {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := protocol.MustNewMessage(protocol.MsgLobbyDestroyed, protocol.LobbyDestroyedPayload{LobbyID: l.ID})
	for _, c := range l.players {
		c.SendMessage(msg)
		c.SetLobby("")
	}
	l.players = make(map[string]types.ClientInterface)
	l.order = nil
	l.state = StateEnded
}

// seats 按入座顺序冻结玩家名单
func (l *Lobby) seats() []engine.Seat {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seats := make([]engine.Seat, 0, len(l.order))
	for _, id := range l.order {
		c := l.players[id]
		seats = append(seats, engine.Seat{ID: c.GetID(), Name: c.GetName()})
	}
	return seats
}

// startGame 冻结名单并创建引擎实例，返回 nil 表示状态不允许开局。
// 引擎的 Start 必须在锁外调用
func (l *Lobby) startGame(recorder engine.ScoreRecorder, minPlayers, initialCards int) (*engine.Game, error) {
	seats := l.seats()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateWaiting {
		return nil, apperrors.ErrGameStarted
	}
	if len(seats) < minPlayers {
		return nil, apperrors.ErrNotEnough
	}

	l.state = StatePlaying
	l.game = engine.NewGame(l, recorder, seats, initialCards)
	return l.game, nil
}
