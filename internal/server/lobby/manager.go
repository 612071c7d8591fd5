package lobby

import (
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/config"
	"github.com/palemoky/uno-online/internal/game/engine"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/server/types"
)

const (
	lobbyIDLength = 6            // 大厅号长度
	lobbyIDChars  = "0123456789" // 大厅号字符集
)

// IDAllocator 大厅号分配器，由创建方注入，便于测试与替换策略
type IDAllocator func() string

// Manager 大厅管理器
type Manager struct {
	game     config.GameConfig
	recorder engine.ScoreRecorder
	newID    IDAllocator

	lobbies map[string]*Lobby
	mu      sync.RWMutex
}

// NewManager 创建大厅管理器，idAlloc 为 nil 时使用默认的随机数字大厅号
func NewManager(game config.GameConfig, recorder engine.ScoreRecorder, idAlloc IDAllocator) *Manager {
	m := &Manager{
		game:     game,
		recorder: recorder,
		newID:    idAlloc,
		lobbies:  make(map[string]*Lobby),
	}
	if m.newID == nil {
		m.newID = randomLobbyID
	}

	// 启动大厅清理协程
	go m.cleanupLoop()

	return m
}

// randomLobbyID 生成随机数字大厅号
func randomLobbyID() string {
	id := make([]byte, lobbyIDLength)
	for i := range id {
		id[i] = lobbyIDChars[rand.IntN(len(lobbyIDChars))]
	}
	return string(id)
}

// Create 创建大厅并让创建者入座
func (m *Manager) Create(client types.ClientInterface) (*Lobby, error) {
	if client.GetLobby() != "" {
		return nil, apperrors.ErrAlreadyInside
	}

	m.mu.Lock()
	// 生成唯一大厅号
	var id string
	for {
		id = m.newID()
		if _, exists := m.lobbies[id]; !exists {
			break
		}
	}

	l := newLobby(id, m.game.MaxPlayers)
	m.lobbies[id] = l
	m.mu.Unlock()

	l.addPlayer(client)

	log.Printf("🏠 大厅 %s 已创建，玩家 %s", id, client.GetName())
	return l, nil
}

// Join 加入大厅，成功后通知厅内其他玩家
func (m *Manager) Join(client types.ClientInterface, id string) (*Lobby, error) {
	if client.GetLobby() != "" {
		return nil, apperrors.ErrAlreadyInside
	}

	l := m.Get(id)
	if l == nil {
		return nil, apperrors.ErrLobbyNotFound
	}

	full, started := l.addPlayer(client)
	if started {
		return nil, apperrors.ErrGameStarted
	}
	if full {
		return nil, apperrors.ErrLobbyFull
	}

	// 通知其他玩家
	joined := protocol.MustNewMessage(protocol.MsgPlayerJoinedLobby, protocol.PlayerJoinedLobbyPayload{
		Player: protocol.PlayerInfo{ID: client.GetID(), Name: client.GetName()},
	})
	l.mu.RLock()
	for pid, c := range l.players {
		if pid != client.GetID() {
			c.SendMessage(joined)
		}
	}
	l.mu.RUnlock()

	log.Printf("🚪 玩家 %s 加入大厅 %s（%d 人）", client.GetName(), id, l.PlayerCount())
	return l, nil
}

// Leave 离开大厅；游戏中离开等价于掉线，由引擎移除该玩家
func (m *Manager) Leave(client types.ClientInterface) error {
	l := m.Get(client.GetLobby())
	if l == nil {
		return apperrors.ErrNotInLobby
	}

	g, empty := l.removePlayer(client)

	// 引擎调用必须在大厅锁外进行
	if g != nil {
		g.RemovePlayer(client.GetID())
	}

	l.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerLeftLobby, protocol.PlayerLeftLobbyPayload{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
	}))

	if empty {
		m.destroy(l.ID)
	}

	log.Printf("👋 玩家 %s 离开大厅 %s", client.GetName(), l.ID)
	return nil
}

// HandleDisconnect 连接断开时的清理，行为与主动离开一致
func (m *Manager) HandleDisconnect(client types.ClientInterface) {
	if client.GetLobby() == "" {
		return
	}
	_ = m.Leave(client)
}

// StartGame 在大厅内开局，名单在此刻冻结
func (m *Manager) StartGame(client types.ClientInterface) error {
	l := m.Get(client.GetLobby())
	if l == nil {
		return apperrors.ErrNotInLobby
	}

	g, err := l.startGame(m.recorder, m.game.MinPlayers, m.game.InitialCards)
	if err != nil {
		return err
	}

	// Start 会立即广播开局消息，必须在大厅锁外调用
	g.Start()
	return nil
}

// Get 按大厅号查找
func (m *Manager) Get(id string) *Lobby {
	if id == "" {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lobbies[id]
}

// List 所有可加入大厅的摘要列表
func (m *Manager) List() []protocol.LobbyInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]protocol.LobbyInfo, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		infos = append(infos, l.Info(false))
	}
	return infos
}

// ActiveGamesCount 进行中的对局数
func (m *Manager) ActiveGamesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, l := range m.lobbies {
		if l.State() == StatePlaying {
			count++
		}
	}
	return count
}

// destroy 移除大厅
func (m *Manager) destroy(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lobbies[id]; ok {
		delete(m.lobbies, id)
		log.Printf("🧹 大厅 %s 已解散", id)
	}
}

// cleanupLoop 定期回收空大厅与超时的等待大厅
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for id, l := range m.lobbies {
			if l.PlayerCount() == 0 || l.State() == StateEnded {
				delete(m.lobbies, id)
				log.Printf("🧹 回收大厅 %s", id)
				continue
			}
			// 等待超时的大厅整体解散，玩家被送回大厅列表
			if l.State() == StateWaiting && now.Sub(l.CreatedAt) > m.game.LobbyTimeoutDuration() {
				l.disband()
				delete(m.lobbies, id)
				log.Printf("⏰ 大厅 %s 等待超时，已解散", id)
			}
		}
		m.mu.Unlock()
	}
}
