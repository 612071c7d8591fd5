package engine

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/protocol"
)

// DefaultInitialCards 默认初始手牌数
const DefaultInitialCards = 7

// LobbyContext 引擎对外的投递通道，由大厅层实现。
// 引擎的每次状态迁移都以推送消息的方式对外可见，外部永远不需要轮询
type LobbyContext interface {
	Broadcast(msg *protocol.Message)
	SendTo(playerID string, msg *protocol.Message)
	// GameFinished 游戏结束回调，winnerID 为空表示所有人离开后的静默解散
	GameFinished(winnerID string)
}

// ScoreRecorder 结算时记录成绩，可为 nil（无持久化时游戏照常进行）
type ScoreRecorder interface {
	RecordRound(ctx context.Context, playerID, playerName string, penalty int, won bool) error
}

// Seat 开局时冻结的座位信息
type Seat struct {
	ID   string
	Name string
}

// Game 回合引擎的聚合根。一局游戏只有一个写者：
// 所有玩家输入都经由大厅串行进入，内部用一把锁保证互斥
type Game struct {
	mu sync.Mutex

	lobby    LobbyContext
	recorder ScoreRecorder

	players      []*Player
	deck         *card.Deck
	discard      *card.Deck
	turnIndex    int
	reverseTurn  bool
	currentColor card.Color

	// Uno 待结算期间记住打出的那张牌的牌面值，结算时再执行其效果
	pendingValue card.Value
	hasPending   bool

	initialCards int
	finished     bool
	winnerID     string
}

// NewGame 创建一局游戏，seats 是开局瞬间冻结的玩家名单
func NewGame(lobby LobbyContext, recorder ScoreRecorder, seats []Seat, initialCards int) *Game {
	if initialCards <= 0 {
		initialCards = DefaultInitialCards
	}

	players := make([]*Player, len(seats))
	for i, s := range seats {
		players[i] = &Player{ID: s.ID, Name: s.Name, State: WaitingToPlay}
	}

	return &Game{
		lobby:        lobby,
		recorder:     recorder,
		players:      players,
		deck:         card.Full(),
		discard:      card.Empty(),
		initialCards: initialCards,
	}
}

// Start 洗牌、发牌、翻出首张数字牌并随机确定先手
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.deck.Shuffle()

	// 发初始手牌
	for range g.initialCards {
		for _, p := range g.players {
			p.Hand = append(p.Hand, g.drawOne())
		}
	}

	// 翻首张弃牌：功能牌放回牌堆底重翻，直到翻出数字牌
	for {
		c := g.drawOne()
		if c.Value.IsNumber() {
			g.discard.Add(c)
			g.currentColor = c.Color
			break
		}
		g.deck.Insert(c)
	}

	// 广播开局信息
	infos := make([]protocol.PlayerInfo, len(g.players))
	for i, p := range g.players {
		infos[i] = protocol.PlayerInfo{ID: p.ID, Name: p.Name, HandSize: len(p.Hand)}
	}
	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
		Players: infos,
	}))

	for _, p := range g.players {
		g.lobby.SendTo(p.ID, protocol.MustNewMessage(protocol.MsgDealHand, protocol.DealHandPayload{
			Cards: protocol.CardsToInfos(p.Hand),
		}))
	}

	top, _ := g.discard.Top()
	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		Card: protocol.CardToInfo(top),
	}))
	g.broadcastCurrentColor()

	// 随机先手
	g.activateTurn(rand.IntN(len(g.players)))

	log.Printf("🎮 游戏开始：%d 名玩家，首张 %s，先手 %s",
		len(g.players), top, g.players[g.turnIndex].Name)
}

// Finished 游戏是否结束，结束时返回胜者 ID（静默解散时为空）
func (g *Game) Finished() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winnerID, g.finished
}

// --- 出牌 ---

// HandlePlayCard 校验并执行一次出牌。
// 非法出牌只回发 card_validation(false)，不改动任何状态
func (g *Game) HandlePlayCard(playerID string, c card.Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return apperrors.ErrGameNotStart
	}

	p := g.playerByID(playerID)
	if p == nil {
		return apperrors.ErrNotInLobby
	}

	if !p.IsPlaying || p.State != PlayingCard {
		g.sendValidation(playerID, false)
		return apperrors.ErrNotYourTurn
	}

	top, _ := g.discard.Top()
	if !p.HasCard(c) || !c.CanBePlayed(top, g.currentColor) {
		g.sendValidation(playerID, false)
		return apperrors.ErrInvalidCard
	}

	p.RemoveCard(c)
	g.discard.Add(c)
	if !c.Value.IsWild() {
		// 万能牌的生效颜色由之后的选色决定
		g.currentColor = c.Color
		g.broadcastCurrentColor()
	}

	g.sendValidation(playerID, true)
	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID: p.ID,
		Card:     protocol.CardToInfo(c),
	}))
	g.broadcastHandSize(p)

	// 打空手牌立即获胜，优先于一切待结算子状态
	if len(p.Hand) == 0 {
		g.endGame(p)
		return nil
	}

	// 只剩一张牌：进入 Uno 待结算，回合冻结
	if len(p.Hand) == 1 {
		g.enterUnoPending(p, c.Value)
		return nil
	}

	switch c.Value {
	case card.Wild:
		p.setState(ChoosingColorWild)
	case card.WildFour:
		p.setState(ChoosingColorWildFour)
	default:
		g.resolveTurn(c.Value)
	}
	return nil
}

// enterUnoPending 打到只剩一张牌后的状态迁移，牌的效果留到结算时执行
func (g *Game) enterUnoPending(p *Player, v card.Value) {
	g.pendingValue = v
	g.hasPending = true

	switch v {
	case card.Wild:
		p.setState(ChoosingColorWildUno)
	case card.WildFour:
		p.setState(ChoosingColorWildFourUno)
	default:
		p.setState(UnoPending)
	}

	g.lobby.SendTo(p.ID, protocol.MustNewMessage(protocol.MsgUnoCall, protocol.UnoCallPayload{PlayerID: p.ID}))
	for _, other := range g.players {
		if other.ID != p.ID {
			g.lobby.SendTo(other.ID, protocol.MustNewMessage(protocol.MsgCounterUnoCall, protocol.UnoCallPayload{PlayerID: p.ID}))
		}
	}
}

// --- 摸牌 ---

// HandleDrawCard 无牌可出时的主动摸牌
func (g *Game) HandleDrawCard(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return apperrors.ErrGameNotStart
	}

	p := g.playerByID(playerID)
	if p == nil {
		return apperrors.ErrNotInLobby
	}
	if !p.IsPlaying || p.State != DrawingCard {
		return apperrors.ErrInvalidAction
	}

	c := g.drawOne()
	p.Hand = append(p.Hand, c)
	g.lobby.SendTo(p.ID, protocol.MustNewMessage(protocol.MsgCardDrawn, protocol.CardDrawnPayload{
		Cards: []protocol.CardInfo{protocol.CardToInfo(c)},
	}))
	g.broadcastHandSize(p)

	// 只有主动摸牌检查即时可出；被罚摸的牌从不触发该检查
	top, _ := g.discard.Top()
	if c.CanBePlayed(top, g.currentColor) {
		p.setState(PlayingCard)
		return nil
	}

	g.activateTurn(g.nextPlayerIndex())
	return nil
}

// --- 选色 ---

// HandleChooseColor 万能牌的第二步：宣告生效颜色
func (g *Game) HandleChooseColor(playerID string, color card.Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return apperrors.ErrGameNotStart
	}

	p := g.playerByID(playerID)
	if p == nil {
		return apperrors.ErrNotInLobby
	}
	if !p.IsPlaying || !p.State.isChoosingColor() {
		return apperrors.ErrInvalidAction
	}
	if !color.IsValid() {
		return apperrors.ErrInvalidColor
	}

	g.currentColor = color
	g.broadcastCurrentColor()

	switch p.State {
	case ChoosingColorWild:
		g.resolveTurn(card.Wild)
	case ChoosingColorWildFour:
		g.resolveTurn(card.WildFour)
	default:
		// 复合状态：还要等喊 Uno（或被反制）才结算
		p.ColorChosen = true
		if p.UnoDone {
			g.resolvePending()
		}
	}
	return nil
}

// --- Uno / 反制 ---

// HandleUno 当前玩家喊 Uno
func (g *Game) HandleUno(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return apperrors.ErrGameNotStart
	}

	p := g.playerByID(playerID)
	if p == nil {
		return apperrors.ErrNotInLobby
	}
	if !p.IsPlaying || !p.State.isUnoPending() || p.UnoDone {
		return apperrors.ErrInvalidAction
	}

	log.Printf("🃏 %s 喊了 Uno", p.Name)
	g.broadcastStopUno()

	if p.State == UnoPending {
		g.resolvePending()
		return nil
	}

	p.UnoDone = true
	if p.ColorChosen {
		g.resolvePending()
	}
	return nil
}

// HandleCounterUno 其他玩家抓住未喊 Uno 的当前玩家：
// 罚摸两张后按 Uno 已喊处理，避免回合死锁
func (g *Game) HandleCounterUno(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return apperrors.ErrGameNotStart
	}

	caller := g.playerByID(playerID)
	if caller == nil {
		return apperrors.ErrNotInLobby
	}

	active := g.players[g.turnIndex]
	if caller.ID == active.ID || !active.State.isUnoPending() || active.UnoDone {
		return apperrors.ErrInvalidAction
	}

	log.Printf("⚡ %s 反制了 %s 的 Uno，罚摸 2 张", caller.Name, active.Name)
	g.forceDraw(active, 2)
	g.broadcastStopUno()

	if active.State == UnoPending {
		g.resolvePending()
		return nil
	}

	active.UnoDone = true
	if active.ColorChosen {
		g.resolvePending()
	}
	return nil
}

// broadcastStopUno 通知所有人停止 Uno / 反制征集
func (g *Game) broadcastStopUno() {
	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgStopUno, nil))
	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgStopCounterUno, nil))
}

// --- 回合推进 ---

// resolvePending 结算被 Uno 冻结的回合
func (g *Game) resolvePending() {
	if !g.hasPending {
		return
	}
	g.hasPending = false
	g.resolveTurn(g.pendingValue)
}

// resolveTurn 按刚打出（且已完成选色）的牌面值推进回合。
// 规则：两人局的转向等价于跳过（显式规则，见 DESIGN.md）
func (g *Game) resolveTurn(v card.Value) {
	switch v {
	case card.Skip:
		g.activateTurn(g.skipPlayerIndex())
	case card.Reverse:
		if len(g.players) == 2 {
			g.activateTurn(g.skipPlayerIndex())
			return
		}
		g.reverseTurn = !g.reverseTurn
		g.activateTurn(g.nextPlayerIndex())
	case card.DrawTwo:
		next := g.nextPlayerIndex()
		g.forceDraw(g.players[next], 2)
		g.activateTurn(g.nextIndexFrom(next))
	case card.WildFour:
		next := g.nextPlayerIndex()
		g.forceDraw(g.players[next], 4)
		g.activateTurn(g.nextIndexFrom(next))
	default:
		g.activateTurn(g.nextPlayerIndex())
	}
}

// activateTurn 把回合交给 idx 号玩家：
// 其余玩家复位为等待，新玩家按能否出牌进入出牌或摸牌状态
func (g *Game) activateTurn(idx int) {
	g.turnIndex = idx
	for _, p := range g.players {
		p.setState(WaitingToPlay)
		p.IsPlaying = false
	}

	active := g.players[idx]
	active.IsPlaying = true

	top, _ := g.discard.Top()
	if active.CanPlay(top, g.currentColor) {
		active.setState(PlayingCard)
	} else {
		active.setState(DrawingCard)
		g.lobby.SendTo(active.ID, protocol.MustNewMessage(protocol.MsgHaveToDrawCard, nil))
	}

	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgPassTurn, protocol.PassTurnPayload{
		PlayerID: active.ID,
	}))
}

// nextIndexFrom 从 i 出发按当前方向走一步
func (g *Game) nextIndexFrom(i int) int {
	n := len(g.players)
	if g.reverseTurn {
		return (i - 1 + n) % n
	}
	return (i + 1) % n
}

// nextPlayerIndex 下一个玩家的下标，兼容任意方向与单人残局
func (g *Game) nextPlayerIndex() int {
	return g.nextIndexFrom(g.turnIndex)
}

// skipPlayerIndex 跳过一名玩家后的下标
func (g *Game) skipPlayerIndex() int {
	return g.nextIndexFrom(g.nextPlayerIndex())
}

// --- 摸牌与牌堆 ---

// drawOne 从牌堆摸一张，牌堆耗尽时自动从弃牌堆回收重洗。
// 牌堆与弃牌堆同时耗尽违反 108 张守恒，属于逻辑 bug
func (g *Game) drawOne() card.Card {
	if g.deck.IsEmpty() {
		g.reshuffleFromDiscard()
	}
	c, ok := g.deck.Draw()
	if !ok {
		panic("uno: 牌堆与弃牌堆同时耗尽")
	}
	return c
}

// reshuffleFromDiscard 保留弃牌堆顶，其余回收进牌堆重洗
func (g *Game) reshuffleFromDiscard() {
	top, ok := g.discard.Draw()
	for {
		c, more := g.discard.Draw()
		if !more {
			break
		}
		g.deck.Insert(c)
	}
	if ok {
		g.discard.Add(top)
	}
	g.deck.Shuffle()
	log.Printf("🔄 牌堆耗尽，弃牌堆回收重洗（%d 张）", g.deck.Size())
}

// forceDraw 被动罚摸 n 张（+2 / 变色+4 / Uno 反制），不触发可出牌检查
func (g *Game) forceDraw(p *Player, n int) {
	cards := make([]protocol.CardInfo, 0, n)
	for range n {
		c := g.drawOne()
		p.Hand = append(p.Hand, c)
		cards = append(cards, protocol.CardToInfo(c))
	}
	g.lobby.SendTo(p.ID, protocol.MustNewMessage(protocol.MsgCardDrawn, protocol.CardDrawnPayload{
		Cards: cards,
	}))
	g.broadcastHandSize(p)
}

// --- 掉线处理 ---

// RemovePlayer 把断开连接的玩家移出游戏。
// 当前玩家掉线视为放弃回合，回合交给下家；全员离开则静默解散
func (g *Game) RemovePlayer(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return
	}

	idx := -1
	for i, p := range g.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	wasActive := idx == g.turnIndex
	g.players = append(g.players[:idx], g.players[idx+1:]...)

	if len(g.players) == 0 {
		g.finished = true
		g.lobby.GameFinished("")
		return
	}

	if wasActive {
		// 被冻结的子状态随玩家一起消失
		g.hasPending = false
		next := idx % len(g.players)
		if g.reverseTurn {
			next = (idx - 1 + len(g.players)) % len(g.players)
		}
		g.activateTurn(next)
		return
	}

	if idx < g.turnIndex {
		g.turnIndex--
	}
}

// --- 结算 ---

// endGame 打空手牌立即结算：其余玩家的剩余手牌计入各自累计罚分
func (g *Game) endGame(winner *Player) {
	g.finished = true
	g.winnerID = winner.ID

	for _, p := range g.players {
		if p.ID != winner.ID {
			p.Score += p.HandScore()
		}
		g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerScore, protocol.PlayerScorePayload{
			PlayerID: p.ID,
			Score:    p.Score,
		}))
	}

	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgGameEnd, protocol.GameEndPayload{
		WinnerID:   winner.ID,
		WinnerName: winner.Name,
	}))

	log.Printf("🏆 游戏结束，获胜者: %s", winner.Name)

	if g.recorder != nil {
		ctx := context.Background()
		for _, p := range g.players {
			penalty := p.HandScore()
			if err := g.recorder.RecordRound(ctx, p.ID, p.Name, penalty, p.ID == winner.ID); err != nil {
				log.Printf("记录对局结果失败: %v", err)
			}
		}
	}

	// 清空手牌，玩家回到大厅
	for _, p := range g.players {
		p.Hand = nil
		p.setState(WaitingToPlay)
		p.IsPlaying = false
	}

	g.lobby.GameFinished(winner.ID)
}

// --- 辅助 ---

func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) sendValidation(playerID string, valid bool) {
	g.lobby.SendTo(playerID, protocol.MustNewMessage(protocol.MsgCardValidation, protocol.CardValidationPayload{
		Valid: valid,
	}))
}

func (g *Game) broadcastHandSize(p *Player) {
	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgHandSize, protocol.HandSizePayload{
		PlayerID: p.ID,
		Size:     len(p.Hand),
	}))
}

func (g *Game) broadcastCurrentColor() {
	g.lobby.Broadcast(protocol.MustNewMessage(protocol.MsgCurrentColor, protocol.CurrentColorPayload{
		Color: int(g.currentColor),
	}))
}
