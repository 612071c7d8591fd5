package engine

import (
	"github.com/palemoky/uno-online/internal/game/card"
)

// TurnState 描述引擎当前期望该玩家做什么
type TurnState int

const (
	WaitingToPlay            TurnState = iota // 未轮到该玩家
	PlayingCard                               // 轮到该玩家出牌
	DrawingCard                               // 无牌可出，必须摸牌
	ChoosingColorWild                         // 打出变色牌后等待选色
	ChoosingColorWildFour                     // 打出变色+4 后等待选色
	ChoosingColorWildUno                      // 变色牌恰好打到只剩一张：选色与喊 Uno 都完成后才能过牌
	ChoosingColorWildFourUno                  // 变色+4 的同上复合状态
	UnoPending                                // 只剩一张牌，等待喊 Uno 或被反制
)

var turnStateNames = map[TurnState]string{
	WaitingToPlay:            "等待",
	PlayingCard:              "出牌",
	DrawingCard:              "摸牌",
	ChoosingColorWild:        "变色选色",
	ChoosingColorWildFour:    "变色+4选色",
	ChoosingColorWildUno:     "变色选色+Uno",
	ChoosingColorWildFourUno: "变色+4选色+Uno",
	UnoPending:               "Uno",
}

func (s TurnState) String() string {
	if name, ok := turnStateNames[s]; ok {
		return name
	}
	return "未知状态"
}

// isChoosingColor 是否处于任一等待选色的状态
func (s TurnState) isChoosingColor() bool {
	switch s {
	case ChoosingColorWild, ChoosingColorWildFour, ChoosingColorWildUno, ChoosingColorWildFourUno:
		return true
	}
	return false
}

// isUnoPending 是否处于等待喊 Uno 的状态
func (s TurnState) isUnoPending() bool {
	switch s {
	case UnoPending, ChoosingColorWildUno, ChoosingColorWildFourUno:
		return true
	}
	return false
}

// Player 游戏中的玩家
type Player struct {
	ID    string
	Name  string
	Hand  []card.Card
	Score int // 跨局累计罚分

	IsPlaying bool
	State     TurnState

	// 仅在 ChoosingColorWildUno / ChoosingColorWildFourUno 复合状态下有意义，
	// 两个动作都完成后回合才会结算
	UnoDone     bool
	ColorChosen bool
}

// setState 切换状态并清空复合状态标记
func (p *Player) setState(s TurnState) {
	p.State = s
	p.UnoDone = false
	p.ColorChosen = false
}

// HasCard 手牌中是否有这张牌
func (p *Player) HasCard(c card.Card) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// RemoveCard 从手牌移除第一张相同的牌
func (p *Player) RemoveCard(c card.Card) bool {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// CanPlay 手牌中是否存在可以打出的牌
func (p *Player) CanPlay(top card.Card, current card.Color) bool {
	for _, h := range p.Hand {
		if h.CanBePlayed(top, current) {
			return true
		}
	}
	return false
}

// HandScore 结算时这手牌的罚分总和
func (p *Player) HandScore() int {
	score := 0
	for _, h := range p.Hand {
		score += h.Points()
	}
	return score
}
