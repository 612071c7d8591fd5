package protocol

import "github.com/palemoky/uno-online/internal/game/card"

// CardToInfo 引擎牌 → 传输格式
func CardToInfo(c card.Card) CardInfo {
	return CardInfo{Color: int(c.Color), Value: int(c.Value)}
}

// CardsToInfos 批量转换
func CardsToInfos(cards []card.Card) []CardInfo {
	infos := make([]CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 传输格式 → 引擎牌
func InfoToCard(info CardInfo) card.Card {
	return card.Card{Color: card.Color(info.Color), Value: card.Value(info.Value)}
}
