package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/uno-online/internal/game/card"
)

func TestCardConversion_RoundTrip(t *testing.T) {
	t.Parallel()

	cards := []card.Card{
		{Color: card.Red, Value: card.Zero},
		{Color: card.Blue, Value: card.DrawTwo},
		{Color: card.Black, Value: card.WildFour},
	}

	for _, c := range cards {
		assert.Equal(t, c, InfoToCard(CardToInfo(c)))
	}
}

func TestCardsToInfos(t *testing.T) {
	t.Parallel()

	cards := []card.Card{
		{Color: card.Green, Value: card.Seven},
		{Color: card.Black, Value: card.Wild},
	}
	infos := CardsToInfos(cards)

	assert.Len(t, infos, 2)
	assert.Equal(t, CardInfo{Color: int(card.Green), Value: int(card.Seven)}, infos[0])
	assert.Equal(t, CardInfo{Color: int(card.Black), Value: int(card.Wild)}, infos[1])

	assert.Empty(t, CardsToInfos(nil))
}
