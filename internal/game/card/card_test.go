package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanBePlayed_ColorMatch(t *testing.T) {
	t.Parallel()

	top := Card{Color: Red, Value: Five}
	assert.True(t, Card{Color: Red, Value: Nine}.CanBePlayed(top, Red))
	assert.True(t, Card{Color: Red, Value: Skip}.CanBePlayed(top, Red))
	assert.False(t, Card{Color: Blue, Value: Nine}.CanBePlayed(top, Red))
}

func TestCanBePlayed_ValueMatch(t *testing.T) {
	t.Parallel()

	top := Card{Color: Red, Value: Five}
	assert.True(t, Card{Color: Blue, Value: Five}.CanBePlayed(top, Red))
	assert.True(t, Card{Color: Green, Value: Five}.CanBePlayed(top, Red))

	// Action cards also match by value
	top = Card{Color: Yellow, Value: DrawTwo}
	assert.True(t, Card{Color: Green, Value: DrawTwo}.CanBePlayed(top, Yellow))
}

func TestCanBePlayed_WildAlwaysPlayable(t *testing.T) {
	t.Parallel()

	for _, top := range []Card{
		{Color: Red, Value: Five},
		{Color: Blue, Value: Skip},
		{Color: Black, Value: Wild},
	} {
		assert.True(t, Card{Color: Black, Value: Wild}.CanBePlayed(top, Green))
		assert.True(t, Card{Color: Black, Value: WildFour}.CanBePlayed(top, Green))
	}
}

func TestCanBePlayed_TopIsWild_MatchesDeclaredColor(t *testing.T) {
	t.Parallel()

	// A wild on top of the pile carries the declared color, not its own
	top := Card{Color: Black, Value: Wild}
	assert.True(t, Card{Color: Green, Value: Two}.CanBePlayed(top, Green))
	assert.False(t, Card{Color: Red, Value: Two}.CanBePlayed(top, Green))
}

// TestCanBePlayed_Oracle cross-checks the rule against a brute-force oracle
// over every card pair and declared color.
func TestCanBePlayed_Oracle(t *testing.T) {
	t.Parallel()

	all := Full()
	var cards []Card
	for {
		c, ok := all.Draw()
		if !ok {
			break
		}
		cards = append(cards, c)
	}

	for _, c := range cards {
		for _, top := range cards {
			for current := Red; current <= Blue; current++ {
				want := c.Color == top.Color ||
					c.Value == top.Value ||
					c.Color == Black ||
					(top.Color == Black && c.Color == current)
				assert.Equal(t, want, c.CanBePlayed(top, current),
					"card=%v top=%v current=%v", c, top, current)
			}
		}
	}
}

func TestPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card Card
		want int
	}{
		{Card{Color: Red, Value: Zero}, 0},
		{Card{Color: Blue, Value: Seven}, 7},
		{Card{Color: Green, Value: Nine}, 9},
		{Card{Color: Yellow, Value: Skip}, 20},
		{Card{Color: Red, Value: Reverse}, 20},
		{Card{Color: Blue, Value: DrawTwo}, 20},
		{Card{Color: Black, Value: Wild}, 50},
		{Card{Color: Black, Value: WildFour}, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.card.Points(), "card=%v", tt.card)
	}
}

func TestColorIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Red.IsValid())
	assert.True(t, Blue.IsValid())
	assert.False(t, Black.IsValid())
	assert.False(t, Color(-1).IsValid())
	assert.False(t, Color(99).IsValid())
}

func TestValuePredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, Zero.IsNumber())
	assert.True(t, Nine.IsNumber())
	assert.False(t, Skip.IsNumber())
	assert.False(t, Wild.IsNumber())

	assert.True(t, Wild.IsWild())
	assert.True(t, WildFour.IsWild())
	assert.False(t, DrawTwo.IsWild())
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "红5", Card{Color: Red, Value: Five}.String())
	assert.Equal(t, "蓝+2", Card{Color: Blue, Value: DrawTwo}.String())
	assert.Equal(t, "变色", Card{Color: Black, Value: Wild}.String())
	assert.Equal(t, "变色+4", Card{Color: Black, Value: WildFour}.String())
}
