package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno-online/internal/apperrors"
	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/protocol"
)

func TestUno_PendingFreezesTurn(t *testing.T) {
	t.Parallel()

	g, lobby := newTestGame([][]card.Card{
		{{Color: card.Red, Value: card.Five}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Red, Value: card.Five}))

	// Down to one card: turn frozen until Uno is settled
	assert.Equal(t, UnoPending, g.players[0].State)
	assert.Equal(t, 0, g.turnIndex)
	assert.Contains(t, lobby.sentTypes("p1"), protocol.MsgUnoCall)
	assert.Contains(t, lobby.sentTypes("p2"), protocol.MsgCounterUnoCall)

	// Nobody else may act while the turn is frozen
	assert.ErrorIs(t, g.HandlePlayCard("p2", card.Card{Color: card.Red, Value: card.Nine}), apperrors.ErrNotYourTurn)

	require.NoError(t, g.HandleUno("p1"))
	assert.Equal(t, 1, g.turnIndex)
	assert.Contains(t, lobby.broadcastTypes(), protocol.MsgStopUno)
	assert.Contains(t, lobby.broadcastTypes(), protocol.MsgStopCounterUno)
}

func TestUno_WrongStateRejected(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame([][]card.Card{
		{{Color: card.Red, Value: card.Five}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	assert.ErrorIs(t, g.HandleUno("p1"), apperrors.ErrInvalidAction)
	assert.ErrorIs(t, g.HandleUno("p2"), apperrors.ErrInvalidAction)
}

func TestUno_CardEffectDeferredUntilCall(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame([][]card.Card{
		{{Color: card.Red, Value: card.Skip}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
		{{Color: card.Red, Value: card.Three}, {Color: card.Yellow, Value: card.Three}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Red, Value: card.Skip}))
	assert.Equal(t, 0, g.turnIndex)

	// The skip takes effect only once Uno is called
	require.NoError(t, g.HandleUno("p1"))
	assert.Equal(t, 2, g.turnIndex)
}

func TestCounterUno_PenalizesTwoCards(t *testing.T) {
	t.Parallel()

	g, lobby := newTestGame([][]card.Card{
		{{Color: card.Red, Value: card.Five}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Red, Value: card.Five}))
	require.NoError(t, g.HandleCounterUno("p2"))

	// Caught: two penalty cards, then the round moves on as if Uno was called
	assert.Len(t, g.players[0].Hand, 3)
	assert.Equal(t, 1, g.turnIndex)
	assert.Contains(t, lobby.sentTypes("p1"), protocol.MsgCardDrawn)
	assert.Contains(t, lobby.broadcastTypes(), protocol.MsgStopCounterUno)
}

func TestCounterUno_SelfAndLateCallsRejected(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame([][]card.Card{
		{{Color: card.Red, Value: card.Five}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Red, Value: card.Five}))

	// The pending player cannot counter their own Uno
	assert.ErrorIs(t, g.HandleCounterUno("p1"), apperrors.ErrInvalidAction)

	// Once Uno is called the window is closed
	require.NoError(t, g.HandleUno("p1"))
	assert.ErrorIs(t, g.HandleCounterUno("p2"), apperrors.ErrInvalidAction)
	assert.Len(t, g.players[0].Hand, 1)
}

func TestUno_WildCompound_ColorThenUno(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame([][]card.Card{
		{{Color: card.Black, Value: card.Wild}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Black, Value: card.Wild}))
	assert.Equal(t, ChoosingColorWildUno, g.players[0].State)

	// Color alone does not settle the compound state
	require.NoError(t, g.HandleChooseColor("p1", card.Blue))
	assert.Equal(t, 0, g.turnIndex)
	assert.True(t, g.players[0].ColorChosen)

	require.NoError(t, g.HandleUno("p1"))
	assert.Equal(t, 1, g.turnIndex)
	assert.Equal(t, card.Blue, g.currentColor)
}

func TestUno_WildCompound_UnoThenColor(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame([][]card.Card{
		{{Color: card.Black, Value: card.Wild}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Black, Value: card.Wild}))

	// Uno alone does not settle it either, order does not matter
	require.NoError(t, g.HandleUno("p1"))
	assert.Equal(t, 0, g.turnIndex)
	assert.True(t, g.players[0].UnoDone)

	require.NoError(t, g.HandleChooseColor("p1", card.Green))
	assert.Equal(t, 1, g.turnIndex)
	assert.Equal(t, card.Green, g.currentColor)
}

func TestUno_DoubleUnoCallRejected(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame([][]card.Card{
		{{Color: card.Black, Value: card.Wild}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Black, Value: card.Wild}))
	require.NoError(t, g.HandleUno("p1"))
	assert.ErrorIs(t, g.HandleUno("p1"), apperrors.ErrInvalidAction)
}

func TestCounterUno_WildFourPenaltiesDoNotStack(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame([][]card.Card{
		{{Color: card.Black, Value: card.WildFour}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
		{{Color: card.Red, Value: card.Three}, {Color: card.Yellow, Value: card.Three}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Black, Value: card.WildFour}))
	assert.Equal(t, ChoosingColorWildFourUno, g.players[0].State)

	// Counter lands before the color choice: p1 takes the 2-card penalty
	require.NoError(t, g.HandleCounterUno("p2"))
	assert.Len(t, g.players[0].Hand, 3)
	assert.Equal(t, 0, g.turnIndex)

	// Color choice settles the turn: the +4 hits the next player, separately
	require.NoError(t, g.HandleChooseColor("p1", card.Yellow))
	assert.Len(t, g.players[1].Hand, 6)
	assert.Equal(t, 2, g.turnIndex)
	assert.Equal(t, card.Yellow, g.currentColor)
}

func TestRemovePlayer_PendingUnoClearedWithPlayer(t *testing.T) {
	t.Parallel()

	g, _ := newTestGame([][]card.Card{
		{{Color: card.Red, Value: card.Skip}, {Color: card.Blue, Value: card.Two}},
		{{Color: card.Red, Value: card.Nine}, {Color: card.Yellow, Value: card.Nine}},
		{{Color: card.Red, Value: card.Three}, {Color: card.Yellow, Value: card.Three}},
	}, card.Card{Color: card.Red, Value: card.One}, card.Red, 0)

	require.NoError(t, g.HandlePlayCard("p1", card.Card{Color: card.Red, Value: card.Skip}))
	require.True(t, g.hasPending)

	g.RemovePlayer("p1")

	// The frozen skip effect leaves with its owner
	assert.False(t, g.hasPending)
	assert.Equal(t, "p2", g.players[g.turnIndex].ID)
}
