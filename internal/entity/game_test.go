package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// Given/When: a freshly constructed game
	game := NewGame()

	// Then: the board is empty, player one moves first, the game is active
	assert.Equal(t, [BoardSize][BoardSize]int{}, game.Board)
	assert.Equal(t, PlayerOne, game.Turn)
	assert.True(t, game.Active)
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Successful move flips the mover", func(t *testing.T) {
		// Given: a new game
		game := NewGame()

		// When: player one takes an empty cell
		outcome, err := game.ApplyMove(PlayerOne, 0, 0)

		// Then: the game continues and player two is the mover
		require.NoError(t, err)
		assert.Equal(t, OutcomeContinued, outcome)
		assert.Equal(t, PlayerOne, game.Board[0][0])
		assert.Equal(t, PlayerTwo, game.Turn)
		assert.True(t, game.Active)
	})

	t.Run("Two consecutive moves by the same player never both succeed", func(t *testing.T) {
		// Given: a game where player one just moved
		game := NewGame()
		outcome, err := game.ApplyMove(PlayerOne, 0, 0)
		require.NoError(t, err)
		require.Equal(t, OutcomeContinued, outcome)

		// When: player one moves again out of turn
		outcome, err = game.ApplyMove(PlayerOne, 1, 0)

		// Then: the move is rejected with no side effect
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, OutcomeRejected, outcome)
		assert.Equal(t, CellEmpty, game.Board[0][1])
		assert.Equal(t, PlayerTwo, game.Turn)
	})

	t.Run("Occupied cell is rejected and the board is unchanged", func(t *testing.T) {
		// Given: a game with cell (0,0) taken by player one
		game := NewGame()
		_, err := game.ApplyMove(PlayerOne, 0, 0)
		require.NoError(t, err)

		before := *game

		// When: player two targets the same cell
		outcome, err := game.ApplyMove(PlayerTwo, 0, 0)

		// Then: the move is rejected and the game state is identical
		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, OutcomeRejected, outcome)
		assert.Equal(t, before, *game)
	})

	t.Run("Out of range coordinates are rejected", func(t *testing.T) {
		// Given: a new game
		game := NewGame()
		before := *game

		// When: moves target cells outside 0..2
		for _, cell := range [][2]int{{-1, 0}, {3, 0}, {0, -1}, {0, 3}, {9, 0}} {
			outcome, err := game.ApplyMove(PlayerOne, cell[0], cell[1])

			// Then: each is rejected with no side effect
			assert.ErrorIs(t, err, apperror.ErrCellOutOfRange)
			assert.Equal(t, OutcomeRejected, outcome)
		}

		assert.Equal(t, before, *game)
	})

	t.Run("Moves after the game ends are rejected", func(t *testing.T) {
		// Given: a game won by player one on the top row
		game := NewGame()
		game.Board = [BoardSize][BoardSize]int{
			{PlayerOne, PlayerOne, CellEmpty},
			{PlayerTwo, PlayerTwo, CellEmpty},
			{CellEmpty, CellEmpty, CellEmpty},
		}
		outcome, err := game.ApplyMove(PlayerOne, 2, 0)
		require.NoError(t, err)
		require.Equal(t, OutcomeWon, outcome)
		require.False(t, game.Active)

		before := *game

		// When: either player tries to move
		outcomeOne, errOne := game.ApplyMove(PlayerOne, 2, 2)
		outcomeTwo, errTwo := game.ApplyMove(PlayerTwo, 2, 2)

		// Then: both moves are rejected and the board is unchanged
		assert.ErrorIs(t, errOne, apperror.ErrGameFinished)
		assert.ErrorIs(t, errTwo, apperror.ErrGameFinished)
		assert.Equal(t, OutcomeRejected, outcomeOne)
		assert.Equal(t, OutcomeRejected, outcomeTwo)
		assert.Equal(t, before, *game)
	})
}

func TestGame_WinDetection(t *testing.T) {
	// Given: each of the 8 winning lines
	for _, line := range WinLines {
		// When: player one holds two cells of the line and takes the third
		game := NewGame()
		game.Board[line[0][1]][line[0][0]] = PlayerOne
		game.Board[line[1][1]][line[1][0]] = PlayerOne

		outcome, err := game.ApplyMove(PlayerOne, line[2][0], line[2][1])

		// Then: the move wins and the game ends
		require.NoError(t, err)
		assert.Equal(t, OutcomeWon, outcome, "line %v", line)
		assert.False(t, game.Active)
	}
}

func TestGame_DrawDetection(t *testing.T) {
	t.Run("Filling the last cell with no line drawn yields a draw", func(t *testing.T) {
		// Given: a full board minus one cell, with no completed line
		game := NewGame()
		game.Board = [BoardSize][BoardSize]int{
			{PlayerOne, PlayerTwo, PlayerOne},
			{PlayerOne, PlayerTwo, PlayerTwo},
			{PlayerTwo, PlayerOne, CellEmpty},
		}

		// When: player one fills the last cell
		outcome, err := game.ApplyMove(PlayerOne, 2, 2)

		// Then: the game is drawn and no longer active
		require.NoError(t, err)
		assert.Equal(t, OutcomeDrawn, outcome)
		assert.False(t, game.Active)
	})

	t.Run("A non-filling move on a crowded board continues the game", func(t *testing.T) {
		// Given: a board with two empty cells and no completed line
		game := NewGame()
		game.Board = [BoardSize][BoardSize]int{
			{PlayerOne, PlayerTwo, PlayerOne},
			{PlayerOne, PlayerTwo, PlayerTwo},
			{PlayerTwo, CellEmpty, CellEmpty},
		}

		// When: player one takes one of them without completing a line
		outcome, err := game.ApplyMove(PlayerOne, 1, 2)

		// Then: the game continues
		require.NoError(t, err)
		assert.Equal(t, OutcomeContinued, outcome)
		assert.True(t, game.Active)
	})
}

func TestGame_Reset(t *testing.T) {
	// Given: a finished game
	game := NewGame()
	game.Board[0][0] = PlayerOne
	game.Turn = PlayerTwo
	game.Active = false

	// When: the game is reset
	game.Reset()

	// Then: the state matches a freshly constructed game
	assert.Equal(t, NewGame(), game)
}
