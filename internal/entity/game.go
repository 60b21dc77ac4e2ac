package entity

import (
	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const (
	BoardSize = 3

	CellEmpty = 0
	PlayerOne = 1
	PlayerTwo = 2
)

// Outcome is the result of a single move application.
type Outcome int

const (
	OutcomeRejected Outcome = iota
	OutcomeContinued
	OutcomeWon
	OutcomeDrawn
)

func (that Outcome) String() string {
	switch that {
	case OutcomeContinued:
		return "continued"
	case OutcomeWon:
		return "won"
	case OutcomeDrawn:
		return "drawn"
	default:
		return "rejected"
	}
}

// WinLines - all 8 three-in-a-row lines as {x, y} cell coordinates:
// three rows, three columns, both diagonals.
var WinLines = [8][3][2]int{
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Game is the single authoritative game state: the board, the current
// mover and the active flag. It is owned by the arena loop and must
// never be mutated from more than one goroutine.
type Game struct {
	Board  [BoardSize][BoardSize]int `json:"board"`
	Turn   int                       `json:"turn"`
	Active bool                      `json:"active"`
}

func NewGame() *Game {
	game := &Game{}
	game.Reset()

	return game
}

// Reset - returns the game to its initial state: empty board, player one
// to move, active.
func (that *Game) Reset() {
	that.Board = [BoardSize][BoardSize]int{}
	that.Turn = PlayerOne
	that.Active = true
}

// ApplyMove - validates and applies a move for the given player at cell
// (x, y). Preconditions are checked in a fixed order and the first failing
// one rejects the move with no side effect. On success the win scan runs
// for the mover only; the mover flips only when the game continues.
func (that *Game) ApplyMove(player, x, y int) (Outcome, error) {
	if !that.Active {
		return OutcomeRejected, apperror.ErrGameFinished
	}

	if x < 0 || x >= BoardSize || y < 0 || y >= BoardSize {
		return OutcomeRejected, apperror.ErrCellOutOfRange
	}

	if that.Board[y][x] != CellEmpty {
		return OutcomeRejected, apperror.ErrCellOccupied
	}

	if player != that.Turn {
		return OutcomeRejected, apperror.ErrNotYourTurn
	}

	that.Board[y][x] = player

	if that.hasWinLine(player) {
		that.Active = false
		return OutcomeWon, nil
	}

	if that.isFull() {
		that.Active = false
		return OutcomeDrawn, nil
	}

	that.Turn = toggleMover(player)

	return OutcomeContinued, nil
}

// hasWinLine - checks every win line for three cells held by the player.
func (that *Game) hasWinLine(player int) bool {
	for _, line := range WinLines {
		held := true
		for _, cell := range line {
			if that.Board[cell[1]][cell[0]] != player {
				held = false
			}
		}

		if held {
			return true
		}
	}

	return false
}

func (that *Game) isFull() bool {
	for y := range that.Board {
		for x := range that.Board[y] {
			if that.Board[y][x] == CellEmpty {
				return false
			}
		}
	}

	return true
}

func toggleMover(current int) int {
	if current == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}
