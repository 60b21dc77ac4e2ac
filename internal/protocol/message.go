package protocol

import (
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	verbMove = "MOVE"
	verbWin  = "WIN"
	verbDraw = "DRAW"

	fieldSeparator = "|"
	cellSeparator  = ","
	rowSeparator   = ";"

	moveTokenCount = 4
)

// Move is the decoded inbound MOVE|<player>|<x>|<y> command.
type Move struct {
	Player int
	X      int
	Y      int
}

// ParseCommand - decodes an inbound payload. Any payload that does not
// match the MOVE grammar (wrong verb, wrong token count, non-integer
// fields) yields ok=false; malformed input never panics and never gets
// a response.
func ParseCommand(payload []byte) (Move, bool) {
	tokens := strings.Split(string(payload), fieldSeparator)
	if len(tokens) != moveTokenCount || tokens[0] != verbMove {
		return Move{}, false
	}

	player, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Move{}, false
	}

	x, err := strconv.Atoi(tokens[2])
	if err != nil {
		return Move{}, false
	}

	y, err := strconv.Atoi(tokens[3])
	if err != nil {
		return Move{}, false
	}

	return Move{Player: player, X: x, Y: y}, true
}

// EncodeState - serializes the full game snapshot: rows joined by ";",
// cells within a row joined by ",", then the current mover and the
// active flag. A pure function of the game state.
func EncodeState(game *entity.Game) []byte {
	var builder strings.Builder

	builder.WriteString(EncodeBoard(game))
	builder.WriteString(fieldSeparator)
	builder.WriteString(strconv.Itoa(game.Turn))
	builder.WriteString(fieldSeparator)
	builder.WriteString(boolLiteral(game.Active))

	return []byte(builder.String())
}

// EncodeBoard - serializes the board alone, without mover or active flag.
func EncodeBoard(game *entity.Game) string {
	rows := make([]string, 0, entity.BoardSize)

	for y := 0; y < entity.BoardSize; y++ {
		cells := make([]string, 0, entity.BoardSize)
		for x := 0; x < entity.BoardSize; x++ {
			cells = append(cells, strconv.Itoa(game.Board[y][x]))
		}
		rows = append(rows, strings.Join(cells, cellSeparator))
	}

	return strings.Join(rows, rowSeparator)
}

// EncodeWin - serializes the terminal win event for the given player.
func EncodeWin(player int) []byte {
	return []byte(verbWin + fieldSeparator + strconv.Itoa(player))
}

// EncodeDraw - serializes the terminal draw event.
func EncodeDraw() []byte {
	return []byte(verbDraw)
}

func boolLiteral(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
