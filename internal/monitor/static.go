package monitor

import (
	"time"

	"github.com/rileyhilliard/sentinel/internal/engine"
)

// RenderStatic renders the board once, header included, for output that
// is not an interactive terminal.
func RenderStatic(board *Board, width int, status engine.Status, backend string) string {
	v := boardView{board: board, width: width}
	info := headerInfo{
		backend: backend,
		status:  status,
		now:     time.Now(),
	}
	return v.header(info) + "\n" + v.body()
}
