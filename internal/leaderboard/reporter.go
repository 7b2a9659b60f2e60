package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Reporter submits final scores on background goroutines so the game
// loop never waits on the database.
type Reporter struct {
	board   Board
	timeout time.Duration
	logger  *log.Logger
	wg      sync.WaitGroup
}

// NewReporter creates a reporter. A zero timeout means 3 seconds.
func NewReporter(board Board, timeout time.Duration, logger *log.Logger) *Reporter {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Reporter{board: board, timeout: timeout, logger: logger}
}

// ReportScore submits score for player.
func (r *Reporter) ReportScore(player string, score int) {
	r.ReportGame(player, score, 0)
}

// ReportGame submits score together with the level reached.
func (r *Reporter) ReportGame(player string, score, level int) {
	if player == "" {
		r.logger.Warn("score not reported: no player name", "score", score)
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		var err error
		if rec, ok := r.board.(GameRecorder); ok {
			err = rec.SubmitGame(ctx, player, score, level)
		} else {
			err = r.board.Submit(ctx, player, score)
		}
		if err != nil {
			r.logger.Error("score report failed", "player", player, "score", score, "error", err)
			return
		}
		r.logger.Info("score reported", "player", player, "score", score, "level", level)
	}()
}

// Wait blocks until every in-flight report has finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
