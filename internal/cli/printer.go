package cli

import (
	"context"
	"io"
	"sync"
)

// ScoreboardPrinter reprints the scoreboard on demand. Print may be called
// from several goroutines; each table is written whole.
type ScoreboardPrinter struct {
	tab Tabulator
	lex Lexicon
	out io.Writer

	mu sync.Mutex
}

// NewScoreboardPrinter creates a printer writing to out.
func NewScoreboardPrinter(tab Tabulator, lex Lexicon, out io.Writer) *ScoreboardPrinter {
	return &ScoreboardPrinter{tab: tab, lex: lex, out: out}
}

// Print reads the current state and writes the scoreboard.
func (p *ScoreboardPrinter) Print(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, err := p.tab.ReadState(ctx)
	if err != nil {
		return err
	}
	RenderScoreboard(p.out, p.lex, st)
	return nil
}
