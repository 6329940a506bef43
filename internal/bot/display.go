package bot

import (
	"fmt"
	"sync"

	"github.com/calvinwijaya/blackjack/internal/game"
)

// chatDisplay collects the notices of a chat's engine until the handler
// sends its next reply.
type chatDisplay struct {
	game.NopDisplay

	mu    sync.Mutex
	notes []string
}

func (d *chatDisplay) Outcome(o game.Outcome) {
	d.add(fmt.Sprintf("🏁 %s %s", o.Title, o.Message))
}

func (d *chatDisplay) DeckReshuffled(remaining int) {
	d.add(fmt.Sprintf("♻️ The dealer reshuffled the discard pile, %d cards in the pile", remaining))
}

func (d *chatDisplay) add(note string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notes = append(d.notes, note)
}

// drain returns and clears the collected notices
func (d *chatDisplay) drain() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	notes := d.notes
	d.notes = nil
	return notes
}
