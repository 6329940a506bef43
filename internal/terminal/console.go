// Package terminal plays blackjack on a text terminal.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/calvinwijaya/blackjack/internal/game"
	"github.com/fatih/color"
)

var (
	red    = color.New(color.FgRed, color.Bold)
	black  = color.New(color.FgWhite, color.Bold)
	title  = color.New(color.FgCyan)
	win    = color.New(color.FgGreen, color.Bold)
	lose   = color.New(color.FgRed, color.Bold)
	push   = color.New(color.FgYellow, color.Bold)
	notice = color.New(color.FgMagenta)
)

// Console is a game.Display that writes to a terminal and reads the
// player's commands from it.
type Console struct {
	in  *bufio.Scanner
	out io.Writer

	remaining int
	hands     map[game.Owner]string
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewScanner(in),
		out:   out,
		hands: make(map[game.Owner]string),
	}
}

func (c *Console) HandChanged(owner game.Owner, cards []game.Card, status string) {
	if len(cards) == 0 {
		delete(c.hands, owner)
		return
	}
	c.hands[owner] = fmt.Sprintf("%-22s %s", status, formatCards(cards))
}

func (c *Console) CardAdded(game.Owner, game.Card) {}

func (c *Console) Outcome(o game.Outcome) {
	style := push
	switch o.Kind {
	case game.PlayerWins:
		style = win
	case game.DealerWins:
		style = lose
	}
	c.printTable()
	style.Fprintf(c.out, "%s %s\n", o.Title, o.Message)
}

func (c *Console) DeckCountChanged(remaining int) {
	c.remaining = remaining
}

func (c *Console) DeckReshuffled(remaining int) {
	notice.Fprintf(c.out, "The dealer reshuffles the discard pile, %d cards in the pile\n", remaining)
}

func (c *Console) printTable() {
	for _, owner := range []game.Owner{game.Dealer, game.Player} {
		if line, ok := c.hands[owner]; ok {
			fmt.Fprintln(c.out, "  "+line)
		}
	}
}

func (c *Console) printTitle(e *game.Engine) {
	title.Fprintf(c.out, "Black jack, %d left in the pile, # hits: %d\n", c.remaining, e.Hits())
}

func formatCards(cards []game.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		style := black
		if card.Suit.IsRed() {
			style = red
		}
		parts[i] = style.Sprint(card.String())
	}
	return strings.Join(parts, " ")
}

const help = "Commands: [h]it, [s]tand, [n]ew shuffle, [q]uit"

// Play deals a round and then runs commands from the input until the
// player quits or the input ends.
func (c *Console) Play(e *game.Engine) error {
	fmt.Fprintln(c.out, help)
	if err := e.Start(); err != nil {
		return err
	}
	c.show(e)

	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}

		var err error
		switch strings.ToLower(strings.TrimSpace(c.in.Text())) {
		case "h", "hit":
			err = e.Hit()
		case "s", "stand":
			err = e.Stand()
		case "n", "new", "shuffle":
			err = e.Start()
		case "q", "quit", "exit":
			return nil
		case "", "?", "help":
			fmt.Fprintln(c.out, help)
			continue
		default:
			fmt.Fprintln(c.out, "Unknown command. "+help)
			continue
		}

		switch {
		case err == nil:
			c.show(e)
		case errors.Is(err, game.ErrRoundOver):
			notice.Fprintln(c.out, "The round is over, [n] to shuffle and deal again")
		default:
			return err
		}
	}
}

// show prints the table while the player is still deciding. A finished
// round has already been printed by Outcome.
func (c *Console) show(e *game.Engine) {
	c.printTitle(e)
	if e.State() == game.PlayerTurn {
		c.printTable()
	}
}
