package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/calvinwijaya/blackjack/internal/db"
	"github.com/calvinwijaya/blackjack/internal/game"
	"github.com/calvinwijaya/blackjack/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of the Telegram API the handler talks to
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot      sender
	sessions store.Store
	database *db.Database
	deckOpts []game.DeckOption

	mu       sync.Mutex
	displays map[string]*chatDisplay
}

// NewHandler creates a handler keeping one session per chat. database may be
// nil.
func NewHandler(bot sender, sessions store.Store, database *db.Database, deckOpts ...game.DeckOption) *Handler {
	return &Handler{
		bot:      bot,
		sessions: sessions,
		database: database,
		deckOpts: deckOpts,
		displays: make(map[string]*chatDisplay),
	}
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
}

// table returns the session of a chat, creating it on first use
func (h *Handler) table(chatID int64) (*store.Session, *chatDisplay) {
	id := strconv.FormatInt(chatID, 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	if sess, err := h.sessions.GetSession(id); err == nil {
		if display, ok := h.displays[id]; ok {
			return sess, display
		}
	}

	display := &chatDisplay{}
	displays := game.Displays{display}
	if h.database != nil {
		displays = append(displays, h.database.Recorder(id))
	}

	sess := store.NewSession(id, displays, h.deckOpts...)
	if err := h.sessions.SaveSession(sess); err != nil {
		log.Printf("Failed to save session for chat %d: %v", chatID, err)
	}
	h.displays[id] = display
	return sess, display
}

func formatHand(v game.HandView) string {
	cards := make([]string, len(v.Cards))
	for i, c := range v.Cards {
		cards[i] = c.String()
	}
	return fmt.Sprintf("%s  [%s]", v.Text, strings.Join(cards, " "))
}

func formatTable(s game.Snapshot, notes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🃏 %s\n", formatHand(s.Dealer))
	fmt.Fprintf(&b, "🎴 %s\n", formatHand(s.Player))
	for _, note := range notes {
		fmt.Fprintf(&b, "\n%s", note)
	}
	if len(notes) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%d cards left in the pile, # hits: %d", s.DeckRemaining, s.Hits)
	return b.String()
}

// play runs action on the chat's engine and replies with the table
func (h *Handler) play(chatID int64, action func(*game.Engine) error) {
	sess, display := h.table(chatID)

	err := sess.Do(action)
	switch {
	case errors.Is(err, game.ErrRoundOver):
		h.sendWithKeyboard(chatID, "The round is over. Shuffle to play again.", EndGameKeyboard(h.database != nil))
		return
	case err != nil:
		log.Printf("Chat %d action failed: %v", chatID, err)
		h.send(chatID, "❌ Something went wrong. Try /play again.")
		return
	}

	snapshot := sess.Snapshot()
	text := formatTable(snapshot, display.drain())

	if snapshot.State == game.PlayerTurn {
		h.sendWithKeyboard(chatID, text, GameKeyboard())
	} else {
		h.sendWithKeyboard(chatID, text, EndGameKeyboard(h.database != nil))
	}
}

func (h *Handler) HandleStart(chatID int64) {
	h.sendWithKeyboard(chatID,
		"🎰 Welcome to Blackjack!\n\n"+
			"Get closer to 21 than the dealer without going over.\n"+
			"Aces count 1 or 11, faces count 10.\n"+
			"The dealer draws below 17 while behind you.\n\n"+
			"/play deal a round\n"+
			"/stats your results",
		EndGameKeyboard(h.database != nil))
}

func (h *Handler) HandleStats(chatID int64) {
	if h.database == nil {
		h.send(chatID, "Statistics are not available.")
		return
	}

	stats, err := h.database.GetStats(context.Background(), strconv.FormatInt(chatID, 10))
	if err != nil {
		log.Printf("Failed to load stats for chat %d: %v", chatID, err)
		h.send(chatID, "❌ Could not load statistics.")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"📊 Rounds: %d\n✅ Won: %d\n❌ Lost: %d\n🤝 Pushes: %d\n🃏 Blackjacks: %d\n📈 Win rate: %.1f%%",
		stats.Rounds, stats.PlayerWins, stats.DealerWins, stats.Pushes, stats.Blackjacks, stats.WinRate()))
}

// HandleMessage dispatches a chat message
func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if !msg.IsCommand() {
		h.send(chatID, "Use /play to deal a round or /help for the rules.")
		return
	}

	switch msg.Command() {
	case "start", "help":
		h.HandleStart(chatID)
	case "play", "deal", "shuffle":
		h.play(chatID, (*game.Engine).Start)
	case "hit":
		h.play(chatID, (*game.Engine).Hit)
	case "stand":
		h.play(chatID, (*game.Engine).Stand)
	case "stats":
		h.HandleStats(chatID)
	default:
		h.send(chatID, "Unknown command. Use /help.")
	}
}

// HandleCallback dispatches an inline keyboard press
func (h *Handler) HandleCallback(cb *tgbotapi.CallbackQuery) {
	h.answerCallback(cb.ID, "")

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case CallbackHit:
		h.play(chatID, (*game.Engine).Hit)
	case CallbackStand:
		h.play(chatID, (*game.Engine).Stand)
	case CallbackShuffle:
		h.play(chatID, (*game.Engine).Start)
	case CallbackStats:
		h.HandleStats(chatID)
	}
}
