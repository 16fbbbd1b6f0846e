package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ykvlv/hydration-bot/internal/domain"
	"github.com/ykvlv/hydration-bot/internal/store"
)

//go:generate mockgen -source=router.go -destination=router_mock.go -package=telegram

// BotClient is the part of *tgbotapi.BotAPI the package uses.
type BotClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Hooks are called after a change is persisted so the schedule follows it.
// scheduler.Rescheduler implements them.
type Hooks interface {
	OnIntakeLogged(ctx context.Context, userID int64) error
	OnProfileChanged(ctx context.Context, userID int64, fields ...domain.Field) error
	OnNotificationsToggled(ctx context.Context, userID int64, enabled bool) error
}

// Pending state keys used in conversational flows.
const (
	pendingWeight = "await_weight_text"
	pendingCity   = "await_city_text"
	pendingHours  = "await_hours_text"
	pendingTZ     = "await_tz_text"
)

// Router wires Telegram updates to handlers and holds minimal in-memory state.
type Router struct {
	bot       BotClient
	log       *zap.Logger
	repo      store.Repo
	hooks     Hooks
	display   domain.GoalCalculator
	defaultTZ string
	now       func() time.Time

	state map[int64]string // chatID -> pending state
	mu    sync.RWMutex
}

// NewRouter creates a new Telegram router. display controls how the goal is
// shown in /status; schedules always use domain.SchedulingGoal.
func NewRouter(bot BotClient, log *zap.Logger, repo store.Repo, hooks Hooks, display domain.GoalCalculator, defaultTZ string) *Router {
	return &Router{
		bot:       bot,
		log:       log,
		repo:      repo,
		hooks:     hooks,
		display:   display,
		defaultTZ: defaultTZ,
		now:       time.Now,
		state:     make(map[int64]string),
	}
}

// setPending sets a pending state for a chat (non-persistent, in-memory).
func (r *Router) setPending(chatID int64, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[chatID] = s
}

// getPending returns current pending state for a chat.
func (r *Router) getPending(chatID int64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[chatID]
}

// clearPending clears a pending state for a chat.
func (r *Router) clearPending(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, chatID)
}

// splitCommand returns "/cmd" without a "@botname" suffix and the rest of text.
func splitCommand(text string) (cmd, args string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args, _ = strings.Cut(text, " ")
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

// HandleUpdate routes a single update to appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	// Text messages
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		cmd, args := splitCommand(strings.TrimSpace(msg.Text))
		if cmd != "" {
			r.clearPending(chatID)
		}

		switch cmd {
		case "/start":
			r.handleStart(ctx, chatID)
		case "/help":
			r.sendText(chatID, helpText)
		case "/status":
			r.handleStatus(ctx, chatID)
		case "/drink":
			r.handleDrink(ctx, chatID, args)
		case "/weight":
			r.handleWeight(ctx, chatID, args)
		case "/gender":
			r.handleChoice(ctx, chatID, args, "Choose your gender:", genderKeyboard(), r.setGender)
		case "/activity":
			r.handleChoice(ctx, chatID, args, "Choose your activity level:", activityKeyboard(), r.setActivity)
		case "/mode":
			r.handleChoice(ctx, chatID, args, "Choose a mode:", modeKeyboard(), r.setMode)
		case "/city":
			r.handleCity(ctx, chatID, args)
		case "/tz":
			r.handleTZ(ctx, chatID, args)
		case "/hours":
			r.handleHours(ctx, chatID, args)
		case "/pause":
			r.handleToggle(ctx, chatID, false)
		case "/resume":
			r.handleToggle(ctx, chatID, true)
		case "":
			// Free-form text used in conversational flows (weight/city/hours/tz)
			r.handleFreeForm(ctx, chatID, args)
		default:
			r.sendText(chatID, "Unknown command.\n\n"+helpText)
		}
		return
	}

	// Callback queries (inline buttons)
	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		data := cb.Data
		chatID := cb.Message.Chat.ID
		_ = r.answerCallback(cb.ID, "")

		prefix, value, _ := strings.Cut(data, ":")
		switch prefix {
		case "drank":
			r.handleDrankButton(ctx, chatID, value)
		case "gender":
			r.setGender(ctx, chatID, value)
		case "activity":
			r.setActivity(ctx, chatID, value)
		case "mode":
			r.setMode(ctx, chatID, value)
		case "hours":
			if value == "custom" {
				r.sendText(chatID, "Enter active hours as HH:MM–HH:MM (e.g., 09:00–21:00)")
				r.setPending(chatID, pendingHours)
				return
			}
			r.applyHours(ctx, chatID, value)
		case "tz":
			if value == "custom" {
				r.sendText(chatID, "Enter timezone (e.g., Europe/Moscow):")
				r.setPending(chatID, pendingTZ)
				return
			}
			r.applyTZ(ctx, chatID, value)
		default:
			// Unknown callback: ignore silently
		}
	}
}
