package telegram

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ykvlv/hydration-bot/internal/domain"
	"github.com/ykvlv/hydration-bot/internal/store"
)

const maxCityLen = 64

// ensureProfile makes sure a profile row exists; if not, creates it with defaults.
func (r *Router) ensureProfile(ctx context.Context, chatID int64) (*domain.Profile, error) {
	p, err := r.repo.GetProfile(ctx, chatID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	p = domain.NewProfile(chatID, r.defaultTZ, r.now())
	if err := r.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	r.log.Info("profile created", zap.Int64("user_id", chatID))
	return p, nil
}

// updateProfile applies mutate to the stored profile and lets the schedule follow.
func (r *Router) updateProfile(ctx context.Context, chatID int64, field domain.Field, mutate func(p *domain.Profile)) (*domain.Profile, error) {
	p, err := r.ensureProfile(ctx, chatID)
	if err != nil {
		return nil, err
	}
	mutate(p)
	p.UpdatedAt = r.now().UTC()
	if err := r.repo.UpsertProfile(ctx, p); err != nil {
		return nil, err
	}
	r.afterChange(chatID, r.hooks.OnProfileChanged(ctx, chatID, field))
	return p, nil
}

// afterChange reports a failed schedule refresh. An unregistered profile has
// nothing to schedule yet, which is not a failure.
func (r *Router) afterChange(chatID int64, err error) {
	if err == nil || errors.Is(err, domain.ErrProfileIncomplete) {
		return
	}
	r.log.Error("schedule refresh failed", zap.Error(err), zap.Int64("user_id", chatID))
	r.sendText(chatID, "⚠️ Saved, but today's reminders could not be updated.")
}

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) answerCallback(id, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(id, text))
	return err
}

func percentOf(current, goal int) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(float64(current) * 100 / float64(goal)))
}

// --- Core commands ---

func (r *Router) handleStart(ctx context.Context, chatID int64) {
	p, err := r.ensureProfile(ctx, chatID)
	if err != nil {
		r.log.Error("ensureProfile failed", zap.Error(err))
		r.sendText(chatID, "Profile initialization error. Please try again later.")
		return
	}
	text := startText + "\n\n" + helpText
	if !p.RegistrationComplete {
		text = startText + "\n\n" + askWeightText
		r.setPending(chatID, pendingWeight)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard(p.NotificationsEnabled)
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleStatus(ctx context.Context, chatID int64) {
	p, err := r.ensureProfile(ctx, chatID)
	if err != nil {
		r.log.Error("ensureProfile failed", zap.Error(err))
		r.sendText(chatID, "Error reading your profile.")
		return
	}
	if !p.RegistrationComplete {
		r.sendText(chatID, askWeightText)
		r.setPending(chatID, pendingWeight)
		return
	}

	now := r.now().UTC()
	local, _ := domain.Localize(now, p.TZ)
	date := domain.WindowDate(local, p.Window())

	var temp *float64
	next := "—"
	s, err := r.repo.GetSchedule(ctx, p.UserID, date)
	switch {
	case err == nil:
		temp = s.Temperature
		for _, ev := range s.Events {
			if !ev.Sent && ev.DueAt.After(now) {
				next = domain.LocalizeTime(ev.DueAt, p.TZ)
				break
			}
		}
	case !errors.Is(err, store.ErrNotFound):
		r.log.Warn("GetSchedule failed", zap.Error(err), zap.Int64("user_id", p.UserID))
	}

	consumed, err := r.repo.EffectiveTotal(ctx, p.UserID, date)
	if err != nil {
		r.log.Error("EffectiveTotal failed", zap.Error(err))
		r.sendText(chatID, "Error reading today's intake.")
		return
	}

	goal := r.display.Daily(domain.GoalInputFor(p, temp))
	pct := percentOf(consumed, goal)
	city := p.City
	if city == "" {
		city = "—"
	}
	enabledText := "✅ Enabled"
	switch {
	case !p.NotificationsEnabled:
		enabledText = "⏸ Paused"
	case !domain.InWindow(domain.MinuteOfDay(local), p.WindowStartM, p.WindowEndM):
		enabledText = "✅ Enabled (outside active hours now)"
	}

	body := fmt.Sprintf("%s\n\n"+statusFmt,
		statusTitle,
		goal, domain.GlassCount(goal),
		consumed,
		progressBar(pct), pct,
		next,
		p.WeightKg, p.Gender, p.Activity, p.Mode,
		city,
		p.TZ,
		domain.FormatMinutes(p.WindowStartM), domain.FormatMinutes(p.WindowEndM),
		enabledText,
	)
	msg := tgbotapi.NewMessage(chatID, body)
	msg.ReplyMarkup = drankKeyboard()
	_, _ = r.bot.Send(msg)
}

// --- Intake ---

func (r *Router) handleDrink(ctx context.Context, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		r.sendText(chatID, "Usage: /drink 300 [water|tea|coffee|juice|soda]")
		return
	}
	ml, err := domain.ParseVolume(fields[0])
	if err != nil {
		r.sendText(chatID, fmt.Sprintf("Volume must be between 1 and %d ml.", domain.MaxIntakeML))
		return
	}
	drink := domain.DrinkWater
	if len(fields) > 1 {
		if drink, err = domain.ParseDrinkType(fields[1]); err != nil {
			r.sendText(chatID, "Unknown drink. Use water, tea, coffee, juice or soda.")
			return
		}
	}
	r.logDrink(ctx, chatID, ml, drink)
}

func (r *Router) handleDrankButton(ctx context.Context, chatID int64, value string) {
	ml, err := domain.ParseVolume(value)
	if err != nil {
		return
	}
	r.logDrink(ctx, chatID, ml, domain.DrinkWater)
}

func (r *Router) logDrink(ctx context.Context, chatID int64, ml int, drink domain.DrinkType) {
	p, err := r.ensureProfile(ctx, chatID)
	if err != nil {
		r.log.Error("ensureProfile failed", zap.Error(err))
		r.sendText(chatID, "Could not record the drink.")
		return
	}
	in := domain.IntakeFor(p, ml, drink, r.now())
	if err := r.repo.AddIntake(ctx, in); err != nil {
		r.log.Error("AddIntake failed", zap.Error(err), zap.Int64("user_id", chatID))
		r.sendText(chatID, "Could not record the drink.")
		return
	}
	r.afterChange(chatID, r.hooks.OnIntakeLogged(ctx, chatID))

	total, err := r.repo.EffectiveTotal(ctx, chatID, in.LocalDate)
	if err != nil {
		r.log.Warn("EffectiveTotal failed", zap.Error(err))
		r.sendText(chatID, fmt.Sprintf("✅ +%d ml of %s", ml, drink))
		return
	}
	r.sendText(chatID, fmt.Sprintf("✅ +%d ml of %s (counts as %d ml). Today: %d ml", ml, drink, in.EffectiveML, total))
}

// --- Profile fields ---

func (r *Router) handleWeight(ctx context.Context, chatID int64, args string) {
	if args == "" {
		r.sendText(chatID, "Send your weight in kg (30–200):")
		r.setPending(chatID, pendingWeight)
		return
	}
	r.applyWeight(ctx, chatID, args)
}

func (r *Router) applyWeight(ctx context.Context, chatID int64, text string) {
	kg, err := domain.ParseWeight(text)
	if err != nil {
		r.sendText(chatID, "Weight must be a number between 30 and 200 kg.")
		return
	}
	var firstTime bool
	_, err = r.updateProfile(ctx, chatID, domain.FieldWeight, func(p *domain.Profile) {
		firstTime = !p.RegistrationComplete
		p.WeightKg = kg
		p.RegistrationComplete = true
	})
	if err != nil {
		r.log.Error("update weight failed", zap.Error(err))
		r.sendText(chatID, "Could not save weight.")
		return
	}
	text = fmt.Sprintf("Weight updated: %.1f kg", kg)
	if firstTime {
		text = "✅ Profile ready. Reminders start within your active hours.\n\n" + helpText
	}
	r.sendText(chatID, text)
}

// handleChoice shows the keyboard when no value was typed after the command.
func (r *Router) handleChoice(ctx context.Context, chatID int64, args, prompt string, kb tgbotapi.InlineKeyboardMarkup, apply func(ctx context.Context, chatID int64, value string)) {
	if args == "" {
		msg := tgbotapi.NewMessage(chatID, prompt)
		msg.ReplyMarkup = kb
		_, _ = r.bot.Send(msg)
		return
	}
	apply(ctx, chatID, args)
}

func (r *Router) setGender(ctx context.Context, chatID int64, value string) {
	g, err := domain.ParseGender(value)
	if err != nil {
		r.sendText(chatID, "Unknown gender. Use male or female.")
		return
	}
	if _, err := r.updateProfile(ctx, chatID, domain.FieldGender, func(p *domain.Profile) { p.Gender = g }); err != nil {
		r.log.Error("update gender failed", zap.Error(err))
		r.sendText(chatID, "Could not save gender.")
		return
	}
	r.sendText(chatID, "Gender updated: "+string(g))
}

func (r *Router) setActivity(ctx context.Context, chatID int64, value string) {
	a, err := domain.ParseActivityLevel(value)
	if err != nil {
		r.sendText(chatID, "Unknown activity level. Use low, medium or high.")
		return
	}
	if _, err := r.updateProfile(ctx, chatID, domain.FieldActivity, func(p *domain.Profile) { p.Activity = a }); err != nil {
		r.log.Error("update activity failed", zap.Error(err))
		r.sendText(chatID, "Could not save activity level.")
		return
	}
	r.sendText(chatID, "Activity level updated: "+string(a))
}

func (r *Router) setMode(ctx context.Context, chatID int64, value string) {
	m, err := domain.ParseActivityMode(value)
	if err != nil {
		r.sendText(chatID, "Unknown mode. Use normal, workout, focus or vacation.")
		return
	}
	if _, err := r.updateProfile(ctx, chatID, domain.FieldMode, func(p *domain.Profile) { p.Mode = m }); err != nil {
		r.log.Error("update mode failed", zap.Error(err))
		r.sendText(chatID, "Could not save mode.")
		return
	}
	text := "Mode updated: " + string(m)
	if m == domain.ModeFocus {
		text += "\nOnly morning and evening messages will be sent."
	}
	r.sendText(chatID, text)
}

func (r *Router) handleCity(ctx context.Context, chatID int64, args string) {
	if args == "" {
		r.sendText(chatID, "Send your city for weather (or \"-\" to clear):")
		r.setPending(chatID, pendingCity)
		return
	}
	r.applyCity(ctx, chatID, args)
}

func (r *Router) applyCity(ctx context.Context, chatID int64, text string) {
	city := strings.TrimSpace(text)
	if city == "-" {
		city = ""
	}
	if len(city) > maxCityLen {
		r.sendText(chatID, "City name is too long.")
		return
	}
	if _, err := r.updateProfile(ctx, chatID, domain.FieldCity, func(p *domain.Profile) { p.City = city }); err != nil {
		r.log.Error("update city failed", zap.Error(err))
		r.sendText(chatID, "Could not save city.")
		return
	}
	if city == "" {
		r.sendText(chatID, "City cleared. The goal no longer depends on the weather.")
		return
	}
	r.sendText(chatID, "City updated: "+city)
}

func (r *Router) handleTZ(ctx context.Context, chatID int64, args string) {
	if args == "" {
		msg := tgbotapi.NewMessage(chatID, "Choose a timezone or enter your own (Region/City):")
		msg.ReplyMarkup = tzPresetsKeyboard()
		_, _ = r.bot.Send(msg)
		return
	}
	r.applyTZ(ctx, chatID, args)
}

func (r *Router) applyTZ(ctx context.Context, chatID int64, text string) {
	tz, err := domain.ValidateTZ(text)
	if err != nil {
		r.sendText(chatID, "Invalid timezone. Example: Europe/Moscow")
		return
	}
	if _, err := r.updateProfile(ctx, chatID, domain.FieldTimezone, func(p *domain.Profile) { p.TZ = tz }); err != nil {
		r.log.Error("update timezone failed", zap.Error(err))
		r.sendText(chatID, "Could not save timezone.")
		return
	}
	r.sendText(chatID, "Timezone updated: "+tz)
}

func (r *Router) handleHours(ctx context.Context, chatID int64, args string) {
	if args == "" {
		msg := tgbotapi.NewMessage(chatID, "Choose active hours (or Custom):")
		msg.ReplyMarkup = hoursPresetsKeyboard()
		_, _ = r.bot.Send(msg)
		return
	}
	r.applyHours(ctx, chatID, args)
}

func (r *Router) applyHours(ctx context.Context, chatID int64, text string) {
	fromM, toM, err := domain.ParseActiveWindow(text)
	if err != nil {
		r.sendText(chatID, "Invalid format. Example: 09:00–21:00")
		return
	}
	_, err = r.updateProfile(ctx, chatID, domain.FieldWindow, func(p *domain.Profile) {
		p.WindowStartM, p.WindowEndM = fromM, toM
	})
	if err != nil {
		r.log.Error("update hours failed", zap.Error(err))
		r.sendText(chatID, "Could not save active hours.")
		return
	}
	r.sendText(chatID, "Active hours updated: "+domain.FormatMinutes(fromM)+"–"+domain.FormatMinutes(toM))
}

// --- Free-form dispatcher (for all conversational inputs) ---

func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	pending := r.getPending(chatID)
	r.clearPending(chatID)
	switch pending {
	case pendingWeight:
		r.applyWeight(ctx, chatID, text)
	case pendingCity:
		r.applyCity(ctx, chatID, text)
	case pendingHours:
		r.applyHours(ctx, chatID, text)
	case pendingTZ:
		r.applyTZ(ctx, chatID, text)
	default:
		// No pending flow: ignore free-form message
	}
}

// --- Pause / Resume ---

func (r *Router) handleToggle(ctx context.Context, chatID int64, enabled bool) {
	if _, err := r.ensureProfile(ctx, chatID); err != nil {
		r.log.Error("ensureProfile failed", zap.Error(err))
		r.sendText(chatID, "Failed to update reminders.")
		return
	}
	err := r.hooks.OnNotificationsToggled(ctx, chatID, enabled)
	if err != nil && !errors.Is(err, domain.ErrProfileIncomplete) {
		r.log.Error("toggle failed", zap.Error(err), zap.Bool("enabled", enabled))
		r.sendText(chatID, "Failed to update reminders.")
		return
	}
	text := "Paused ⏸"
	if enabled {
		text = "Resumed ✅"
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard(enabled)
	_, _ = r.bot.Send(msg)
}
