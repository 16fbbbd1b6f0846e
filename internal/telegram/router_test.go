package telegram

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/ykvlv/hydration-bot/internal/domain"
	"github.com/ykvlv/hydration-bot/internal/store"
)

type harness struct {
	r     *Router
	repo  *store.SQLiteRepo
	hooks *MockHooks
	sent  []tgbotapi.MessageConfig
}

var fixedNow = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC) // 13:00 in Moscow

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{hooks: NewMockHooks(ctrl)}

	bot := NewMockBotClient(ctrl)
	bot.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			h.sent = append(h.sent, m)
		}
		return tgbotapi.Message{}, nil
	}).AnyTimes()
	bot.EXPECT().Request(gomock.Any()).Return(&tgbotapi.APIResponse{Ok: true}, nil).AnyTimes()

	repo, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	h.repo = repo

	h.r = NewRouter(bot, zap.NewNop(), repo, h.hooks, domain.SchedulingGoal, "Europe/Moscow")
	h.r.now = func() time.Time { return fixedNow }
	return h
}

func (h *harness) text(chatID int64, text string) {
	h.r.HandleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text},
	})
}

func (h *harness) press(chatID int64, data string) {
	h.r.HandleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			Data:    data,
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		},
	})
}

func (h *harness) last(t *testing.T) string {
	t.Helper()
	if len(h.sent) == 0 {
		t.Fatalf("nothing sent")
	}
	return h.sent[len(h.sent)-1].Text
}

func (h *harness) registered(t *testing.T, chatID int64) *domain.Profile {
	t.Helper()
	p := domain.NewProfile(chatID, "Europe/Moscow", fixedNow)
	p.WeightKg = 70
	p.RegistrationComplete = true
	if err := h.repo.UpsertProfile(context.Background(), p); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	return p
}

func TestSplitCommand(t *testing.T) {
	cases := []struct{ in, cmd, args string }{
		{"/start", "/start", ""},
		{"/Start@HydroBot", "/start", ""},
		{"/drink 300 tea", "/drink", "300 tea"},
		{"72.5", "", "72.5"},
	}
	for _, c := range cases {
		cmd, args := splitCommand(c.in)
		if cmd != c.cmd || args != c.args {
			t.Fatalf("%q: got (%q, %q)", c.in, cmd, args)
		}
	}
}

func TestRegistrationFlow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.text(1, "/start")
	if !strings.Contains(h.last(t), askWeightText) {
		t.Fatalf("start must ask for weight, got %q", h.last(t))
	}
	p, err := h.repo.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.RegistrationComplete || p.TZ != "Europe/Moscow" || !p.NotificationsEnabled {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	h.text(1, "500")
	if !strings.Contains(h.last(t), "between 30 and 200") {
		t.Fatalf("want weight error, got %q", h.last(t))
	}

	h.hooks.EXPECT().OnProfileChanged(gomock.Any(), int64(1), domain.FieldWeight).Return(nil)
	h.text(1, "/weight 72,5")
	if !strings.Contains(h.last(t), "Profile ready") {
		t.Fatalf("got %q", h.last(t))
	}
	p, _ = h.repo.GetProfile(ctx, 1)
	if p.WeightKg != 72.5 || !p.RegistrationComplete {
		t.Fatalf("profile not completed: %+v", p)
	}
}

func TestDrinkCommandAndButton(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.registered(t, 1)

	h.hooks.EXPECT().OnIntakeLogged(gomock.Any(), int64(1)).Return(nil).Times(2)

	h.text(1, "/drink 500 coffee")
	if !strings.Contains(h.last(t), "Today: 400 ml") {
		t.Fatalf("got %q", h.last(t))
	}
	h.press(1, drankCallback)
	if !strings.Contains(h.last(t), "Today: 650 ml") {
		t.Fatalf("got %q", h.last(t))
	}

	total, err := h.repo.EffectiveTotal(ctx, 1, "2026-03-10")
	if err != nil || total != 650 {
		t.Fatalf("total = %d, %v", total, err)
	}
}

func TestInvalidInputsDoNotTouchSchedule(t *testing.T) {
	h := newHarness(t)
	h.registered(t, 1)

	cases := []struct{ in, want string }{
		{"/drink", "Usage"},
		{"/drink lots", "Volume must be"},
		{"/drink 300 milkshake", "Unknown drink"},
		{"/hours 25:00-26:00", "Invalid format"},
		{"/hours 08:00-08:00", "Invalid format"},
		{"/gender robot", "Unknown gender"},
		{"/mode party", "Unknown mode"},
		{"/tz Mars/Olympus", "Invalid timezone"},
		{"/nope", "Unknown command"},
	}
	for _, c := range cases {
		h.text(1, c.in)
		if !strings.Contains(h.last(t), c.want) {
			t.Fatalf("%q: got %q", c.in, h.last(t))
		}
	}
}

func TestProfileEditsCallHooks(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.registered(t, 1)

	gomock.InOrder(
		h.hooks.EXPECT().OnProfileChanged(gomock.Any(), int64(1), domain.FieldWindow).Return(nil),
		h.hooks.EXPECT().OnProfileChanged(gomock.Any(), int64(1), domain.FieldMode).Return(nil),
		h.hooks.EXPECT().OnProfileChanged(gomock.Any(), int64(1), domain.FieldCity).Return(nil),
		h.hooks.EXPECT().OnProfileChanged(gomock.Any(), int64(1), domain.FieldTimezone).Return(nil),
	)

	h.text(1, "/hours 22:00-02:00")
	h.press(1, "mode:focus")
	if !strings.Contains(h.last(t), "Only morning and evening") {
		t.Fatalf("got %q", h.last(t))
	}
	h.text(1, "/city")
	h.text(1, "Almaty")
	h.press(1, "tz:Asia/Almaty")

	p, err := h.repo.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.WindowStartM != 22*60 || p.WindowEndM != 2*60 || p.Mode != domain.ModeFocus || p.City != "Almaty" || p.TZ != "Asia/Almaty" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestHookFailureIsReported(t *testing.T) {
	h := newHarness(t)
	h.registered(t, 1)

	h.hooks.EXPECT().OnProfileChanged(gomock.Any(), int64(1), domain.FieldActivity).Return(errors.New("database is locked"))
	h.text(1, "/activity high")

	var warned bool
	for _, m := range h.sent {
		if strings.Contains(m.Text, "could not be updated") {
			warned = true
		}
	}
	if !warned || !strings.Contains(h.last(t), "Activity level updated: high") {
		t.Fatalf("sent: %+v", h.sent)
	}
}

func TestPauseResume(t *testing.T) {
	h := newHarness(t)
	h.registered(t, 1)

	gomock.InOrder(
		h.hooks.EXPECT().OnNotificationsToggled(gomock.Any(), int64(1), false).Return(nil),
		h.hooks.EXPECT().OnNotificationsToggled(gomock.Any(), int64(1), true).Return(nil),
	)
	h.text(1, "/pause")
	if h.last(t) != "Paused ⏸" {
		t.Fatalf("got %q", h.last(t))
	}
	h.text(1, "/resume")
	if h.last(t) != "Resumed ✅" {
		t.Fatalf("got %q", h.last(t))
	}
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	p := h.registered(t, 1)

	if err := h.repo.AddIntake(ctx, domain.IntakeFor(p, 1375, domain.DrinkWater, fixedNow)); err != nil {
		t.Fatalf("add intake: %v", err)
	}
	s, err := domain.BuildSchedule(1, "2026-03-10", p.TZ, p.Window(), 2750, nil, fixedNow)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := h.repo.SaveSchedule(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	h.text(1, "/status")
	out := h.last(t)
	for _, want := range []string{"Goal: 2750 ml (11 glasses)", "Consumed: 1375 ml", "50%", "Next reminder: 13:36", "Active hours: 08:00–22:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status lacks %q:\n%s", want, out)
		}
	}
}

func TestStatus_NextReminderInCurrentZone(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	p := h.registered(t, 1)

	// Built while the user was on UTC, then moved to Moscow.
	s, err := domain.BuildSchedule(1, "2026-03-10", "UTC", p.Window(), 2750, nil, fixedNow)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := h.repo.SaveSchedule(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	h.text(1, "/status")
	out := h.last(t)
	// 10:48 UTC is 13:48 in Moscow.
	if !strings.Contains(out, "Next reminder: 13:48") {
		t.Fatalf("status:\n%s", out)
	}
	if !strings.Contains(out, "Reminders: ✅ Enabled\n") {
		t.Fatalf("13:00 is inside 08:00–22:00:\n%s", out)
	}
}

func TestStatus_OutsideActiveHours(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	p := h.registered(t, 1)
	p.WindowStartM, p.WindowEndM = 18*60, 23*60
	if err := h.repo.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	h.text(1, "/status")
	if out := h.last(t); !strings.Contains(out, "Reminders: ✅ Enabled (outside active hours now)") {
		t.Fatalf("status:\n%s", out)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50); strings.Count(got, "🟦") != 5 {
		t.Fatalf("50%%: %s", got)
	}
	if got := progressBar(180); strings.Count(got, "⬜") != 0 {
		t.Fatalf("180%%: %s", got)
	}
}
