package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UI texts in English
const (
	startText = "👋 I am your hydration assistant.\n\n" +
		"I compute a daily water goal from your weight, activity and the weather, " +
		"and spread reminders over your active hours."
	askWeightText = "To start, send me your weight in kg (e.g. 72 or 72.5)."
	helpText      = "Commands:\n" +
		"/status: today's progress\n" +
		"/drink 300 [water|tea|coffee|juice|soda]: log a drink\n" +
		"/weight, /gender, /activity, /mode: goal settings\n" +
		"/city, /tz, /hours: weather city, timezone, active hours\n" +
		"/pause, /resume: stop or restart reminders"
	statusTitle = "🧾 Today"
	statusFmt   = "• Goal: %d ml (%d glasses)\n• Consumed: %d ml\n%s %d%%\n• Next reminder: %s\n\n" +
		"• Weight: %.1f kg, %s, %s activity, %s mode\n• City: %s\n• TZ: %s\n• Active hours: %s–%s\n• Reminders: %s\n"

	drankButton   = "🥛 I drank 250 ml"
	drankCallback = "drank:250"
)

// progressBar renders percent as ten cells.
func progressBar(percent int) string {
	filled := percent / 10
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("🟦", filled) + strings.Repeat("⬜", 10-filled)
}

// mainMenuKeyboard builds a reply keyboard with a single toggle button:
// if enabled is true -> "/pause", else -> "/resume".
func mainMenuKeyboard(enabled bool) tgbotapi.ReplyKeyboardMarkup {
	toggle := "/pause"
	if !enabled {
		toggle = "/resume"
	}
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/status"),
			tgbotapi.NewKeyboardButton("/drink 250"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/mode"),
			tgbotapi.NewKeyboardButton(toggle),
		),
	)
}

func drankKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(drankButton, drankCallback),
		),
	)
}

func genderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👨 Male", "gender:male"),
			tgbotapi.NewInlineKeyboardButtonData("👩 Female", "gender:female"),
		),
	)
}

func activityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🪑 Low", "activity:low"),
			tgbotapi.NewInlineKeyboardButtonData("🚶 Medium", "activity:medium"),
			tgbotapi.NewInlineKeyboardButtonData("🏃 High", "activity:high"),
		),
	)
}

func modeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Normal", "mode:normal"),
			tgbotapi.NewInlineKeyboardButtonData("🏋️ Workout", "mode:workout"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Focus", "mode:focus"),
			tgbotapi.NewInlineKeyboardButtonData("🌴 Vacation", "mode:vacation"),
		),
	)
}

func hoursPresetsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("08:00–22:00", "hours:08:00-22:00"),
			tgbotapi.NewInlineKeyboardButtonData("09:00–21:00", "hours:09:00-21:00"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("07:00–23:00", "hours:07:00-23:00"),
			tgbotapi.NewInlineKeyboardButtonData("✍️ Custom…", "hours:custom"),
		),
	)
}

func tzPresetsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Europe/Moscow", "tz:Europe/Moscow"),
			tgbotapi.NewInlineKeyboardButtonData("Europe/Berlin", "tz:Europe/Berlin"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Asia/Almaty", "tz:Asia/Almaty"),
			tgbotapi.NewInlineKeyboardButtonData("UTC", "tz:UTC"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✍️ Custom…", "tz:custom"),
		),
	)
}
