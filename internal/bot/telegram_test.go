package bot

import (
	"strings"
	"testing"
	"time"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	// Must return without contacting Telegram or panicking on the nil
	// summarizer.
	StartTelegramBot("", nil)
}

func TestWelcomeText(t *testing.T) {
	text := welcomeText("Ada")
	if !strings.Contains(text, "Welcome Ada!") {
		t.Fatalf("greeting should use first name:\n%s", text)
	}
	if !strings.Contains(text, "/alpha") || !strings.Contains(text, "/menu") {
		t.Fatalf("welcome should list quick commands:\n%s", text)
	}

	anon := welcomeText("")
	if !strings.Contains(anon, "👋 *Welcome!*") || strings.Contains(anon, "Welcome !") {
		t.Fatalf("empty name should fall back to plain greeting:\n%s", anon)
	}
}

func TestMenuTextListsAllCommands(t *testing.T) {
	text := menuText()
	for _, cmd := range []string{"/alpha", "/btc", "/trending", "/defi", "/menu", "/help", "/about"} {
		if !strings.Contains(text, cmd) {
			t.Fatalf("menu missing %s:\n%s", cmd, text)
		}
	}
}

func TestHelpTextNamesDataSources(t *testing.T) {
	text := helpText()
	for _, source := range []string{"CoinGecko", "DefiLlama", "Alternative.me"} {
		if !strings.Contains(text, source) {
			t.Fatalf("help missing data source %s:\n%s", source, text)
		}
	}
}

func TestAboutText(t *testing.T) {
	started := time.Date(2026, time.February, 13, 12, 0, 0, 0, time.UTC)
	now := started.Add(90 * time.Minute)

	text := aboutText(started, now)
	if !strings.Contains(text, "⏰ *Uptime:* 1h30m0s") {
		t.Fatalf("unexpected uptime:\n%s", text)
	}
	if !strings.Contains(text, "🚀 *Started:* 2026-02-13 12:00 UTC") {
		t.Fatalf("unexpected start time:\n%s", text)
	}
}

func TestKeyboardLayout(t *testing.T) {
	k := newKeyboard()
	rows := k.markup.InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("expected 3 button rows, got %d", len(rows))
	}
	for i, row := range rows {
		if len(row) != 2 {
			t.Fatalf("row %d should have 2 buttons, got %d", i, len(row))
		}
	}
	if k.alpha.Unique != "get_alpha" || k.help.Unique != "show_help" {
		t.Fatalf("unexpected callback identifiers: %+v", k)
	}
}
