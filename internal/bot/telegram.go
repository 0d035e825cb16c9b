package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	"alphascope/internal/report"

	tele "gopkg.in/telebot.v3"
)

// Summarizer is the composer surface the bot dispatches to. Every command
// and callback resolves to one of these four report operations.
type Summarizer interface {
	MarketSummary(ctx context.Context) string
	BitcoinSummary(ctx context.Context) string
	TrendingSummary(ctx context.Context) string
	DefiSummary(ctx context.Context) string
}

// StartTelegramBot registers the command and callback handlers and starts
// the long poller in the background. With an empty token the bot is
// skipped; main treats a missing token as fatal before getting here, so
// the skip path matters only for tests and API-only deployments.
func StartTelegramBot(token string, reports Summarizer) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	registerHandlers(b, reports, time.Now().UTC())

	log.Println("Telegram bot started")
	go b.Start()
}

type keyboard struct {
	markup   *tele.ReplyMarkup
	alpha    tele.Btn
	btc      tele.Btn
	trending tele.Btn
	defi     tele.Btn
	menu     tele.Btn
	help     tele.Btn
}

func newKeyboard() keyboard {
	m := &tele.ReplyMarkup{}
	k := keyboard{
		markup:   m,
		alpha:    m.Data("📊 Market Alpha", "get_alpha"),
		btc:      m.Data("₿ Bitcoin", "get_btc"),
		trending: m.Data("🔥 Trending", "get_trending"),
		defi:     m.Data("🏗️ DeFi", "get_defi"),
		menu:     m.Data("📋 Menu", "show_menu"),
		help:     m.Data("ℹ️ Help", "show_help"),
	}
	m.Inline(
		m.Row(k.alpha, k.btc),
		m.Row(k.trending, k.defi),
		m.Row(k.menu, k.help),
	)
	return k
}

func registerHandlers(b *tele.Bot, reports Summarizer, startedAt time.Time) {
	k := newKeyboard()

	b.Handle("/start", func(c tele.Context) error {
		name := ""
		if c.Sender() != nil {
			name = c.Sender().FirstName
		}
		return c.Send(welcomeText(name), k.markup, tele.ModeMarkdown)
	})

	b.Handle("/alpha", func(c tele.Context) error {
		_ = c.Notify(tele.Typing)
		return c.Send(reports.MarketSummary(context.Background()), tele.ModeMarkdown)
	})

	b.Handle("/btc", func(c tele.Context) error {
		_ = c.Notify(tele.Typing)
		return c.Send(reports.BitcoinSummary(context.Background()), tele.ModeMarkdown)
	})

	b.Handle("/trending", func(c tele.Context) error {
		_ = c.Notify(tele.Typing)
		return c.Send(reports.TrendingSummary(context.Background()), tele.ModeMarkdown)
	})

	b.Handle("/defi", func(c tele.Context) error {
		_ = c.Notify(tele.Typing)
		return c.Send(reports.DefiSummary(context.Background()), tele.ModeMarkdown)
	})

	b.Handle("/menu", func(c tele.Context) error {
		return c.Send(menuText(), k.markup, tele.ModeMarkdown)
	})

	b.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText(), tele.ModeMarkdown)
	})

	b.Handle("/about", func(c tele.Context) error {
		return c.Send(aboutText(startedAt, time.Now().UTC()), tele.ModeMarkdown)
	})

	// Inline buttons re-invoke the same composer operations and edit the
	// original message in place.
	b.Handle(&k.alpha, editWith(func(ctx context.Context) string { return reports.MarketSummary(ctx) }))
	b.Handle(&k.btc, editWith(func(ctx context.Context) string { return reports.BitcoinSummary(ctx) }))
	b.Handle(&k.trending, editWith(func(ctx context.Context) string { return reports.TrendingSummary(ctx) }))
	b.Handle(&k.defi, editWith(func(ctx context.Context) string { return reports.DefiSummary(ctx) }))
	b.Handle(&k.menu, func(c tele.Context) error {
		_ = c.Respond()
		return c.Send(menuText(), k.markup, tele.ModeMarkdown)
	})
	b.Handle(&k.help, func(c tele.Context) error {
		_ = c.Respond()
		return c.Send(helpText(), tele.ModeMarkdown)
	})
}

func editWith(compose func(ctx context.Context) string) tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = c.Respond()
		_ = c.Notify(tele.Typing)
		return c.Edit(compose(context.Background()), tele.ModeMarkdown)
	}
}

func welcomeText(firstName string) string {
	greeting := "👋 *Welcome!*"
	if firstName != "" {
		greeting = fmt.Sprintf("👋 *Welcome %s!*", firstName)
	}
	return greeting + "\n\n" +
		"🤖 I'm *" + report.BotName + "* - your crypto intelligence assistant!\n\n" +
		"*🚀 What I can do:*\n" +
		"• Real-time market analysis\n" +
		"• Bitcoin & altcoin tracking\n" +
		"• Market sentiment analysis\n" +
		"• DeFi protocol insights\n" +
		"• Trending cryptocurrency alerts\n\n" +
		"*📱 Quick Commands:*\n" +
		"/alpha - Market summary\n" +
		"/btc - Bitcoin price\n" +
		"/trending - Hot coins\n" +
		"/defi - Top DeFi projects\n" +
		"/menu - All options\n\n" +
		"💡 *Add me to groups/channels for shared updates!*"
}

func menuText() string {
	return "📋 *ALPHASCOPE BOT MENU*\n\n" +
		"*📊 Market Data:*\n" +
		"/alpha - Complete market summary\n" +
		"/btc - Bitcoin price & stats\n" +
		"/trending - Trending cryptocurrencies\n" +
		"/defi - Top DeFi protocols\n\n" +
		"*🛠️ Bot Functions:*\n" +
		"/menu - Show this menu\n" +
		"/help - Detailed help guide\n" +
		"/about - Bot information\n\n" +
		"*💡 Pro Tips:*\n" +
		"• Add me to groups for shared updates\n" +
		"• Use buttons for faster access\n" +
		"• Commands work in any chat with me"
}

func helpText() string {
	return "🤖 *" + report.BotName + " HELP GUIDE*\n\n" +
		"*🎯 What I Do:*\n" +
		"I provide real-time cryptocurrency market intelligence by analyzing data from multiple sources.\n\n" +
		"*📊 Data Sources:*\n" +
		"• CoinGecko - Price & market data\n" +
		"• DefiLlama - DeFi TVL data\n" +
		"• Alternative.me - Sentiment analysis\n\n" +
		"*💻 Available Commands:*\n" +
		"/start - Welcome & quick buttons\n" +
		"/alpha - Full market analysis\n" +
		"/btc - Bitcoin price update\n" +
		"/trending - Hot cryptocurrencies\n" +
		"/defi - Top DeFi protocols\n" +
		"/menu - Interactive menu\n" +
		"/help - This help guide\n\n" +
		"*🚀 How to Use:*\n" +
		"• Personal chat: Just send any command\n" +
		"• Groups: Add me and use commands\n" +
		"• Channels: Add me as admin for posting"
}

func aboutText(startedAt, now time.Time) string {
	uptime := now.Sub(startedAt).Truncate(time.Second)
	return "🤖 *" + report.BotName + "*\n\n" +
		"🔢 *Version:* " + report.BotVersion + "\n" +
		"⏰ *Uptime:* " + uptime.String() + "\n" +
		"🚀 *Started:* " + startedAt.Format("2006-01-02 15:04 UTC") + "\n\n" +
		"*🎯 Features:*\n" +
		"• Real-time crypto market data\n" +
		"• Bitcoin price tracking\n" +
		"• Market sentiment analysis\n" +
		"• DeFi protocol monitoring\n" +
		"• Trending cryptocurrency alerts"
}
