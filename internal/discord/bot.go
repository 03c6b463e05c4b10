// Package discord is the chat surface: messages in a channel become ledger
// records and "!" commands answer summaries.
package discord

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/dompet/internal/report"
	"github.com/MrJamesThe3rd/dompet/internal/speech"
	"github.com/MrJamesThe3rd/dompet/internal/transaction"
)

const (
	commandPrefix = "!"
	maxAudioBytes = 25 << 20
	replyTimeout  = 90 * time.Second
)

type Bot struct {
	session   *discordgo.Session
	svc       *transaction.Service
	channelID string
	client    *http.Client
	log       zerolog.Logger
}

// NewBot creates a bot listening on channelID. An empty channelID accepts
// every channel the bot can read.
func NewBot(token, channelID string, svc *transaction.Service, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}

	bot := &Bot{
		session:   session,
		svc:       svc,
		channelID: channelID,
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}

	session.AddHandler(bot.handleMessage)
	session.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentDirectMessages | discordgo.IntentMessageContent

	return bot, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening discord connection: %w", err)
	}

	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

// Notify posts text to the configured channel.
func (b *Bot) Notify(ctx context.Context, text string) error {
	if b.channelID == "" {
		return errors.New("no discord channel configured")
	}

	if _, err := b.session.ChannelMessageSend(b.channelID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	return nil
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	if b.channelID != "" && m.ChannelID != b.channelID {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	reply := b.respond(ctx, m.Message)
	if reply == "" {
		return
	}

	if _, err := s.ChannelMessageSendReply(m.ChannelID, reply, m.Reference(), discordgo.WithContext(ctx)); err != nil {
		b.log.Error().Err(err).Str("channel", m.ChannelID).Msg("failed to send reply")
	}
}

func (b *Bot) respond(ctx context.Context, m *discordgo.Message) string {
	if att := audioAttachment(m.Attachments); att != nil {
		return b.respondVoice(ctx, att)
	}

	return b.respondText(ctx, m.Content)
}

func (b *Bot) respondText(ctx context.Context, content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	if strings.HasPrefix(content, commandPrefix) {
		return b.respondCommand(ctx, content)
	}

	rec, err := b.svc.Record(ctx, content)

	switch {
	case err == nil:
		return report.Saved(rec)
	case errors.Is(err, transaction.ErrAmountNotFound):
		return report.NotFound("")
	default:
		b.log.Error().Err(err).Msg("failed to record message")
		return "⚠️ Gagal menyimpan catatan, coba lagi nanti."
	}
}

func (b *Bot) respondCommand(ctx context.Context, content string) string {
	name := strings.ToLower(strings.TrimPrefix(strings.Fields(content)[0], commandPrefix))

	switch name {
	case "start", "help":
		return report.Help(commandPrefix)
	}

	period, err := transaction.ParsePeriod(name)
	if err != nil {
		return report.Help(commandPrefix)
	}

	s, err := b.svc.Summarize(ctx, period)
	if err != nil {
		b.log.Error().Err(err).Str("period", string(period)).Msg("failed to summarize")
		return "⚠️ Gagal membaca catatan, coba lagi nanti."
	}

	return report.Summary(s)
}

func (b *Bot) respondVoice(ctx context.Context, att *discordgo.MessageAttachment) string {
	audio, err := b.download(ctx, att.URL)
	if err != nil {
		b.log.Error().Err(err).Str("attachment", att.ID).Msg("failed to download audio")
		return "⚠️ Gagal mengunduh voice note."
	}

	rec, transcript, err := b.svc.RecordVoice(ctx, audio, att.ContentType)

	switch {
	case err == nil:
		return "Teks: " + transcript + "\n" + report.Saved(rec)
	case errors.Is(err, speech.ErrDisabled):
		return "🎙️ Voice note belum diaktifkan. Kirim catatan dalam bentuk teks."
	case errors.Is(err, transaction.ErrTranscription):
		b.log.Warn().Err(err).Msg("transcription failed")
		return "⚠️ Voice note tidak bisa dibaca. Coba ulangi atau kirim teks."
	case errors.Is(err, transaction.ErrAmountNotFound), errors.Is(err, transaction.ErrEmptyText):
		return report.NotFound(transcript)
	default:
		b.log.Error().Err(err).Msg("failed to record voice note")
		return "⚠️ Gagal menyimpan catatan, coba lagi nanti."
	}
}

func (b *Bot) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if len(data) > maxAudioBytes {
		return nil, errors.New("audio too large")
	}

	return data, nil
}

func audioAttachment(atts []*discordgo.MessageAttachment) *discordgo.MessageAttachment {
	for _, a := range atts {
		if strings.HasPrefix(a.ContentType, "audio/") {
			return a
		}
	}

	return nil
}
