// Package bot wires the user stream, mention classifier, scoring engine,
// rate limiter, and dedupe store into one event pipeline.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wortwert/wortwert/dedupe"
	"github.com/wortwert/wortwert/mastodon"
	"github.com/wortwert/wortwert/ratelimit"
	"github.com/wortwert/wortwert/scrabble"
	"github.com/wortwert/wortwert/triage"
	"github.com/wortwert/wortwert/util"
)

// Config carries the pieces assembled at startup.
type Config struct {
	Client  *mastodon.Client
	Logger  *slog.Logger
	Engine  *scrabble.Engine
	Limiter *ratelimit.Limiter
	Store   *dedupe.Store

	// SelfID is the bot's own account id, from verify_credentials.
	SelfID string
	// MonitoredID enables scoring of that account's own posts. Empty
	// disables the monitored-post stream.
	MonitoredID string

	// ReconnectBase is the first generic reconnect delay. Zero means 30s.
	ReconnectBase time.Duration
	// MaxPostsHour/MaxPostsDay cap total outbound posts. Zero means the
	// package defaults.
	MaxPostsHour int64
	MaxPostsDay  int64
}

// Bot consumes the user stream and replies with word scores.
type Bot struct {
	client      *mastodon.Client
	logger      *slog.Logger
	engine      *scrabble.Engine
	classifier  *triage.Classifier
	limiter     *ratelimit.Limiter
	store       *dedupe.Store
	sender      *replySender
	selfID      string
	monitoredID string
	backoff     backoff
}

func New(cfg Config) *Bot {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	base := cfg.ReconnectBase
	if base <= 0 {
		base = 30 * time.Second
	}
	return &Bot{
		client:      cfg.Client,
		logger:      logger.With("component", "bot"),
		engine:      cfg.Engine,
		classifier:  triage.New(cfg.SelfID),
		limiter:     cfg.Limiter,
		store:       cfg.Store,
		sender:      newReplySender(cfg.Client, logger.With("component", "sender"), cfg.MaxPostsHour, cfg.MaxPostsDay),
		selfID:      cfg.SelfID,
		monitoredID: cfg.MonitoredID,
		backoff:     backoff{base: base},
	}
}

// Run drives the stream until the context is cancelled, reconnecting with
// class-specific backoff after every failure.
func (b *Bot) Run(ctx context.Context) error {
	for {
		start := time.Now()
		err := b.runSession(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.backoff.observeSession(time.Since(start))

		class := "generic"
		var delay time.Duration
		if errors.Is(err, mastodon.ErrMalformedEvent) {
			class = "malformed"
			delay = b.backoff.nextMalformed()
		} else {
			delay = b.backoff.nextGeneric()
		}
		reconnects.WithLabelValues(class).Inc()
		b.logger.Warn("stream session ended, reconnecting", "err", err, "class", class, "delay", delay)

		if err := sleepCtx(ctx, delay); err != nil {
			return err
		}
	}
}

func (b *Bot) runSession(ctx context.Context) error {
	con, err := b.client.DialUserStream(ctx)
	if err != nil {
		return err
	}
	b.logger.Info("connected to user stream", "host", b.client.Host)

	// Handling errors stay inside the callbacks: a failed reply must not
	// tear down the stream.
	cb := &mastodon.StreamCallbacks{
		Notification: func(n *mastodon.Notification) error {
			if n.Type != "mention" || n.Status == nil {
				return nil
			}
			b.HandleEvent(ctx, Event{Source: SourceMention, Status: n.Status})
			return nil
		},
		Update: func(s *mastodon.Status) error {
			b.HandleEvent(ctx, Event{Source: SourceMonitoredPost, Status: s})
			return nil
		},
	}
	return mastodon.HandleUserStream(ctx, con, cb)
}

// HandleEvent runs one status through the pipeline for its source.
func (b *Bot) HandleEvent(ctx context.Context, ev Event) {
	switch ev.Source {
	case SourceMention:
		b.handleMention(ctx, ev.Status)
	case SourceMonitoredPost:
		b.handleMonitoredPost(ctx, ev.Status)
	}
}

func (b *Bot) handleMention(ctx context.Context, st *mastodon.Status) {
	if st.Account.ID == b.selfID {
		return
	}
	log := b.logger.With("source", SourceMention.String(), "status", st.ID, "acct", st.Account.Acct)

	if !b.store.ShouldProcess(dedupe.StreamMentions, st.ID) {
		eventsProcessed.WithLabelValues(SourceMention.String(), "duplicate").Inc()
		return
	}

	text := util.ExtractText(st.Content)
	m := triage.Mention{
		Text:               text,
		InReplyToAccountID: st.InReplyToAccountID,
	}
	if st.Quote != nil {
		m.QuotedAccountID = st.Quote.Account.ID
	}
	if st.Reblog != nil {
		m.ReblogOfAccountID = st.Reblog.Account.ID
	}
	if ignore, reason := b.classifier.ShouldIgnore(m); ignore {
		log.Debug("ignoring mention", "reason", reason)
		b.store.MarkProcessed(dedupe.StreamMentions, st.ID)
		eventsProcessed.WithLabelValues(SourceMention.String(), "ignored").Inc()
		return
	}

	// The watermark moves before any reply goes out. A crash mid-reply can
	// drop a response but never produce a duplicate one.
	b.store.MarkProcessed(dedupe.StreamMentions, st.ID)

	errLocale := b.messageLocale(st.Language)

	if !b.limiter.Allow(st.Account.ID) {
		log.Info("requester rate limited")
		eventsProcessed.WithLabelValues(SourceMention.String(), "rate_limited").Inc()
		b.reply(ctx, log, st, scrabble.RateLimitedMessage(errLocale), errLocale)
		return
	}

	word, multiple, ok := triage.ExtractWord(text)
	if multiple {
		eventsProcessed.WithLabelValues(SourceMention.String(), "multi_word").Inc()
		b.reply(ctx, log, st, scrabble.MultiWordError(errLocale), errLocale)
		return
	}
	if !ok {
		log.Debug("no word in mention")
		eventsProcessed.WithLabelValues(SourceMention.String(), "no_word").Inc()
		return
	}
	if !scrabble.IsValidWord(word) {
		eventsProcessed.WithLabelValues(SourceMention.String(), "invalid_word").Inc()
		b.reply(ctx, log, st, scrabble.InvalidWordError(errLocale), errLocale)
		return
	}

	points, locale := b.engine.Score(word, st.Language)
	if scrabble.IsUnsupportedScript(word, points) {
		unsLocale := errLocale
		if _, declared := scrabble.ResolveLocaleTag(st.Language); !declared {
			unsLocale = b.engine.DetectLocale(word)
		}
		eventsProcessed.WithLabelValues(SourceMention.String(), "unsupported_script").Inc()
		b.reply(ctx, log, st, scrabble.UnsupportedLanguageMessage(unsLocale), unsLocale)
		return
	}

	log.Info("scoring word", "word", word, "points", points, "locale", locale)
	eventsProcessed.WithLabelValues(SourceMention.String(), "scored").Inc()
	b.reply(ctx, log, st, scrabble.FormatReply(word, points, locale), locale)
}

// handleMonitoredPost scores posts the monitored account makes itself. Only
// posts that are exactly one scorable word get a reply; everything else
// passes silently, and the per-requester rate limit does not apply.
func (b *Bot) handleMonitoredPost(ctx context.Context, st *mastodon.Status) {
	if b.monitoredID == "" || st.Account.ID != b.monitoredID || st.Reblog != nil {
		return
	}
	log := b.logger.With("source", SourceMonitoredPost.String(), "status", st.ID)

	if !b.store.ShouldProcess(dedupe.StreamMonitoredPosts, st.ID) {
		eventsProcessed.WithLabelValues(SourceMonitoredPost.String(), "duplicate").Inc()
		return
	}
	b.store.MarkProcessed(dedupe.StreamMonitoredPosts, st.ID)

	text := util.ExtractText(st.Content)
	word, multiple, ok := triage.ExtractWord(text)
	if !ok || multiple || !scrabble.IsValidWord(word) {
		eventsProcessed.WithLabelValues(SourceMonitoredPost.String(), "skipped").Inc()
		return
	}

	points, locale := b.engine.Score(word, st.Language)
	if scrabble.IsUnsupportedScript(word, points) {
		eventsProcessed.WithLabelValues(SourceMonitoredPost.String(), "skipped").Inc()
		return
	}

	log.Info("scoring monitored post", "word", word, "points", points, "locale", locale)
	eventsProcessed.WithLabelValues(SourceMonitoredPost.String(), "scored").Inc()
	b.reply(ctx, log, st, scrabble.FormatReply(word, points, locale), locale)
}

// messageLocale picks the locale for error messages: the declared language
// when we support it, the configured default otherwise.
func (b *Bot) messageLocale(declared string) string {
	if loc, ok := scrabble.ResolveLocaleTag(declared); ok {
		return loc
	}
	return b.engine.DefaultLocale()
}

func (b *Bot) reply(ctx context.Context, log *slog.Logger, st *mastodon.Status, message, locale string) {
	toot := mastodon.Toot{
		Status:      fmt.Sprintf("@%s %s", st.Account.Acct, message),
		InReplyToID: st.ID,
		Visibility:  replyVisibility(st.Visibility),
		Language:    locale,
	}
	posted, err := b.sender.Send(ctx, toot)
	if err != nil {
		if errors.Is(err, errBudgetExhausted) {
			log.Warn("dropping reply, post budget exhausted")
		} else {
			log.Error("sending reply failed", "err", err)
		}
		return
	}
	b.store.NoteReply(posted.ID)
}

// replyVisibility keeps the requester's visibility except for public posts,
// which get unlisted replies to stay off the public timelines.
func replyVisibility(v string) string {
	if v == "public" {
		return "unlisted"
	}
	return v
}
