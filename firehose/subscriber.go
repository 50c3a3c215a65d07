package firehose

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

const reconnectDelay = 5 * time.Second

// Handler processes one decoded event. Returning an error logs it and keeps
// the stream going; the subscriber never stops on a bad event.
type Handler func(ctx context.Context, ev Event) error

// Subscriber maintains a websocket subscription to a Jetstream endpoint.
type Subscriber struct {
	url         string
	collections []string
	handler     Handler
	logger      *slog.Logger

	cursor int64
}

// NewSubscriber builds a subscriber for the given websocket URL. collections
// filters which record collections the stream delivers; empty means all.
func NewSubscriber(streamURL string, collections []string, handler Handler, logger *slog.Logger) *Subscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscriber{
		url:         streamURL,
		collections: collections,
		handler:     handler,
		logger:      logger,
	}
}

// SetCursor resumes the stream from a prior position (microseconds). Call
// before Run.
func (s *Subscriber) SetCursor(cursor int64) { s.cursor = cursor }

// Cursor returns the position of the last processed event, for the caller to
// persist.
func (s *Subscriber) Cursor() int64 { return s.cursor }

// Run connects and processes events until the context is cancelled,
// reconnecting after transient errors.
func (s *Subscriber) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.subscribe(ctx); err != nil {
				s.logger.Error("stream connection lost, reconnecting",
					slog.String("error", err.Error()),
					slog.String("module", "firehose"),
				)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(reconnectDelay):
				}
			}
		}
	}
}

func (s *Subscriber) buildURL() (string, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return "", fmt.Errorf("invalid stream url: %w", err)
	}
	q := u.Query()
	for _, c := range s.collections {
		q.Add("wantedCollections", c)
	}
	if s.cursor > 0 {
		q.Set("cursor", fmt.Sprintf("%d", s.cursor))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Subscriber) subscribe(ctx context.Context) error {
	wsURL, err := s.buildURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial stream: %w", err)
	}
	defer conn.Close()

	s.logger.Info("connected to event stream",
		slog.String("url", wsURL),
		slog.String("module", "firehose"),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		ev, err := parseEvent(message)
		if err != nil {
			s.logger.Error("undecodable event",
				slog.String("error", err.Error()),
				slog.String("module", "firehose"),
			)
			continue
		}

		if err := s.handler(ctx, ev); err != nil {
			s.logger.Error("handler failed",
				slog.String("error", err.Error()),
				slog.String("kind", ev.Kind),
				slog.String("module", "firehose"),
			)
		}

		if ev.TimeUS > 0 {
			s.cursor = ev.TimeUS
		}
	}
}
