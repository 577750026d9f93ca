package events

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/nats-io/nats.go"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
	"github.com/riskibarqy/league-hub/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const DefaultSubject = "leaguehub.competition.updated"

type NATSPublisherConfig struct {
	URL     string
	Subject string
	Name    string
	Timeout time.Duration
}

// msgPublisher is the part of *nats.Conn the publisher needs.
type msgPublisher interface {
	PublishMsg(msg *nats.Msg) error
}

// NATSPublisher announces committed competition changes so read replicas and
// downstream consumers can refresh.
type NATSPublisher struct {
	conn    msgPublisher
	closer  func()
	subject string
	logger  *logging.Logger
}

func NewNATSPublisher(cfg NATSPublisherConfig, logger *logging.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "league-hub"
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name(name),
		nats.Timeout(timeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(conn *nats.Conn) {
			logger.Info("nats reconnected", "url", conn.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	publisher := newNATSPublisher(nc, cfg.Subject, logger)
	publisher.closer = nc.Close
	return publisher, nil
}

func newNATSPublisher(conn msgPublisher, subject string, logger *logging.Logger) *NATSPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATSPublisher{conn: conn, subject: subject, logger: logger}
}

// PublishCompetitionUpdated sends the event on <subject>.<competition id>.
// The message id lets JetStream drop redelivered duplicates.
func (p *NATSPublisher) PublishCompetitionUpdated(ctx context.Context, event usecase.CompetitionUpdated) error {
	body, err := sonic.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal competition updated event: %w", err)
	}

	msg := nats.NewMsg(p.subject + "." + subjectToken(event.CompetitionID))
	msg.Data = body
	msg.Header.Set(nats.MsgIdHdr, messageID(event))
	msg.Header.Set("Content-Type", "application/json")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("nats.subject", msg.Subject),
			attribute.String("competition.id", event.CompetitionID),
			attribute.Int64("competition.version", event.Version),
		)
	}

	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}

	p.logger.DebugContext(ctx, "competition updated event published",
		"subject", msg.Subject,
		"competition_id", event.CompetitionID,
		"version", event.Version,
		"reason", event.Reason,
	)
	return nil
}

func (p *NATSPublisher) Close() {
	if p.closer != nil {
		p.closer()
	}
}

func messageID(event usecase.CompetitionUpdated) string {
	return event.CompetitionID + ":" + strconv.FormatInt(event.Version, 10)
}

// subjectToken keeps ids from introducing extra subject levels or wildcards.
func subjectToken(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t':
			return '_'
		default:
			return r
		}
	}, id)
}
