package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/nutriwatch/internal/config"
	"github.com/mamadbah2/nutriwatch/internal/domain/models"
	"github.com/mamadbah2/nutriwatch/internal/service/commands"
	client "github.com/mamadbah2/nutriwatch/pkg/clients/whatsapp"
)

// ErrMessagingDisabled is returned when no WhatsApp client is configured.
var ErrMessagingDisabled = errors.New("whatsapp messaging is not configured")

// MessagingService describes the operations the HTTP layer and scheduler can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg        config.WhatsAppConfig
	client     client.Client
	dispatcher commands.Dispatcher
	handled    *handledMessages
	logger     *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. A nil client disables
// outbound sends.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, dispatcher commands.Dispatcher, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWhatsAppService{
		cfg:        cfg,
		client:     client,
		dispatcher: dispatcher,
		handled:    newHandledMessages(handledMessageCapacity),
		logger:     logger,
	}
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if s.cfg.VerifyToken == "" || verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads. Every message is handled
// and the first failure is returned.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage) error {
	text := extractMessageText(msg)
	if text == "" {
		return errors.New("empty message body")
	}

	if !s.handled.claim(msg.ID) {
		s.logger.Info("skipping redelivered message", zap.String("message_id", msg.ID))
		return nil
	}

	cmd := models.ParseCommand(text)
	s.logger.Info("parsed inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	reply, err := s.dispatcher.HandleCommand(ctx, cmd, msg.From)
	switch {
	case errors.Is(err, commands.ErrInvalidArguments):
		reply = fmt.Sprintf("Could not read that entry: %v\n\n%s", err, commands.HelpText)
	case errors.Is(err, commands.ErrUnsupportedCommand):
		reply = commands.HelpText
	case err != nil:
		s.handled.release(msg.ID)
		return fmt.Errorf("dispatch %s: %w", cmd.Type, err)
	}

	// The command already ran; failing here would make Meta redeliver it.
	if err := s.send(ctx, client.TextMessage{To: msg.From, Body: reply}); err != nil {
		s.logger.Warn("failed to send reply",
			zap.Error(err),
			zap.String("to", msg.From),
			zap.String("message_id", msg.ID))
	}
	return nil
}

// SendOutbound lets operators and the scheduler push notifications.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	return s.send(ctx, client.TextMessage{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
}

func (s *MetaWhatsAppService) send(ctx context.Context, msg client.TextMessage) error {
	if s.client == nil {
		return ErrMessagingDisabled
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, msg)
	return err
}

func extractMessageText(msg models.InboundMessage) string {
	if msg.Text != nil {
		return msg.Text.Body
	}

	if msg.Interactive != nil {
		if msg.Interactive.ButtonReply != nil {
			return msg.Interactive.ButtonReply.ID
		}
		if msg.Interactive.ListReply != nil {
			return msg.Interactive.ListReply.ID
		}
	}

	return ""
}
