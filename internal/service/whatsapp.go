package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	"billpay-settlement/internal/config"
	"billpay-settlement/pkg/logger"
)

var nonDigits = regexp.MustCompile(`[^\d]`)

// WhatsAppNotifier sends operator alerts to a WhatsApp chat or group
type WhatsAppNotifier struct {
	client      *whatsmeow.Client
	container   *sqlstore.Container
	destination types.JID
	logger      *logger.Logger
}

// NewWhatsAppNotifier opens the device session store and prepares a client.
// Call Connect before sending.
func NewWhatsAppNotifier(ctx context.Context, cfg *config.WhatsAppConfig, log *logger.Logger) (*WhatsAppNotifier, error) {
	destination, err := ParseAlertDestination(cfg.AlertDestination)
	if err != nil {
		return nil, err
	}

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", cfg.DBPath), waLog.Noop)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return &WhatsAppNotifier{
		client:      whatsmeow.NewClient(deviceStore, waLog.Stdout("WhatsApp", cfg.LogLevel, true)),
		container:   container,
		destination: destination,
		logger:      log,
	}, nil
}

// ParseAlertDestination accepts a full JID (user or group) or a phone number
// in international format.
func ParseAlertDestination(destination string) (types.JID, error) {
	destination = strings.TrimSpace(destination)
	if strings.Contains(destination, "@") {
		jid, err := types.ParseJID(destination)
		if err != nil {
			return types.JID{}, fmt.Errorf("invalid alert destination JID: %w", err)
		}
		return jid, nil
	}

	phone := strings.TrimLeft(nonDigits.ReplaceAllString(destination, ""), "0")
	if len(phone) < 8 || len(phone) > 15 {
		return types.JID{}, fmt.Errorf("invalid alert destination %q", destination)
	}
	return types.NewJID(phone, types.DefaultUserServer), nil
}

// Connect connects the client, pairing through a terminal QR code when no
// session is stored yet.
func (n *WhatsAppNotifier) Connect(ctx context.Context) error {
	n.client.AddEventHandler(n.handleEvent)

	if n.client.Store.ID != nil {
		n.logger.Info("Existing WhatsApp session found, connecting")
		if err := n.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	}

	n.logger.Info("No WhatsApp session found, starting QR code pairing")
	qrChan, err := n.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}
	if err := n.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	refreshes := 0
	for evt := range qrChan {
		switch evt.Event {
		case whatsmeow.QRChannelEventCode:
			refreshes++
			fmt.Println("\nScan with WhatsApp > Linked Devices > Link a Device:")
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			n.logger.Info("QR code displayed", "refresh_count", refreshes)
		case whatsmeow.QRChannelEventError:
			return fmt.Errorf("QR pairing failed: %w", evt.Error)
		case "success":
			n.logger.Info("WhatsApp pairing successful")
			return nil
		case "timeout":
			return fmt.Errorf("QR code scan timeout")
		default:
			n.logger.Info("QR channel event", "event", evt.Event)
		}
	}

	if !n.client.IsLoggedIn() {
		return fmt.Errorf("QR pairing ended without login")
	}
	return nil
}

func (n *WhatsAppNotifier) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.PairSuccess:
		n.logger.Info("WhatsApp device paired", "jid", v.ID.String())
	case *events.Connected:
		n.logger.Info("WhatsApp client connected")
	case *events.Disconnected:
		n.logger.Warn("WhatsApp client disconnected")
	case *events.LoggedOut:
		n.logger.Error("WhatsApp device logged out", "reason", v.Reason)
	}
}

// Notify sends message to the alert destination
func (n *WhatsAppNotifier) Notify(ctx context.Context, message string) error {
	if !n.client.IsConnected() {
		return fmt.Errorf("WhatsApp client not connected")
	}

	resp, err := n.client.SendMessage(ctx, n.destination, &waE2E.Message{
		Conversation: proto.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}

	n.logger.Debug("Operator alert sent", "message_id", resp.ID, "destination", n.destination.String())
	return nil
}

// IsConnected reports whether alerts can currently be delivered
func (n *WhatsAppNotifier) IsConnected() bool {
	return n.client.IsConnected()
}

// Disconnect closes the WhatsApp connection
func (n *WhatsAppNotifier) Disconnect() {
	n.client.Disconnect()
	n.logger.Info("WhatsApp client disconnected")
}

// Status describes the notifier for health checks
func (n *WhatsAppNotifier) Status() map[string]interface{} {
	status := map[string]interface{}{
		"channel":   "whatsapp",
		"connected": n.IsConnected(),
	}
	if n.client.Store.ID != nil {
		status["phone"] = n.client.Store.ID.User
	}
	return status
}

// LogNotifier writes operator alerts to the log when no chat channel is configured
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Notify logs the alert
func (n *LogNotifier) Notify(ctx context.Context, message string) error {
	n.logger.Warn("Operator alert", "alert", message)
	return nil
}

// Status describes the notifier for health checks
func (n *LogNotifier) Status() map[string]interface{} {
	return map[string]interface{}{"channel": "log", "connected": true}
}
