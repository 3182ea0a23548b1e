package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"bimbingan_service/internal/notification"
)

const maxLoggedPayload = 256

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("cannot create logger: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	brokers := splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092"))
	topic := getEnv("NOTIFICATION_TOPIC", "bimbingan-notifications")
	groupID := getEnv("KAFKA_GROUP_ID", "bimbingan-notifier")
	templatesPath := getEnv("TEMPLATES_PATH", "./config/templates.yaml")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	templates, err := LoadTemplates(templatesPath)
	if err != nil {
		logger.Fatal("Failed to load templates", zap.String("path", templatesPath), zap.Error(err))
	}

	sender := NewWhatsAppSender(
		getEnv("WA_GATEWAY_URL", "http://localhost:3000/send"),
		os.Getenv("WA_GATEWAY_TOKEN"),
		&http.Client{Timeout: 15 * time.Second},
	)

	logger.Info("Starting notification consumer",
		zap.String("topic", topic),
		zap.Strings("brokers", brokers),
		zap.String("group_id", groupID),
	)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("Consumer shutting down")
				return
			}
			logger.Error("Failed to fetch message", zap.Error(err))
			continue
		}

		processMessage(ctx, logger, templates, sender, msg)

		// Delivery is best effort; a failed message is never redelivered.
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("Failed to commit message", zap.Error(err))
		}
	}
}

// processMessage renders and delivers one notification. It never fails: every outcome is logged.
func processMessage(ctx context.Context, logger *zap.Logger, templates Templates, sender Sender, msg kafka.Message) {
	var n notification.Message
	if err := json.Unmarshal(msg.Value, &n); err != nil {
		logger.Warn("Failed to unmarshal message",
			zap.String("topic", msg.Topic),
			zap.ByteString("value", truncateBytes(msg.Value, maxLoggedPayload)),
			zap.Error(err),
		)
		return
	}

	text, err := templates.Render(n.Kind, n.Args...)
	if err != nil {
		logger.Warn("Failed to render notification",
			zap.String("id", n.ID.String()),
			zap.String("kind", string(n.Kind)),
			zap.Error(err),
		)
		return
	}

	if err := sender.Send(ctx, n.Phone, text); err != nil {
		logger.Warn("Failed to deliver notification",
			zap.String("id", n.ID.String()),
			zap.String("kind", string(n.Kind)),
			zap.Error(err),
		)
		return
	}

	logger.Info("Notification delivered",
		zap.String("id", n.ID.String()),
		zap.String("kind", string(n.Kind)),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func truncateBytes(data []byte, limit int) []byte {
	if len(data) <= limit {
		return data
	}
	return data[:limit]
}
