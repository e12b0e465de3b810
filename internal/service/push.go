package service

import (
	"context"
	"fmt"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"fashionswap-backend/internal/logger"
)

// messageSender is the part of the FCM client we use.
type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type pushService struct {
	client messageSender
}

// NewPushService connects to Firebase Cloud Messaging. Without a
// credentials file push is disabled and sends are logged only.
func NewPushService(ctx context.Context, credentialsFile, projectID string) (PushService, error) {
	if credentialsFile == "" {
		return &pushService{}, nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &pushService{client: client}, nil
}

func (s *pushService) SendOverdueReminder(ctx context.Context, token, itemName string, daysOverdue int) error {
	if token == "" {
		return nil
	}
	if s.client == nil {
		logger.Info("Push disabled, skipping send", "item", itemName)
		return nil
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "Rental overdue",
			Body:  fmt.Sprintf("%s is %d day(s) overdue. Please return it soon.", itemName, daysOverdue),
		},
		Data: map[string]string{
			"type":         "rental_overdue",
			"days_overdue": strconv.Itoa(daysOverdue),
		},
	}

	logger.ExternalServiceCall("fcm", "Send", "item", itemName)
	id, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "Send", err, "messageID", id)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}
