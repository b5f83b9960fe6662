package app

import (
	"fmt"

	"github.com/studyloop/studyloop-backend/internal/clients/openai"
	"github.com/studyloop/studyloop-backend/internal/clients/sendgrid"
	"github.com/studyloop/studyloop-backend/internal/logger"
)

type Clients struct {
	OpenAI   openai.Client
	SendGrid sendgrid.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	openaiClient, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	// Email is optional: without SENDGRID_API_KEY the app still serves reports,
	// it just reports send_email requests as failed dispatches.
	sendgridClient, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("SendGrid client unavailable, email dispatch disabled", "error", err)
		sendgridClient = nil
	}

	return Clients{
		OpenAI:   openaiClient,
		SendGrid: sendgridClient,
	}, nil
}
