package sms

import (
	"context"

	"github.com/rs/zerolog/log"
)

// MockSMSService logs messages instead of sending them.
// Used in development and when no API key is configured.
type MockSMSService struct{}

func NewMockSMSService() *MockSMSService {
	return &MockSMSService{}
}

func (s *MockSMSService) Send(_ context.Context, recipient, message string) error {
	log.Info().
		Str("recipient", recipient).
		Str("message", message).
		Msg("[MOCK] SMS sent successfully")

	return nil
}
