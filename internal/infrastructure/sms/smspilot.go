package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"book-catalog/internal/config"
)

// SmsPilotService sends SMS through the smspilot.ru HTTP API.
type SmsPilotService struct {
	apiURL        string
	apiKey        string
	countryPrefix string
	trunkPrefix   string
	client        *http.Client
}

func NewSmsPilotService(cfg config.SMSConfig) *SmsPilotService {
	return &SmsPilotService{
		apiURL:        cfg.APIURL,
		apiKey:        cfg.APIKey,
		countryPrefix: cfg.CountryPrefix,
		trunkPrefix:   cfg.TrunkPrefix,
		client:        &http.Client{Timeout: cfg.Timeout},
	}
}

type sendResponse struct {
	Send []struct {
		Status int `json:"status"`
		Error  struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"send"`
}

// Send delivers one SMS message. A single attempt, no retries.
func (s *SmsPilotService) Send(ctx context.Context, recipient, message string) error {
	params := url.Values{}
	params.Set("send", message)
	params.Set("to", s.NormalizePhone(recipient))
	params.Set("apikey", s.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms api returned status %d", resp.StatusCode)
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode sms response: %w", err)
	}

	for _, r := range result.Send {
		if r.Status == 0 {
			log.Info().Str("recipient", recipient).Msg("SMS sent successfully")
			return nil
		}
		log.Error().
			Str("recipient", recipient).
			Str("description", r.Error.Description).
			Msg("SMS sending failed")
	}

	return fmt.Errorf("sms delivery rejected by provider")
}

// NormalizePhone brings a phone number to international form: everything but
// digits and '+' is stripped, a leading national trunk prefix is rewritten to
// the country prefix, and numbers without any prefix receive the default one.
func (s *SmsPilotService) NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	p := b.String()

	if s.trunkPrefix != "" && strings.HasPrefix(p, s.trunkPrefix) {
		p = s.countryPrefix + p[len(s.trunkPrefix):]
	}

	if !strings.HasPrefix(p, "+") {
		p = s.countryPrefix + p
	}

	return p
}
