package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"

	"github.com/goliatone/go-signup/pkg/client"
	"github.com/goliatone/go-signup/pkg/signup"
)

const maxBodyBytes = 1 << 20

type signupBody struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Country string  `json:"country"`
	Region  *string `json:"region"`
}

// handleSignup is the stub newsletter endpoint.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErrors(w, http.StatusRequestEntityTooLarge, []string{"Request body is too large"})
		return
	}
	status, messages := s.evaluate(raw)
	if status >= 200 && status < 300 {
		s.logger.Info("newsletter signup accepted", "request_id", r.Header.Get(client.RequestIDHeader))
		writeJSON(w, status, map[string]string{"status": "subscribed"})
		return
	}
	s.logger.Info("newsletter signup rejected", "status", status, "messages", len(messages))
	writeErrors(w, status, messages)
}

// submitInProcess runs the stub endpoint logic without a network round trip.
func (s *Server) submitInProcess(ctx context.Context, payload signup.Payload) (signup.Response, error) {
	if err := ctx.Err(); err != nil {
		return signup.Response{}, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return signup.Response{}, fmt.Errorf("devserver: encode payload: %w", err)
	}
	status, messages := s.evaluate(raw)
	return signup.Response{Status: status, ErrorMessages: messages}, nil
}

// evaluate decides the stub endpoint's answer for a raw JSON body.
func (s *Server) evaluate(raw []byte) (int, []string) {
	if s.cfg.FailStatus != 0 {
		return s.cfg.FailStatus, []string{"Simulated failure"}
	}
	if messages := s.contract.Validate(raw); len(messages) > 0 {
		return http.StatusBadRequest, messages
	}

	var body signupBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return http.StatusBadRequest, []string{"Request body must be a JSON object"}
	}

	var messages []string
	if !validEmail(body.Email) {
		messages = append(messages, "Email is invalid")
	}
	country := strings.TrimSpace(body.Country)
	if !s.dataset.Has(country) {
		msg := "Country is invalid"
		if suggestion, ok := s.dataset.Suggest(country); ok {
			msg = fmt.Sprintf("Country is invalid, did you mean %s?", suggestion)
		}
		messages = append(messages, msg)
	} else if body.Region != nil && !s.dataset.HasRegion(country, *body.Region) {
		messages = append(messages, "Region is invalid")
	}
	if len(messages) > 0 {
		return http.StatusBadRequest, messages
	}
	return http.StatusOK, nil
}

func validEmail(raw string) bool {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return false
	}
	return addr.Address == raw && strings.Contains(addr.Address, "@")
}
