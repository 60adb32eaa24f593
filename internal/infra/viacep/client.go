// Package viacep implements the postal-code lookup against the public
// ViaCEP service (https://viacep.com.br).
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pizzeria/config"
	"pizzeria/internal/domain/entity"
	"pizzeria/internal/domain/service"
	"pizzeria/internal/errors"
)

const (
	defaultBaseURL = "https://viacep.com.br"
	defaultTimeout = 5 * time.Second
)

// client implements service.PostalCodeService over the ViaCEP REST API.
type client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a ViaCEP client. The HTTP timeout bounds how long the caller
// (which may hold a per-session lock) can block on the lookup.
func New(cfg *config.Config, logger *slog.Logger) service.PostalCodeService {
	baseURL := defaultBaseURL
	timeout := defaultTimeout
	if cfg.ViaCEP != nil {
		if cfg.ViaCEP.BaseURL != "" {
			baseURL = cfg.ViaCEP.BaseURL
		}
		if cfg.ViaCEP.Timeout > 0 {
			timeout = cfg.ViaCEP.Timeout
		}
	}

	return &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// viaCEPResponse mirrors the ViaCEP JSON payload. Unknown codes come back
// as HTTP 200 with {"erro": true}.
type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup resolves a postal code to an address record. The caller is expected
// to have pre-validated the code's shape; a malformed code is rejected here
// as well so no request is wasted on it.
func (c *client) Lookup(ctx context.Context, code string) (*service.PostalAddress, error) {
	normalized := digitsOnly(code)
	if len(normalized) != entity.PostalCodeLength {
		return nil, service.ErrPostalCodeNotFound
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build viacep request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "viacep request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("viacep returned status %d", resp.StatusCode)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "failed to decode viacep response")
	}

	if payload.Erro {
		return nil, service.ErrPostalCodeNotFound
	}

	c.logger.DebugContext(ctx, "Resolved postal code",
		slog.String("cep", normalized),
		slog.String("city", payload.Localidade),
	)

	return &service.PostalAddress{
		PostalCode: normalized,
		Street:     payload.Logradouro,
		District:   payload.Bairro,
		City:       payload.Localidade,
		State:      payload.UF,
	}, nil
}

func digitsOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}

	return string(out)
}
