// Package handler contains the HTTP handlers for the application.
package handler

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"

	"pizzeria/internal/bot"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// twimlResponse is the reply envelope the messaging gateway expects.
type twimlResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// WebhookHandler bridges the messaging gateway to the dialogue dispatcher.
type WebhookHandler struct {
	dispatcher *bot.Dispatcher
	logger     *slog.Logger
}

// NewWebhookHandler is the constructor for WebhookHandler, injected by Fx.
func NewWebhookHandler(dispatcher *bot.Dispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// HandleInbound receives one gateway form post (fields From and Body) and
// answers with TwiML. The channel prefix on From ("whatsapp:+55...") is
// stripped by phone normalization inside the dispatcher.
func (h *WebhookHandler) HandleInbound(c echo.Context) error {
	from := c.FormValue("From")
	body := c.FormValue("Body")

	if strings.TrimSpace(from) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing From field")
	}

	replies := h.dispatcher.HandleMessage(c.Request().Context(), from, body)

	payload, err := xml.Marshal(twimlResponse{Messages: replies})
	if err != nil {
		return errors.Wrap(err, "failed to marshal twiml")
	}

	return c.Blob(http.StatusOK, "text/xml; charset=utf-8",
		append([]byte(xml.Header), payload...))
}
