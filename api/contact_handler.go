package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactMailer interface {
	SendContactMessage(name, email, subject, message string) error
}

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	mailer    contactMailer
}

func newContactHandler(mailer contactMailer) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		mailer:    mailer,
	}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// sendMessage relays a contact-form submission to the configured mailbox.
func (h contactHandler) sendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if err := h.mailer.SendContactMessage(req.Name, req.Email, req.Subject, req.Message); err != nil {
			h.logger.Error().Err(err).Msg("Failed to send contact mail")
			h.responder.WriteJSONStatus(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "Failed to send message.",
			})
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"message": "Message sent successfully!",
		})
	}
}
