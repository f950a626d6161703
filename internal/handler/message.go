package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boutique/internal/model"
	"boutique/internal/repository"
	"boutique/internal/utils"
)

// MessageHandler exposes the user-to-user message store.
type MessageHandler struct {
	Messages *repository.MessageRepo
}

func NewMessageHandler(m *repository.MessageRepo) *MessageHandler {
	return &MessageHandler{Messages: m}
}

// List handles GET /api/messages.
func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.Messages.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, messages)
}

type sendMessageReq struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
}

// Send handles POST /api/sendMessage. An attachment needs a file_type of
// image or audio; text-only messages leave both attachment fields empty.
func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Request must be JSON"})
	}
	for _, f := range []struct{ name, val string }{
		{"sender", req.Sender},
		{"receiver", req.Receiver},
	} {
		if f.val == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing field: " + f.name})
		}
	}
	if req.FilePath != "" && req.FileType != "image" && req.FileType != "audio" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file_type value"})
	}

	id, err := h.Messages.Create(c.Request().Context(), model.Message{
		Sender:   utils.Sanitize(req.Sender),
		Receiver: utils.Sanitize(req.Receiver),
		Content:  utils.Sanitize(req.Content),
		FilePath: utils.Sanitize(req.FilePath),
		FileType: req.FileType,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": id})
}
