package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/appointease/internal/httperr"
	"github.com/BruksfildServices01/appointease/internal/httpresp"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	ucMessage "github.com/BruksfildServices01/appointease/internal/usecase/message"
)

type MessageHandler struct {
	send *ucMessage.SendMessage
	list *ucMessage.ListMessages
	seen *ucMessage.MarkSeen
	log  zerolog.Logger
}

func NewMessageHandler(
	send *ucMessage.SendMessage,
	list *ucMessage.ListMessages,
	seen *ucMessage.MarkSeen,
	log zerolog.Logger,
) *MessageHandler {
	return &MessageHandler{send: send, list: list, seen: seen, log: log}
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// --------- User ---------

func (h *MessageHandler) ListMine(c *gin.Context) {
	msgs, err := h.list.Thread(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, h.log, err, "message_list_failed")
		return
	}
	httpresp.List(c, msgs)
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.send.FromUser(c.Request.Context(), middleware.UserID(c), req.Content)
	if err != nil {
		httperr.FromError(c, h.log, err, "message_send_failed")
		return
	}
	httpresp.Created(c, m)
}

func (h *MessageHandler) MarkSeen(c *gin.Context) {
	n, err := h.seen.ByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, h.log, err, "message_seen_failed")
		return
	}
	httpresp.OK(c, gin.H{"updated": n})
}

// --------- Admin ---------

func (h *MessageHandler) Conversations(c *gin.Context) {
	convs, err := h.list.Conversations(c.Request.Context())
	if err != nil {
		httperr.FromError(c, h.log, err, "conversation_list_failed")
		return
	}
	httpresp.List(c, convs)
}

// Thread returns a user's conversation and marks their messages as read.
func (h *MessageHandler) Thread(c *gin.Context) {
	userID := c.Param("userId")

	msgs, err := h.list.Thread(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, h.log, err, "message_list_failed")
		return
	}
	if _, err := h.seen.ByAdmin(c.Request.Context(), userID); err != nil {
		h.log.Warn().Err(err).Str("user_id", userID).Msg("mark messages seen")
	}
	httpresp.List(c, msgs)
}

func (h *MessageHandler) Reply(c *gin.Context) {
	var req SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.send.FromAdmin(c.Request.Context(), middleware.UserID(c), c.Param("userId"), req.Content)
	if err != nil {
		httperr.FromError(c, h.log, err, "message_send_failed")
		return
	}
	httpresp.Created(c, m)
}
