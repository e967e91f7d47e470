package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"healthbridge/apperrors"
	"healthbridge/entities"
	"healthbridge/schemas"
	"healthbridge/usecases"
	"healthbridge/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const journalEntryMessage = "journal_entry"

// journalEvent is the envelope pushed to stream subscribers.
type journalEvent struct {
	Type  string                       `json:"type"`
	Entry schemas.JournalEntryResponse `json:"entry"`
}

// JournalFeed publishes new journal entries to the owner's open streams.
type JournalFeed struct {
	mgr *ws.Manager
	log logrus.FieldLogger
}

func NewJournalFeed(mgr *ws.Manager, log logrus.FieldLogger) *JournalFeed {
	return &JournalFeed{mgr: mgr, log: log}
}

func (f *JournalFeed) NotifyJournalEntry(entry *entities.JournalEntry) {
	if f.mgr.Count(entry.UserID) == 0 {
		return
	}
	b, err := json.Marshal(journalEvent{Type: journalEntryMessage, Entry: schemas.NewJournalEntryResponse(entry)})
	if err != nil {
		f.log.WithError(err).Error("marshal journal event")
		return
	}
	sent := f.mgr.Broadcast(entry.UserID, b)
	f.log.WithFields(logrus.Fields{"user_id": entry.UserID, "entry_id": entry.ID, "sent": sent}).Debug("journal entry pushed")
}

// WSHandler groups dependencies for websocket flows
type WSHandler struct {
	mgr     *ws.Manager
	users   *usecases.UserUseCase
	log     logrus.FieldLogger
	upgrade websocket.Upgrader
}

// NewWSHandler accepts any origin when allowedOrigins is empty or holds
// "*".
func NewWSHandler(mgr *ws.Manager, users *usecases.UserUseCase, allowedOrigins []string, log logrus.FieldLogger) *WSHandler {
	return &WSHandler{
		mgr:     mgr,
		users:   users,
		log:     log,
		upgrade: websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// HandleJournalStream upgrades to websocket and streams the user's new
// journal entries until the client disconnects.
// GET /users/:id/journal/stream
func (h *WSHandler) HandleJournalStream(c *gin.Context) {
	userID := c.Param("id")
	if _, err := h.users.GetUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, schemas.ErrorResponse{Detail: apperrors.Message(err, "User not found")})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, schemas.ErrorResponse{Detail: "Internal Server Error"})
		return
	}

	conn, err := h.upgrade.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Warn("websocket upgrade failed")
		return
	}
	client := h.mgr.Register(userID, conn)
	h.log.WithField("user_id", userID).Info("journal stream opened")

	defer func() {
		h.mgr.Unregister(userID, client)
		h.log.WithField("user_id", userID).Info("journal stream closed")
	}()

	// The stream is server to client only; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).WithField("user_id", userID).Debug("journal stream read error")
			}
			return
		}
	}
}

// GetStreamStats handles GET /users/:id/journal/stream/stats
func (h *WSHandler) GetStreamStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"subscribers": h.mgr.Count(c.Param("id")), "total": h.mgr.Total()})
}
