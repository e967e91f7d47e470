package httpHandler

import (
	"net/http"

	"healthbridge/schemas"
	"healthbridge/usecases"

	"github.com/gin-gonic/gin"
)

type JournalEntryHandler struct {
	useCase *usecases.JournalUseCase
}

func NewJournalEntryHandler(useCase *usecases.JournalUseCase) *JournalEntryHandler {
	return &JournalEntryHandler{
		useCase: useCase,
	}
}

// CreateJournalEntry handles POST /journal
func (h *JournalEntryHandler) CreateJournalEntry(c *gin.Context) {
	var req schemas.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry := req.Entity()
	if err := h.useCase.CreateJournalEntry(c.Request.Context(), req.UserID, entry); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewJournalEntryResponse(entry))
}

// GetJournalEntries handles GET /journal/:userId
func (h *JournalEntryHandler) GetJournalEntries(c *gin.Context) {
	entries, err := h.useCase.ListJournalEntries(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewJournalEntryResponses(entries))
}
