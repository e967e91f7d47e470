package httpHandler

import (
	"net/http"

	"healthbridge/schemas"
	"healthbridge/usecases"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	useCase *usecases.ExportUseCase
}

func NewExportHandler(useCase *usecases.ExportUseCase) *ExportHandler {
	return &ExportHandler{
		useCase: useCase,
	}
}

// GenerateUserQRCode handles GET /users/:id/qrcode
func (h *ExportHandler) GenerateUserQRCode(c *gin.Context) {
	png, err := h.useCase.UserQRCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=user-qrcode.png")
	c.Data(http.StatusOK, "image/png", png)
}

// GenerateHealthSummary handles POST /users/:id/generate-summary
func (h *ExportHandler) GenerateHealthSummary(c *gin.Context) {
	summary, err := h.useCase.HealthSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.SummaryResponse{Summary: summary})
}
