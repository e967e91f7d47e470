package httpHandler

import (
	"net/http"

	"healthbridge/schemas"
	"healthbridge/usecases"

	"github.com/gin-gonic/gin"
)

type HealthServiceHandler struct {
	useCase *usecases.HealthServiceUseCase
}

func NewHealthServiceHandler(useCase *usecases.HealthServiceUseCase) *HealthServiceHandler {
	return &HealthServiceHandler{
		useCase: useCase,
	}
}

// CreateHealthService handles POST /services
func (h *HealthServiceHandler) CreateHealthService(c *gin.Context) {
	var req schemas.CreateHealthServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	service := req.Entity()
	if err := h.useCase.CreateHealthService(c.Request.Context(), service); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewHealthServiceResponse(service))
}

// GetAllHealthServices handles GET /services
func (h *HealthServiceHandler) GetAllHealthServices(c *gin.Context) {
	services, err := h.useCase.ListHealthServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewHealthServiceResponses(services))
}
