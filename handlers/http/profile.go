package httpHandler

import (
	"net/http"

	"healthbridge/schemas"
	"healthbridge/usecases"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	useCase *usecases.ProfileUseCase
}

func NewProfileHandler(useCase *usecases.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{
		useCase: useCase,
	}
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req schemas.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile := req.Entity()
	if err := h.useCase.CreateProfile(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.CreateProfileResponse{
		Message: "Profile created successfully",
		Profile: schemas.NewProfileResponse(profile),
	})
}

// GetProfile handles GET /profiles/:userId
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.useCase.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas.NewProfileResponse(profile))
}
