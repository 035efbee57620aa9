package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"eyecare-service/internal/models"
	"eyecare-service/internal/service"
	"eyecare-service/internal/utils"
)

type ProfileHandler struct {
	Service *service.ProfileService
}

func NewProfileHandler(s *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: s}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	username := currentUsername(c)

	profile, err := h.Service.GetProfile(context.Background(), username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// A fresh account has no profile yet; return an empty shell so
			// the client can render the form.
			utils.SuccessResponse(c, "Profile", models.PatientProfile{Username: username})
			return
		}
		utils.InternalErrorResponse(c, "Failed to load profile", err)
		return
	}
	utils.SuccessResponse(c, "Profile", profile)
}

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var profile models.PatientProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	// The profile always belongs to the caller, whatever the body says.
	profile.Username = currentUsername(c)

	if err := h.Service.SaveProfile(context.Background(), &profile); err != nil {
		utils.InternalErrorResponse(c, "Failed to save profile", err)
		return
	}
	utils.SuccessResponse(c, "Profile saved", profile)
}
