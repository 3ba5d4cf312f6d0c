package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"doctqr-server/internal/config"
	"doctqr-server/internal/middleware"
	"doctqr-server/internal/models"
	"doctqr-server/internal/profile"
	"doctqr-server/internal/utils"
)

// MedicalInfoHandler serves the medical-profile endpoints: the
// authenticated publish/read pair and the public QR view.
type MedicalInfoHandler struct {
	Resolver *profile.Resolver
	Cfg      *config.Config
}

// NewMedicalInfoHandler creates a new MedicalInfoHandler.
func NewMedicalInfoHandler(resolver *profile.Resolver, cfg *config.Config) *MedicalInfoHandler {
	return &MedicalInfoHandler{Resolver: resolver, Cfg: cfg}
}

// publicURL builds the absolute URL the client renders as a QR code.
// The /view prefix is cosmetic and owned by the web client.
func (h *MedicalInfoHandler) publicURL(publicID string) string {
	return fmt.Sprintf("%s/view/%s", h.Cfg.AppURL, publicID)
}

// PublishResponse carries the sharing identifier back to the client.
type PublishResponse struct {
	PublicID  string `json:"publicId"`
	PublicURL string `json:"publicUrl"`
}

// PublishMedicalInfo handles creating or replacing the caller's medical
// profile. The account id always comes from the verified token, never from
// the request body.
func (h *MedicalInfoHandler) PublishMedicalInfo(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var data profile.ClinicalData
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	publicID, err := h.Resolver.Publish(c.Request.Context(), userID, data)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrInvalidInput):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, profile.ErrUnavailable):
			utils.ServiceUnavailable(c, "Could not save medical information, please try again")
		default:
			utils.InternalServerError(c, "Failed to save medical information: "+err.Error())
		}
		return
	}

	utils.Success(c, "Medical information saved successfully", PublishResponse{
		PublicID:  publicID,
		PublicURL: h.publicURL(publicID),
	})
}

// MedicalInfoResponse wraps the caller's own profile for the edit screen.
type MedicalInfoResponse struct {
	Exists    bool                   `json:"exists"`
	PublicURL string                 `json:"publicUrl,omitempty"`
	Profile   *models.MedicalProfile `json:"profile,omitempty"`
}

// GetMedicalInfo returns the caller's own profile document, or exists=false
// when nothing has been published yet.
func (h *MedicalInfoHandler) GetMedicalInfo(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	p, err := h.Resolver.ProfileFor(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrNotFound):
			utils.Success(c, "No medical information published yet", MedicalInfoResponse{Exists: false})
		case errors.Is(err, profile.ErrUnavailable):
			utils.ServiceUnavailable(c, "Could not load medical information, please try again")
		default:
			utils.InternalServerError(c, "Failed to load medical information: "+err.Error())
		}
		return
	}

	utils.Success(c, "Medical information fetched successfully", MedicalInfoResponse{
		Exists:    true,
		PublicURL: h.publicURL(p.PublicID),
		Profile:   p,
	})
}

// ViewMedicalInfo is the unauthenticated read path behind the QR code.
// Possession of a valid public token is the only authorization; any unknown
// token gets the same generic 404.
func (h *MedicalInfoHandler) ViewMedicalInfo(c *gin.Context) {
	publicID := c.Param("publicId")

	view, err := h.Resolver.Resolve(c.Request.Context(), publicID)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrNotFound):
			utils.NotFound(c, "Medical information not found")
		case errors.Is(err, profile.ErrUnavailable):
			utils.ServiceUnavailable(c, "Could not load medical information, please try again")
		default:
			utils.InternalServerError(c, "Error retrieving medical information")
		}
		return
	}

	utils.Success(c, "Medical information fetched successfully", view)
}
