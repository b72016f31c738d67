package v1

import (
	"net/http"

	"go-jobtrack-backend/internal/delivery/http/response"
	"go-jobtrack-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	shareUC     domain.ShareLinkUsecase
	frontendURL string
}

// NewShareHandler registers share link routes. Creation requires auth;
// resolving a token is public so anonymous visitors can view the profile.
func NewShareHandler(public, protected *gin.RouterGroup, shareUC domain.ShareLinkUsecase, frontendURL string) {
	handler := &ShareHandler{shareUC: shareUC, frontendURL: frontendURL}

	protected.POST("/share", handler.Create)
	public.GET("/shared/:token", handler.Resolve)
}

// Create godoc
// @Summary      Create a share link
// @Description  Mint a read-only link to the current user's applications, valid for 24 hours
// @Tags         share
// @Produce      json
// @Success      201  {object}  response.Response
// @Router       /share [post]
// @Security     BearerAuth
func (h *ShareHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	token, err := h.shareUC.Create(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Profile shared successfully", gin.H{
		"token": token,
		"url":   h.frontendURL + "/shared/" + token,
	})
}

// Resolve godoc
// @Summary      View a shared profile
// @Description  Read-only profile and application set behind a share token
// @Tags         share
// @Produce      json
// @Param        token  path      string  true  "Share token"
// @Success      200    {object}  response.Response{data=domain.SharedProfile}
// @Failure      404    {object}  response.Response
// @Router       /shared/{token} [get]
func (h *ShareHandler) Resolve(c *gin.Context) {
	profile, err := h.shareUC.Resolve(c, c.Param("token"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Shared profile retrieved", profile)
}
