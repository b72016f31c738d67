package v1

import (
	"io"
	"net/http"

	"go-jobtrack-backend/internal/delivery/http/response"
	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxPhotoUploadBytes caps profile photo uploads at 5 MB.
const maxPhotoUploadBytes = 5 << 20

type UserHandler struct {
	userUC domain.UserUsecase
}

// NewUserHandler registers user profile routes
func NewUserHandler(r *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := r.Group("/users")
	{
		users.GET("/me", handler.GetProfile)
		users.PUT("/me", handler.UpdateProfile)
		users.POST("/me/photo", handler.UploadPhoto)
	}
}

// GetProfile godoc
// @Summary      Get my profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.userUC.GetProfile(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", user)
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      domain.UserProfilePatch  true  "Profile fields"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /users/me [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var patch domain.UserProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.UpdateProfile(c, userID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", user)
}

// UploadPhoto godoc
// @Summary      Upload a profile photo
// @Description  Multipart image upload; the photo is resized and re-encoded before storage
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo  formData  file  true  "Image file"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /users/me/photo [post]
// @Security     BearerAuth
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.Error(apperror.BadRequest("Photo file is required"))
		return
	}
	if fileHeader.Size > maxPhotoUploadBytes {
		c.Error(apperror.BadRequest("Photo must be smaller than 5 MB"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoUploadBytes))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	url, err := h.userUC.UploadPhoto(c, userID, data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Photo uploaded", gin.H{"url": url})
}
