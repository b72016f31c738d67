package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-jobtrack-backend/internal/delivery/http/response"
	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers job application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := r.Group("/applications")
	{
		applications.POST("", handler.Create)
		applications.GET("", handler.List)
		applications.GET("/:id", handler.Get)
		applications.PUT("/:id", handler.Update)
		applications.DELETE("/:id", handler.Delete)
	}
}

// ApplicationRequest is the request payload for creating or updating a
// job application. Dates are YYYY-MM-DD.
type ApplicationRequest struct {
	Company         string  `json:"company" binding:"required"`
	JobTitle        string  `json:"job_title" binding:"required"`
	ApplicationDate string  `json:"application_date" binding:"required"`
	Status          string  `json:"status" binding:"required"`
	FollowUpDate    string  `json:"follow_up_date"`
	Location        string  `json:"location" binding:"required"`
	Industry        *string `json:"industry"`
}

func (req *ApplicationRequest) toPatch() (domain.ApplicationPatch, error) {
	appDate, err := parseDate(req.ApplicationDate)
	if err != nil {
		return domain.ApplicationPatch{}, apperror.BadRequest("Invalid application date, expected YYYY-MM-DD")
	}

	var followUp *time.Time
	if req.FollowUpDate != "" {
		d, err := parseDate(req.FollowUpDate)
		if err != nil {
			return domain.ApplicationPatch{}, apperror.BadRequest("Invalid follow-up date, expected YYYY-MM-DD")
		}
		followUp = &d
	}

	return domain.ApplicationPatch{
		Company:         req.Company,
		JobTitle:        req.JobTitle,
		ApplicationDate: appDate,
		Status:          req.Status,
		FollowUpDate:    followUp,
		Location:        req.Location,
		Industry:        req.Industry,
	}, nil
}

// parseDate accepts plain dates and full RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Create godoc
// @Summary      Add a job application
// @Description  Record a new job application for the current user
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      ApplicationRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Create(c, userID, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job application added successfully", app)
}

// List godoc
// @Summary      List job applications
// @Description  List the current user's applications, optionally narrowed by filters
// @Tags         applications
// @Produce      json
// @Param        location         query     string  false  "Exact location"
// @Param        status           query     string  false  "Exact status"
// @Param        token            query     string  false  "Exact token"
// @Param        applicationDate  query     string  false  "Application date lower bound (YYYY-MM-DD)"
// @Param        followUpDate     query     string  false  "Follow-up date lower bound (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      400  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	// Only recognized query params become filter conditions; anything
	// else in the query string is ignored.
	filter := domain.ApplicationFilter{
		Location: c.Query("location"),
		Status:   c.Query("status"),
		Token:    c.Query("token"),
	}
	if s := c.Query("applicationDate"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid applicationDate filter, expected YYYY-MM-DD"))
			return
		}
		filter.ApplicationDateFrom = &d
	}
	if s := c.Query("followUpDate"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid followUpDate filter, expected YYYY-MM-DD"))
			return
		}
		filter.FollowUpDateFrom = &d
	}

	apps, err := h.applicationUC.List(c, userID, filter)
	if err != nil {
		c.Error(err)
		return
	}
	if apps == nil {
		apps = []domain.Application{}
	}

	response.Success(c, http.StatusOK, "Job applications retrieved", apps)
}

// Get godoc
// @Summary      Get a job application
// @Tags         applications
// @Produce      json
// @Param        id  path      int  true  "Application ID"
// @Success      200 {object}  response.Response{data=domain.Application}
// @Failure      404 {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Get(c, userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job application retrieved", app)
}

// Update godoc
// @Summary      Edit a job application
// @Description  Update an application in place; serial number and ownership never change
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Application ID"
// @Param        body  body      ApplicationRequest  true  "Updated fields"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Update(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Update(c, userID, id, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job application updated successfully", app)
}

// Delete godoc
// @Summary      Delete a job application
// @Description  Remove an application; remaining records are renumbered to keep serials dense
// @Tags         applications
// @Produce      json
// @Param        id  path      int  true  "Application ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.applicationUC.Delete(c, userID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job application deleted successfully", nil)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid application ID")
	}
	return id, nil
}
