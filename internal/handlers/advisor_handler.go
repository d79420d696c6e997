package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/pagination"
	"finsight/internal/services"
)

// AdvisorHandler handles the advisor directory and meeting requests.
type AdvisorHandler struct {
	advisorService services.AdvisorServicer
	auditService   services.AuditServicer
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(advisorService services.AdvisorServicer, auditService services.AuditServicer) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService, auditService: auditService}
}

// ScheduleMeetingRequest represents the request payload for booking a meeting.
type ScheduleMeetingRequest struct {
	AdvisorID uint      `json:"advisor_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	Topic     string    `json:"topic" binding:"required,min=1,max=500"`
}

// GetAdvisors handles listing the advisor directory.
// @Summary     Get advisors
// @Description Get a paginated list of available financial advisors
// @Tags        advisors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Advisor] "Paginated advisors"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisors [get]
func (h *AdvisorHandler) GetAdvisors(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.advisorService.GetAdvisors(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAdvisor handles retrieving a specific advisor.
// @Summary     Get advisor by ID
// @Description Get a specific advisor by ID
// @Tags        advisors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Advisor ID"
// @Success     200 {object} models.Advisor "Advisor details"
// @Failure     400 {object} ErrorResponse "Invalid advisor ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Advisor not found"
// @Router      /advisors/{id} [get]
func (h *AdvisorHandler) GetAdvisor(c *gin.Context) {
	advisorID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	advisor, err := h.advisorService.GetAdvisorByID(advisorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"advisor": advisor})
}

// ScheduleMeeting handles booking a meeting with an advisor.
// @Summary     Schedule a meeting
// @Description Book a meeting with an advisor on a given date and topic
// @Tags        advisors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ScheduleMeetingRequest true "Meeting details"
// @Success     201 {object} models.AdvisorMeeting "Meeting scheduled"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Advisor not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisors/meetings [post]
func (h *AdvisorHandler) ScheduleMeeting(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ScheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	meeting, err := h.advisorService.ScheduleMeeting(userID, req.AdvisorID, req.Date, req.Topic)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SCHEDULE_MEETING", "advisor_meeting", meeting.ID, c.ClientIP(),
		map[string]interface{}{"advisor_id": req.AdvisorID, "topic": req.Topic})

	c.JSON(http.StatusCreated, gin.H{"meeting": meeting})
}

// GetMeetings handles listing the user's meetings.
// @Summary     Get meetings
// @Description Get a paginated list of the user's advisor meetings, soonest first
// @Tags        advisors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       upcoming  query bool false "Only meetings from now onwards"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AdvisorMeeting] "Paginated meetings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisors/meetings [get]
func (h *AdvisorHandler) GetMeetings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	upcomingOnly := false
	if v := c.Query("upcoming"); v != "" {
		upcomingOnly, err = strconv.ParseBool(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "upcoming must be a boolean"))
			return
		}
	}

	result, err := h.advisorService.GetUserMeetings(userID, upcomingOnly, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CancelMeeting handles cancelling a meeting.
// @Summary     Cancel meeting
// @Description Cancel a scheduled meeting by ID
// @Tags        advisors
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Meeting ID"
// @Success     200 {object} MessageResponse "Meeting cancelled"
// @Failure     400 {object} ErrorResponse "Invalid meeting ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Meeting not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisors/meetings/{id} [delete]
func (h *AdvisorHandler) CancelMeeting(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	meetingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.advisorService.CancelMeeting(userID, meetingID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CANCEL_MEETING", "advisor_meeting", meetingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Meeting cancelled successfully"})
}
