package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// advisorService handles the advisor directory and meeting scheduling.
type advisorService struct {
	db *gorm.DB
}

// NewAdvisorService creates a new AdvisorServicer.
func NewAdvisorService(db *gorm.DB) AdvisorServicer {
	return &advisorService{db: db}
}

// GetAdvisors returns the advisor directory. Advisors are global rows, not
// scoped to a user.
func (s *advisorService) GetAdvisors(page pagination.PageRequest) (*pagination.PageResponse[models.Advisor], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Advisor{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var advisors []models.Advisor
	if err := s.db.Order("name ASC").
		Scopes(pagination.Paginate(page)).
		Find(&advisors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(advisors, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAdvisorByID retrieves a single advisor.
func (s *advisorService) GetAdvisorByID(advisorID uint) (*models.Advisor, error) {
	var advisor models.Advisor
	if err := s.db.First(&advisor, advisorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAdvisorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &advisor, nil
}

// ScheduleMeeting books a meeting with an advisor.
func (s *advisorService) ScheduleMeeting(userID, advisorID uint, date time.Time, topic string) (*models.AdvisorMeeting, error) {
	if topic == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "meeting topic is required")
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "meeting date is required")
	}

	advisor, err := s.GetAdvisorByID(advisorID)
	if err != nil {
		return nil, err
	}

	meeting := &models.AdvisorMeeting{
		UserID:    userID,
		AdvisorID: advisorID,
		Date:      date,
		Topic:     topic,
	}

	if err := s.db.Create(meeting).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	meeting.Advisor = *advisor
	return meeting, nil
}

// GetUserMeetings returns the user's advisor meetings sorted ascending by
// date. With upcomingOnly, meetings whose date has passed are excluded.
func (s *advisorService) GetUserMeetings(userID uint, upcomingOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.AdvisorMeeting], error) {
	page.Defaults()

	base := s.db.Model(&models.AdvisorMeeting{}).Where("user_id = ?", userID)
	if upcomingOnly {
		base = base.Where("date >= ?", time.Now())
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var meetings []models.AdvisorMeeting
	if err := base.Preload("Advisor").
		Order("date ASC").
		Scopes(pagination.Paginate(page)).
		Find(&meetings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(meetings, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// CancelMeeting deletes a scheduled meeting.
func (s *advisorService) CancelMeeting(userID, meetingID uint) error {
	var meeting models.AdvisorMeeting
	if err := s.db.Where("id = ? AND user_id = ?", meetingID, userID).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMeetingNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&meeting).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
