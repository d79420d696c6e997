package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// goalService handles savings goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal. The target amount must be positive;
// this is enforced here so that progress calculation never divides by zero.
func (s *goalService) CreateGoal(userID uint, name string, targetAmount, currentAmount float64, deadline time.Time) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if currentAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount must not be negative")
	}
	if deadline.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "deadline is required")
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Deadline:      deadline,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals returns the user's goals, newest first, each with computed
// progress. Overdue goals are included; only advisor meetings filter out
// past entries.
func (s *goalService) GetUserGoals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[GoalWithProgress], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := time.Now()
	withProgress := make([]GoalWithProgress, 0, len(goals))
	for _, goal := range goals {
		withProgress = append(withProgress, GoalWithProgress{
			Goal:     goal,
			Progress: ComputeProgress(goal, now),
		})
	}

	result := pagination.NewPageResponse(withProgress, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID retrieves a goal with computed progress.
func (s *goalService) GetGoalByID(userID, goalID uint) (*GoalWithProgress, error) {
	goal, err := s.getGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	return &GoalWithProgress{Goal: *goal, Progress: ComputeProgress(*goal, time.Now())}, nil
}

func (s *goalService) getGoal(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies a partial update to a goal. Only non-nil fields of the
// update are written. The current amount is edited directly and is never
// derived from ledger transactions.
func (s *goalService) UpdateGoal(userID, goalID uint, update GoalUpdate) (*models.Goal, error) {
	goal, err := s.getGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name must not be empty")
		}
		updates["name"] = *update.Name
	}
	if update.TargetAmount != nil {
		if *update.TargetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		if *update.CurrentAmount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "current amount must not be negative")
		}
		updates["current_amount"] = *update.CurrentAmount
	}
	if update.Deadline != nil {
		updates["deadline"] = *update.Deadline
	}

	if len(updates) == 0 {
		return goal, nil
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// DeleteGoal removes a goal (soft delete).
func (s *goalService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.getGoal(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ComputeProgress derives progress metrics for a goal at the given time.
// Remaining may be negative when the goal is overfunded. DaysRemaining is the
// rounded-up number of days until the deadline; a negative value means the
// deadline has passed and DaysOverdue reports its absolute value.
func ComputeProgress(goal models.Goal, now time.Time) GoalProgress {
	progress := GoalProgress{
		ProgressPercent: goal.CurrentAmount / goal.TargetAmount * 100,
		Remaining:       goal.TargetAmount - goal.CurrentAmount,
		DaysRemaining:   int(math.Ceil(goal.Deadline.Sub(now).Hours() / 24)),
	}
	if progress.DaysRemaining < 0 {
		progress.Overdue = true
		progress.DaysOverdue = -progress.DaysRemaining
	}
	return progress
}
