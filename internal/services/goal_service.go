package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"bookmarkd/internal/models"
	"bookmarkd/internal/reading"
	"bookmarkd/internal/repositories"
)

// durationUnknown is reported for goals whose period cannot be recovered,
// instead of failing the listing.
const durationUnknown = "unknown"

// GoalDetails is the unified read model for all three goal kinds.
type GoalDetails struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Duration    string     `json:"duration"`
	DueDate     *time.Time `json:"due_date"`
	Progress    int        `json:"progress"`
	Total       int        `json:"total"`
}

// GoalService manages reading goals: creation against the closed type and
// duration enumerations, listing, deletion and progress updates.
type GoalService interface {
	// CreateGoal validates amount/goalType/duration and persists the goal
	// with its resolved duration and due date. Amount arrives as raw JSON
	// (number or numeric string) and is coerced to a positive int.
	CreateGoal(userID uint, amount any, goalType, duration string) (*GoalDetails, error)
	ListGoals(userID uint) ([]GoalDetails, error)
	DeleteGoal(userID, goalID uint) (*GoalDetails, error)
	UpdateProgress(userID, goalID uint, progress float64) (*GoalDetails, error)
}

type goalService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	goalRepo repositories.GoalRepository
}

func NewGoalService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	goalRepo repositories.GoalRepository,
) GoalService {
	return &goalService{
		db:       db,
		userRepo: userRepo,
		goalRepo: goalRepo,
	}
}

func (s *goalService) CreateGoal(userID uint, amount any, goalType, duration string) (*GoalDetails, error) {
	target, err := coerceAmount(amount)
	if err != nil {
		return nil, err
	}

	kind, ok := parseGoalKind(goalType)
	if !ok {
		if strings.TrimSpace(goalType) == "" {
			return nil, validationErrorf("type is required")
		}
		return nil, validationErrorf("invalid goal type, must be one of: %s, %s, %s",
			models.GoalKindBooks, models.GoalKindPages, models.GoalKindHours)
	}

	token, ok := reading.ParseDuration(duration)
	if !ok {
		if strings.TrimSpace(duration) == "" {
			return nil, validationErrorf("duration is required")
		}
		return nil, validationErrorf("invalid duration, must be one of: %s",
			joinDurations())
	}

	now := time.Now()
	dueDate := reading.DueDate(token, now)
	goal := &models.Goal{
		UserID:      userID,
		Kind:        kind,
		Amount:      target,
		Description: fmt.Sprintf("Read %d %s %s", target, kindUnit(kind), reading.Describe(token, now)),
		Duration:    token,
		DueDate:     &dueDate,
		Progress:    0,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.GetByID(tx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := s.goalRepo.Create(tx, goal); err != nil {
			log.Printf("[ERROR] CreateGoal: failed to create goal for user %d: %v", userID, err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] CreateGoal: user %d created %q goal (id=%d, target=%d, due %s)",
		userID, kind, goal.ID, target, dueDate.Format("2006-01-02"))
	return s.goalDetails(goal), nil
}

// ListGoals returns all of the user's goals as a unified list tagged with
// type. A goal with no recoverable duration reports "unknown" and a nil due
// date rather than failing.
func (s *goalService) ListGoals(userID uint) ([]GoalDetails, error) {
	goals, err := s.goalRepo.ListByUser(nil, userID)
	if err != nil {
		return nil, err
	}
	details := make([]GoalDetails, 0, len(goals))
	for i := range goals {
		details = append(details, *s.goalDetails(&goals[i]))
	}
	return details, nil
}

// DeleteGoal removes a goal owned by the user and returns its last state.
// A goal that exists but belongs to someone else is reported as not found.
func (s *goalService) DeleteGoal(userID, goalID uint) (*GoalDetails, error) {
	goal, err := s.goalRepo.GetByIDAndUser(nil, goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	if err := s.goalRepo.Delete(nil, goal.ID); err != nil {
		log.Printf("[ERROR] DeleteGoal: failed to delete goal %d: %v", goal.ID, err)
		return nil, err
	}
	log.Printf("[INFO] DeleteGoal: user %d deleted goal %d", userID, goalID)
	return s.goalDetails(goal), nil
}

// UpdateProgress persists the supplied progress value on the goal (owner
// scoped, same non-leaking lookup as DeleteGoal).
func (s *goalService) UpdateProgress(userID, goalID uint, progress float64) (*GoalDetails, error) {
	if progress < 0 {
		return nil, validationErrorf("progress must be non-negative")
	}
	goal, err := s.goalRepo.GetByIDAndUser(nil, goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	value := int(progress)
	if err := s.goalRepo.UpdateProgress(nil, goal.ID, value); err != nil {
		log.Printf("[ERROR] UpdateProgress: failed for goal %d: %v", goal.ID, err)
		return nil, err
	}
	goal.Progress = value
	return s.goalDetails(goal), nil
}

// goalDetails builds the read model. Goals created before duration became a
// structured column fall back to re-extracting the token from the
// description text.
func (s *goalService) goalDetails(goal *models.Goal) *GoalDetails {
	duration := string(goal.Duration)
	dueDate := goal.DueDate
	if duration == "" {
		if token, ok := reading.ExtractDuration(goal.Description); ok {
			duration = string(token)
			if dueDate == nil {
				due := reading.DueDate(token, time.Now())
				dueDate = &due
			}
		} else {
			duration = durationUnknown
			dueDate = nil
		}
	}
	return &GoalDetails{
		ID:          goal.ID,
		UserID:      goal.UserID,
		Description: goal.Description,
		Type:        string(goal.Kind),
		Duration:    duration,
		DueDate:     dueDate,
		Progress:    goal.Progress,
		Total:       goal.Amount,
	}
}

// coerceAmount accepts the raw JSON value for amount: a number (integral) or
// a numeric string. Anything else, or a non-positive result, is a validation
// error.
func coerceAmount(amount any) (int, error) {
	if amount == nil {
		return 0, validationErrorf("amount is required")
	}
	var value int
	switch v := amount.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, validationErrorf("amount must be a valid integer")
		}
		value = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, validationErrorf("amount must be a valid integer")
		}
		value = parsed
	default:
		return 0, validationErrorf("amount must be a valid integer")
	}
	if value <= 0 {
		return 0, validationErrorf("amount must be a positive integer")
	}
	return value, nil
}

func parseGoalKind(goalType string) (models.GoalKind, bool) {
	switch strings.ToLower(strings.TrimSpace(goalType)) {
	case string(models.GoalKindBooks):
		return models.GoalKindBooks, true
	case string(models.GoalKindPages):
		return models.GoalKindPages, true
	case string(models.GoalKindHours):
		return models.GoalKindHours, true
	}
	return "", false
}

func kindUnit(kind models.GoalKind) string {
	switch kind {
	case models.GoalKindBooks:
		return "books"
	case models.GoalKindPages:
		return "pages"
	default:
		return "hours"
	}
}

func joinDurations() string {
	tokens := make([]string, 0, len(reading.Durations))
	for _, d := range reading.Durations {
		tokens = append(tokens, string(d))
	}
	return strings.Join(tokens, ", ")
}
