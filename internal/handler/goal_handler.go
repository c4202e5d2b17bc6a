package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GetGoals godoc
// @Summary List goals
// @Description Returns every savings goal, newest first
// @Tags goals
// @Produce json
// @Success 200 {array} api.Goal
// @Failure 500 {object} api.ErrorResponse
// @Router /goals [get]
func (h *GoalHandler) GetGoals(c echo.Context) error {
	goals, err := h.goalService.ListGoals(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch goals")
		return NewInternalError(c, "Failed to fetch goals")
	}
	return c.JSON(http.StatusOK, api.NewGoals(goals))
}

// CreateGoal godoc
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body api.CreateGoalRequest true "Goal"
// @Success 201 {object} api.Goal
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	var req api.CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	targetDate, err := parseGoalTargetDate(req.TargetDate)
	if err != nil {
		msg, _ := validationMessage(err)
		return NewValidationError(c, msg)
	}

	goal, err := h.goalService.CreateGoal(c.Request().Context(), service.CreateGoalInput{
		Title:        req.Title,
		Description:  req.Description,
		TargetAmount: moneyToDecimal(req.TargetAmount),
		TargetDate:   targetDate,
		Category:     req.Category,
	})
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal")
	}
	return c.JSON(http.StatusCreated, api.NewGoal(goal))
}

// AddProgress godoc
// @Summary Add funds to a goal
// @Description Adds amount to current_amount and completes the goal once it reaches its target
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param request body api.GoalProgressRequest true "Amount to add"
// @Success 200 {object} api.Goal
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /goals/{id}/progress [put]
func (h *GoalHandler) AddProgress(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid id")
	}
	var req api.GoalProgressRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	goal, err := h.goalService.AddProgress(c.Request().Context(), id, moneyToDecimal(req.Amount))
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Int32("goal_id", id).Msg("Failed to update goal progress")
		return NewInternalError(c, "Failed to update goal progress")
	}
	return c.JSON(http.StatusOK, api.NewGoal(goal))
}

// UpdateGoal godoc
// @Summary Edit a goal
// @Description Replaces title, target, target date and saved amount. Status follows the new amounts.
// @Tags goals
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param request body api.UpdateGoalRequest true "Goal"
// @Success 200 {object} api.Goal
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid id")
	}
	var req api.UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	targetDate, err := parseGoalTargetDate(req.TargetDate)
	if err != nil {
		msg, _ := validationMessage(err)
		return NewValidationError(c, msg)
	}

	goal, err := h.goalService.UpdateGoal(c.Request().Context(), id, service.UpdateGoalInput{
		Title:         req.Title,
		TargetAmount:  moneyToDecimal(req.TargetAmount),
		TargetDate:    targetDate,
		CurrentAmount: moneyToDecimal(req.CurrentAmount),
	})
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if msg, ok := validationMessage(err); ok {
			return NewValidationError(c, msg)
		}
		log.Error().Err(err).Int32("goal_id", id).Msg("Failed to update goal")
		return NewInternalError(c, "Failed to update goal")
	}
	return c.JSON(http.StatusOK, api.NewGoal(goal))
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} api.DeleteGoalResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return NewValidationError(c, "Invalid id")
	}

	deletedID, err := h.goalService.DeleteGoal(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		log.Error().Err(err).Int32("goal_id", id).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}
	return c.JSON(http.StatusOK, api.DeleteGoalResponse{Message: "Goal deleted successfully", ID: deletedID})
}

func parseGoalTargetDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return parseOptionalDate(*s)
}
