package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mapty/workout-tracker/internal/domain"
	"mapty/workout-tracker/internal/service"
	"mapty/workout-tracker/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// WorkoutHandler serves workout submission, listing and activation.
type WorkoutHandler struct {
	app *service.App
}

func NewWorkoutHandler(app *service.App) *WorkoutHandler {
	return &WorkoutHandler{app: app}
}

// --- DTOs for API (Data Transfer Objects) ---

// FormValue is a form field. It accepts a JSON string or number, as the form
// posts text but scripted clients send numbers.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// CreateWorkoutRequest is the submitted workout form.
type CreateWorkoutRequest struct {
	Type      string    `json:"type" binding:"required"`
	Distance  FormValue `json:"distance"`
	Duration  FormValue `json:"duration"`
	Cadence   FormValue `json:"cadence"`
	Elevation FormValue `json:"elevation"`
}

// WorkoutResponse is the DTO for returning workout details.
type WorkoutResponse struct {
	ID               string             `json:"id"`
	Type             domain.Kind        `json:"type"`
	CreatedAt        time.Time          `json:"createdAt"`
	Coords           domain.Coordinates `json:"coords"`
	Distance         float64            `json:"distance"`
	Duration         float64            `json:"duration"`
	Cadence          *float64           `json:"cadence,omitempty"`
	Pace             *float64           `json:"pace,omitempty"`
	ElevationGain    *float64           `json:"elevationGain,omitempty"`
	Speed            *float64           `json:"speed,omitempty"`
	Description      string             `json:"description"`
	InteractionCount int                `json:"clicks"`
}

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	resp := WorkoutResponse{
		ID:               w.ID,
		Type:             w.Kind,
		CreatedAt:        w.CreatedAt,
		Coords:           w.Coords,
		Distance:         w.DistanceKm,
		Duration:         w.DurationMin,
		Description:      w.Description,
		InteractionCount: w.InteractionCount,
	}
	switch w.Kind {
	case domain.KindRunning:
		cadence, pace := w.CadenceSpm, w.PaceMinPerKm
		resp.Cadence, resp.Pace = &cadence, &pace
	case domain.KindCycling:
		elevation, speed := w.ElevationGainM, w.SpeedKmPerH
		resp.ElevationGain, resp.Speed = &elevation, &speed
	}
	return resp
}

// ActivateResponse is returned when a list item is clicked.
type ActivateResponse struct {
	Workout WorkoutResponse `json:"workout"`
	Map     view.MapState   `json:"map"`
}

// --- Handler Methods ---

// CreateWorkout godoc
// @Summary Log a workout at the last map click
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body CreateWorkoutRequest true "Workout form"
// @Success 201 {object} WorkoutResponse "Workout logged"
// @Failure 400 {object} gin.H "Inputs have to be positive numbers"
// @Failure 409 {object} gin.H "No map location chosen"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	w, err := h.app.Submit(c.Request.Context(), service.FormInput{
		Type:      req.Type,
		Distance:  string(req.Distance),
		Duration:  string(req.Duration),
		Cadence:   string(req.Cadence),
		Elevation: string(req.Elevation),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest, service.NoticeInvalidInput)
		case errors.Is(err, service.ErrNoPendingLocation):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			log.Error().Err(err).Msg("create workout")
			abortWithError(c, http.StatusInternalServerError, "Failed to log workout.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(w))
}

// ListWorkouts godoc
// @Summary List workouts, oldest first
// @Tags Workouts
// @Produce json
// @Success 200 {array} view.Summary
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.ListItems())
}

// GetWorkout godoc
// @Summary Get one workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} WorkoutResponse
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	w, err := h.app.Workout(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout.")
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(w))
}

// ActivateWorkout godoc
// @Summary Pan the map to a workout
// @Description Counts one interaction with the workout and centres the map on it.
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} ActivateResponse
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id}/activate [post]
func (h *WorkoutHandler) ActivateWorkout(c *gin.Context) {
	w, err := h.app.Activate(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to activate workout.")
		}
		return
	}
	c.JSON(http.StatusOK, ActivateResponse{
		Workout: MapWorkoutToResponse(w),
		Map:     h.app.MapState(),
	})
}

// ResetWorkouts godoc
// @Summary Delete every workout
// @Description Clears the list and erases the persistence slot. Irreversible.
// @Tags Workouts
// @Success 204
// @Failure 500 {object} gin.H "Slot could not be erased"
// @Router /workouts [delete]
func (h *WorkoutHandler) ResetWorkouts(c *gin.Context) {
	if err := h.app.Reset(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("reset workouts")
		abortWithError(c, http.StatusInternalServerError, "Failed to erase stored workouts.")
		return
	}
	c.Status(http.StatusNoContent)
}
