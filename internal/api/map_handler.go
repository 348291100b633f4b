package api

import (
	"errors"
	"net/http"

	"mapty/workout-tracker/internal/domain"
	"mapty/workout-tracker/internal/service"
	"mapty/workout-tracker/internal/view"

	"github.com/gin-gonic/gin"
)

// MapHandler serves the map and form state.
type MapHandler struct {
	app            *service.App
	defaultLocator service.Locator
}

func NewMapHandler(app *service.App, defaultLocator service.Locator) *MapHandler {
	if defaultLocator == nil {
		defaultLocator = view.UnavailableLocator{}
	}
	return &MapHandler{app: app, defaultLocator: defaultLocator}
}

// --- DTOs ---

// PositionRequest carries a coordinate picked by the user or reported by the browser.
type PositionRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func (p PositionRequest) coords() domain.Coordinates {
	return domain.Coordinates{Lat: *p.Lat, Lng: *p.Lng}
}

// SelectTypeRequest switches the form between running and cycling.
type SelectTypeRequest struct {
	Type string `json:"type" binding:"required"`
}

// --- Handler Methods ---

// GetMap godoc
// @Summary Get the map view
// @Tags Map
// @Produce json
// @Success 200 {object} view.MapState
// @Router /map [get]
func (h *MapHandler) GetMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.MapState())
}

// Locate godoc
// @Summary Load the map at the user's position
// @Description Uses the position in the body if given, the configured default location otherwise.
// @Tags Map
// @Accept json
// @Produce json
// @Param position body PositionRequest false "Browser geolocation"
// @Success 200 {object} view.MapState
// @Failure 400 {object} gin.H "Malformed position"
// @Failure 503 {object} gin.H "Position unavailable"
// @Router /map/locate [post]
func (h *MapHandler) Locate(c *gin.Context) {
	locator := h.defaultLocator
	if c.Request.ContentLength != 0 {
		var req PositionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
		locator = view.FixedLocator{Coords: req.coords()}
	}

	state, err := h.app.LoadMap(c.Request.Context(), locator)
	if err != nil {
		if errors.Is(err, service.ErrGeolocationUnavailable) {
			abortWithError(c, http.StatusServiceUnavailable, service.NoticeNoPosition)
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load map.")
		}
		return
	}
	c.JSON(http.StatusOK, state)
}

// Click godoc
// @Summary Choose the location of the next workout
// @Tags Map
// @Accept json
// @Produce json
// @Param position body PositionRequest true "Clicked coordinate"
// @Success 200 {object} view.FormState "The form, now visible"
// @Failure 400 {object} gin.H "Malformed position"
// @Failure 409 {object} gin.H "Map not loaded yet"
// @Router /map/click [post]
func (h *MapHandler) Click(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.app.MapClick(req.coords()); err != nil {
		switch {
		case errors.Is(err, service.ErrMapNotLoaded):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidInput):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to handle map click.")
		}
		return
	}
	c.JSON(http.StatusOK, h.app.FormState())
}

// GetForm godoc
// @Summary Get the workout form state
// @Tags Form
// @Produce json
// @Success 200 {object} view.FormState
// @Router /form [get]
func (h *MapHandler) GetForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.FormState())
}

// SelectType godoc
// @Summary Switch the form between running and cycling
// @Tags Form
// @Accept json
// @Produce json
// @Param type body SelectTypeRequest true "Workout type"
// @Success 200 {object} view.FormState
// @Failure 400 {object} gin.H "Unknown type"
// @Router /form/type [put]
func (h *MapHandler) SelectType(c *gin.Context) {
	var req SelectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if err := h.app.SelectKind(domain.Kind(req.Type)); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.app.FormState())
}
