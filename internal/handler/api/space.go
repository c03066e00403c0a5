package api

import (
	"errors"
	"net/http"

	"parkspot/internal/domain/booking"
	reqdto "parkspot/internal/handler/dto/request"
	resdto "parkspot/internal/handler/dto/response"
	"parkspot/internal/handler/middleware"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/commands"
	"parkspot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SpaceHandler struct {
	spaceCommands commands.SpaceCommands
	spaceQueries  queries.SpaceQueries
}

func NewSpaceHandler(spaceCommands commands.SpaceCommands, spaceQueries queries.SpaceQueries) *SpaceHandler {
	return &SpaceHandler{
		spaceCommands: spaceCommands,
		spaceQueries:  spaceQueries,
	}
}

// @Summary Search spaces
// @Description Search listed spaces by location, price, type, keyword and amenities
// @Tags spaces
// @Produce json
// @Param lat query number false "Center latitude"
// @Param lon query number false "Center longitude"
// @Param radius query number false "Radius in miles, required with lat/lon"
// @Param sort query string false "created_at | price | distance"
// @Success 200 {object} resdto.SearchSpacesResponse
// @Failure 400 {object} map[string]string
// @Router /spaces [get]
func (h *SpaceHandler) Search(c *gin.Context) {
	var req reqdto.SearchSpacesRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	query, err := req.ToQuery()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid search query",
		})
		return
	}

	result, err := h.spaceQueries.Search(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidSearchQuery):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid search query",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSearchResult(result))
}

// @Summary Get space
// @Description Get space details by ID
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} resdto.SpaceResponse
// @Failure 404 {object} map[string]string
// @Router /spaces/{id} [get]
func (h *SpaceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space ID format",
		})
		return
	}

	view, err := h.spaceQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSpaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Space not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSpaceView(view))
}

// @Summary Quote a booking
// @Description Price a hypothetical booking window without creating it
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Param start query string true "Window start (RFC3339)"
// @Param end query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spaces/{id}/quote [get]
func (h *SpaceHandler) Quote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space ID format",
		})
		return
	}

	var req reqdto.QuoteRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "start and end must be RFC3339 timestamps",
		})
		return
	}

	quote, err := h.spaceQueries.Quote(c.Request.Context(), id, req.Start, req.End)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSpaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Space not found",
			})
		case errors.Is(err, errs.ErrInvalidTimeWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Start time must be before end time",
			})
		case errors.Is(err, errs.ErrSpaceUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Space is not available for booking",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	total, _ := booking.NewMoney(quote.TotalPriceCents)
	c.JSON(http.StatusOK, resdto.FromQuoteView(quote, total.String()))
}

// @Summary Create space
// @Description List a new parking space; it stays pending until moderated
// @Tags spaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSpaceRequest true "Space listing"
// @Success 201 {object} resdto.SpaceResponse
// @Failure 400 {object} map[string]string
// @Router /spaces [post]
func (h *SpaceHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateSpaceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.spaceCommands.CreateSpace(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSpaceView(view))
}

// @Summary Update space
// @Description Update an owned space listing
// @Tags spaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Space ID"
// @Param request body reqdto.UpdateSpaceRequest true "Updated listing"
// @Success 200 {object} resdto.SpaceResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spaces/{id} [patch]
func (h *SpaceHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space ID format",
		})
		return
	}

	var req reqdto.UpdateSpaceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.spaceCommands.UpdateSpace(c.Request.Context(), id, req.ToInput(), userID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSpaceView(view))
}

// @Summary Moderate space
// @Description Approve or reject a space listing (moderators only)
// @Tags spaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Space ID"
// @Param request body reqdto.ModerateSpaceRequest true "Moderation decision"
// @Success 200 {object} resdto.SpaceResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /spaces/{id}/moderation [put]
func (h *SpaceHandler) Moderate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space ID format",
		})
		return
	}

	var req reqdto.ModerateSpaceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.spaceCommands.SetModeration(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSpaceView(view))
}

// @Summary List own spaces
// @Description List every space owned by the current user
// @Tags spaces
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SpaceResponse
// @Router /spaces/mine [get]
func (h *SpaceHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.spaceQueries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.SpaceResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromSpaceView(v)
	}
	c.JSON(http.StatusOK, response)
}

func (h *SpaceHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSpaceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Space not found",
		})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Only the owner may modify this space",
		})
	case errors.Is(err, errs.ErrInvalidCoordinates):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Latitude must be within [-90, 90] and longitude within [-180, 180]",
		})
	case errors.Is(err, errs.ErrInvalidRates):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Rates must be non-negative and an hourly rate is required",
		})
	case errors.Is(err, errs.ErrInvalidSpaceInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid space attributes",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
