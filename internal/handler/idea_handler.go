package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ideavote/internal/errors"
	"ideavote/internal/service"
)

// IdeaHandler handles idea endpoints.
type IdeaHandler struct {
	svc service.IdeaService
}

// NewIdeaHandler creates a new idea handler.
func NewIdeaHandler(svc service.IdeaService) *IdeaHandler {
	return &IdeaHandler{svc: svc}
}

// CreateIdeaRequest represents an idea submission.
type CreateIdeaRequest struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Summary     string `json:"summary"`
}

// UpdateIdeaRequest represents a partial idea update. Absent fields are left
// unchanged.
type UpdateIdeaRequest struct {
	Votes  *uint `json:"votes"`
	Frozen *bool `json:"frozen"`
}

// DeletedResponse echoes the id of a deleted record.
type DeletedResponse struct {
	ID string `json:"id"`
}

// ListIdeas godoc
// @Summary List ideas ordered by votes
// @Tags ideas
// @Produce json
// @Param includeAll query bool false "Include frozen ideas"
// @Success 200 {array} model.Idea
// @Failure 500 {object} errors.ErrorResponse
// @Router /ideas [get]
func (h *IdeaHandler) ListIdeas(c echo.Context) error {
	includeAll := c.QueryParam("includeAll") == "true"
	ideas, err := h.svc.ListIdeas(c.Request().Context(), includeAll)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ideas)
}

// GetIdea godoc
// @Summary Get idea by id
// @Tags ideas
// @Produce json
// @Param id path string true "Idea ID"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [get]
func (h *IdeaHandler) GetIdea(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	idea, err := h.svc.GetIdea(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, idea)
}

// CreateIdea godoc
// @Summary Submit a new idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body CreateIdeaRequest true "Idea payload"
// @Success 201 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /ideas [post]
func (h *IdeaHandler) CreateIdea(c echo.Context) error {
	var req CreateIdeaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idea, err := h.svc.CreateIdea(c.Request().Context(), req.Title, req.Category, req.Description, req.Summary)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, idea)
}

// UpdateIdea godoc
// @Summary Update votes or frozen state of an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param id path string true "Idea ID"
// @Param request body UpdateIdeaRequest true "Fields to update"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /ideas/{id} [put]
func (h *IdeaHandler) UpdateIdea(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateIdeaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	idea, err := h.svc.UpdateIdea(c.Request().Context(), id, service.IdeaUpdate{
		Votes:  req.Votes,
		Frozen: req.Frozen,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, idea)
}

// DeleteIdea godoc
// @Summary Delete an idea
// @Tags ideas
// @Produce json
// @Param id path string true "Idea ID"
// @Success 200 {object} DeletedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /ideas/{id} [delete]
func (h *IdeaHandler) DeleteIdea(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteIdea(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, DeletedResponse{ID: id.String()})
}

// VoteIdea godoc
// @Summary Vote for an idea
// @Description Records one vote per user per idea; duplicates and frozen ideas are rejected.
// @Tags ideas
// @Produce json
// @Param id path string true "Idea ID"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /ideas/{id}/votes [post]
func (h *IdeaHandler) VoteIdea(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	claims, err := CurrentClaims(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	idea, err := h.svc.Vote(c.Request().Context(), id, userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, idea)
}

// MyVotes godoc
// @Summary List idea ids the caller has voted for
// @Tags ideas
// @Produce json
// @Success 200 {array} string
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me/votes [get]
func (h *IdeaHandler) MyVotes(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	ids, err := h.svc.VotedIdeaIDs(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ids)
}
