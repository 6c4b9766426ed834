package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/core/ports"
)

// ContractHandler serves the contract lifecycle endpoints (status changes
// and ratings).
type ContractHandler struct {
	contracts ports.ContractService
}

func NewContractHandler(contracts ports.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

type statusRequest struct {
	Status string `json:"status"`
}

type statusResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type invalidStatusResponse struct {
	Error       string   `json:"error"`
	ValidStatus []string `json:"validStatus"`
}

type ratingRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ratingResponse struct {
	Message   string `json:"message"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
}

// ChangeStatus handles PUT /contracts/:id/status.
//
// @Summary      Change a contract's status
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Contract id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  invalidStatusResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /contracts/{id}/status [put]
func (h *ContractHandler) ChangeStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.contracts.ChangeStatus(c.Request().Context(), actorFrom(c), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return c.JSON(http.StatusBadRequest, invalidStatusResponse{
				Error:       "invalid status: " + req.Status,
				ValidStatus: domain.StatusValues(),
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{
		Message:   "contract status updated",
		Status:    result.Status,
		Timestamp: result.Timestamp,
	})
}

// Rate handles PUT /contracts/:id/avaliar.
//
// @Summary      Rate a contract
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Contract id"
// @Param        body  body      ratingRequest  true  "Rating and comment"
// @Success      200   {object}  ratingResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /contracts/{id}/avaliar [put]
func (h *ContractHandler) Rate(c echo.Context) error {
	var req ratingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.contracts.Rate(c.Request().Context(), actorFrom(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ratingResponse{
		Message:   "contract rated",
		Rating:    result.Rating,
		Comment:   result.Comment,
		Timestamp: result.Timestamp,
	})
}
