package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/core/ports"
)

// RecordHandler serves the generic CRUD surface over all declared
// collections. Authorization lives in the record service; this layer only
// binds HTTP to it.
type RecordHandler struct {
	records ports.RecordService
}

func NewRecordHandler(records ports.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// List handles GET /:collection. Query parameters pass through as
// field-equality filters.
//
// @Summary      List records in a collection
// @Tags         records
// @Produce      json
// @Param        collection  path  string  true  "Collection name"
// @Success      200  {array}   map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /{collection} [get]
func (h *RecordHandler) List(c echo.Context) error {
	filter := ports.Filter{}
	for k, vs := range c.QueryParams() {
		if len(vs) > 0 {
			filter[k] = vs[0]
		}
	}

	records, err := h.records.List(c.Request().Context(), actorFrom(c), c.Param("collection"), filter)
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.Record{}
	}
	return c.JSON(http.StatusOK, records)
}

// Get handles GET /:collection/:id.
func (h *RecordHandler) Get(c echo.Context) error {
	rec, err := h.records.Get(c.Request().Context(), actorFrom(c), c.Param("collection"), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// Create handles POST /:collection. The caller becomes the owner of the new
// record; server-side timestamps overwrite any client-supplied values.
func (h *RecordHandler) Create(c echo.Context) error {
	var rec domain.Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	created, err := h.records.Create(c.Request().Context(), actorFrom(c), c.Param("collection"), rec)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT and PATCH /:collection/:id. Both merge the payload into
// the stored record; id, createdAt, and owner fields are immutable.
func (h *RecordHandler) Update(c echo.Context) error {
	var patch domain.Record
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.records.Update(c.Request().Context(), actorFrom(c), c.Param("collection"), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /:collection/:id.
func (h *RecordHandler) Delete(c echo.Context) error {
	if err := h.records.Delete(c.Request().Context(), actorFrom(c), c.Param("collection"), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
