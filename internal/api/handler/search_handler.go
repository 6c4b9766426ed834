package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultRadiusKm = 8

const searchExample = "/professionals/search?lat=-19.9&lon=-43.9&radius=10"

// SearchHandler validates the proximity-search input contract. The distance
// computation itself is delegated to the caller; this endpoint only
// normalizes and echoes the parameters.
type SearchHandler struct{}

func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

type searchParams struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Radius    float64 `json:"radius"`
	ServiceID string  `json:"serviceId,omitempty"`
}

type searchResponse struct {
	Message string       `json:"message"`
	Params  searchParams `json:"params"`
	Note    string       `json:"note"`
}

type searchErrorResponse struct {
	Error   string `json:"error"`
	Example string `json:"example"`
}

// Search handles GET /professionals/search.
//
// @Summary      Validate a proximity search request
// @Tags         professionals
// @Produce      json
// @Param        lat        query     number  true   "Latitude"
// @Param        lon        query     number  true   "Longitude"
// @Param        radius     query     number  false  "Radius in kilometers (default 8)"
// @Param        serviceId  query     string  false  "Service id filter (passed through)"
// @Success      200  {object}  searchResponse
// @Failure      400  {object}  searchErrorResponse
// @Router       /professionals/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	latStr := c.QueryParam("lat")
	lonStr := c.QueryParam("lon")
	if latStr == "" || lonStr == "" {
		return c.JSON(http.StatusBadRequest, searchErrorResponse{
			Error:   "lat and lon query parameters are required",
			Example: searchExample,
		})
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return c.JSON(http.StatusBadRequest, searchErrorResponse{
			Error:   "lat and lon must be numeric",
			Example: searchExample,
		})
	}

	radius := float64(defaultRadiusKm)
	if r := c.QueryParam("radius"); r != "" {
		if parsed, err := strconv.ParseFloat(r, 64); err == nil {
			radius = parsed
		}
	}

	// accepted under both names; passed through unvalidated
	serviceID := c.QueryParam("serviceId")
	if serviceID == "" {
		serviceID = c.QueryParam("servico_id")
	}

	return c.JSON(http.StatusOK, searchResponse{
		Message: "search parameters accepted",
		Params: searchParams{
			Lat:       lat,
			Lon:       lon,
			Radius:    radius,
			ServiceID: serviceID,
		},
		Note: "distance filtering is performed by the caller",
	})
}
