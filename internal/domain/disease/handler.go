package disease

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codemap/codemap/internal/platform/fhir"
)

// Handler provides REST and FHIR endpoints for disease code resolution.
type Handler struct {
	svc *Service
}

// NewHandler creates a new disease handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers disease routes on the API and FHIR groups.
func (h *Handler) RegisterRoutes(api *echo.Group, fhirGroup *echo.Group) {
	g := api.Group("/diseases")
	g.GET("/resolve", h.Resolve)
	g.GET("", h.List)
	g.PUT("/:name", h.Update)
	g.DELETE("/:name", h.Delete)

	fhirGroup.GET("/Condition/$resolve", h.FHIRResolve)
	fhirGroup.GET("/Condition", h.FHIRList)
}

// resolveResponse is the REST shape of a successful resolution.
type resolveResponse struct {
	Name  string `json:"name"`
	Match string `json:"match"`
	Score *int   `json:"score,omitempty"`
	ICD11 string `json:"icd11"`
	TM2   string `json:"tm2"`
}

func (h *Handler) threshold(c echo.Context) (int, error) {
	raw := c.QueryParam("threshold")
	if raw == "" {
		return h.svc.Threshold(), nil
	}
	t, err := strconv.Atoi(raw)
	if err != nil || t < 0 || t > 100 {
		return 0, fmt.Errorf("threshold must be an integer between 0 and 100, got %q", raw)
	}
	return t, nil
}

// pathName extracts and decodes the :name path parameter.
func pathName(c echo.Context) (string, error) {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return "", fmt.Errorf("invalid disease name in path: %w", err)
	}
	return name, nil
}

// Resolve handles GET /api/v1/diseases/resolve?q=...&threshold=N
func (h *Handler) Resolve(c echo.Context) error {
	threshold, err := h.threshold(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.svc.ResolveWithThreshold(c.Request().Context(), c.QueryParam("q"), threshold)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
		}
		return err
	}
	if res.Kind == MatchNone {
		return echo.NewHTTPError(http.StatusNotFound, "no disease matches the query")
	}

	resp := resolveResponse{
		Name:  res.Name,
		Match: string(res.Kind),
		ICD11: res.Entry.ICD11,
		TM2:   res.Entry.TM2,
	}
	if res.Kind == MatchFuzzy {
		score := res.Score
		resp.Score = &score
	}
	return c.JSON(http.StatusOK, resp)
}

// List handles GET /api/v1/diseases
func (h *Handler) List(c echo.Context) error {
	diseases, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, diseases)
}

// Update handles PUT /api/v1/diseases/:name
func (h *Handler) Update(c echo.Context) error {
	name, err := pathName(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	entry, err := h.svc.Update(c.Request().Context(), name, req)
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("disease %q not found", name))
	case errors.Is(err, ErrEmptyCode), errors.Is(err, ErrInvalidQuery):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, &Disease{Name: name, ICD11: entry.ICD11, TM2: entry.TM2})
}

// Delete handles DELETE /api/v1/diseases/:name
func (h *Handler) Delete(c echo.Context) error {
	name, err := pathName(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.svc.Delete(c.Request().Context(), name)
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("disease %q not found", name))
	case errors.Is(err, ErrInvalidQuery):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, fhir.SuccessOutcome(fmt.Sprintf("%s deleted successfully", name)))
}

// FHIRResolve handles GET /fhir/Condition/$resolve?disease=...
func (h *Handler) FHIRResolve(c echo.Context) error {
	threshold, err := h.threshold(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhir.ValidationOutcome("threshold", err.Error()))
	}

	res, err := h.svc.ResolveWithThreshold(c.Request().Context(), c.QueryParam("disease"), threshold)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			return c.JSON(http.StatusBadRequest, fhir.ValidationOutcome("disease", "no disease provided"))
		}
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	if res.Kind == MatchNone {
		return c.JSON(http.StatusNotFound, fhir.NotFoundOutcome("Disease not found"))
	}
	return c.JSON(http.StatusOK, res.ToFHIR())
}

// FHIRList handles GET /fhir/Condition
func (h *Handler) FHIRList(c echo.Context) error {
	diseases, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}

	resources := make([]interface{}, 0, len(diseases))
	for _, d := range diseases {
		resources = append(resources, d.ToFHIR())
	}
	bundle, err := fhir.NewCollectionBundle(resources)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhir.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, bundle)
}
