package handler

import (
	"net/http"

	"github.com/osse101/CityProduction_Go/internal/city"
	"github.com/osse101/CityProduction_Go/internal/domain"
)

// RuleCatalog exposes the loaded rule database; *rules.Registry implements it
type RuleCatalog interface {
	Policies() []domain.ResourceTypePolicy
	DisplayName(id domain.ResourceTypeID) string
	Digest() string
}

// TurnRequest is the body of a turn recomputation
type TurnRequest struct {
	Turn   int                        `json:"turn" validate:"min=0"`
	Cities []domain.CityContributions `json:"cities" validate:"required,min=1,max=2000,dive"`
}

// ResourceTypeResponse describes one policy of the rule database
type ResourceTypeResponse struct {
	ID            domain.ResourceTypeID    `json:"id"`
	Name          string                   `json:"name"`
	DefaultBucket domain.Bucket            `json:"default_bucket"`
	Rounding      domain.RoundingDirection `json:"rounding"`
}

// ResourceTypesResponse lists the rule database policies
type ResourceTypesResponse struct {
	RulesDigest   string                 `json:"rules_digest"`
	ResourceTypes []ResourceTypeResponse `json:"resource_types"`
}

// ProductionHandler serves city production recomputation
type ProductionHandler struct {
	service city.Service
	rules   RuleCatalog
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(service city.Service, rules RuleCatalog) *ProductionHandler {
	return &ProductionHandler{service: service, rules: rules}
}

// HandleRecomputeCity recomputes one city from its contribution feed
// @Summary Recompute city production
// @Description Accumulates the contributions of one city and returns per-resource totals
// @Tags production
// @Accept json
// @Produce json
// @Param request body domain.CityContributions true "City contributions"
// @Success 200 {object} domain.CityProductionReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/production/city [post]
func (h *ProductionHandler) HandleRecomputeCity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CityContributions
		if err := DecodeAndValidateRequest(r, w, &req, "Recompute city"); err != nil {
			return
		}

		report, err := h.service.Recompute(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, ErrMsgRecomputeCityFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, report)
	}
}

// HandleRecomputeTurn recomputes every city of a turn
// @Summary Recompute turn production
// @Description Recomputes many cities in parallel; failed cities are listed without aborting the rest
// @Tags production
// @Accept json
// @Produce json
// @Param request body TurnRequest true "Turn feed"
// @Success 200 {object} domain.TurnReport
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/production/turn [post]
func (h *ProductionHandler) HandleRecomputeTurn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TurnRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Recompute turn"); err != nil {
			return
		}

		report, err := h.service.RecomputeTurn(r.Context(), req.Turn, req.Cities)
		if err != nil {
			respondServiceError(w, r, ErrMsgRecomputeTurnFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, report)
	}
}

// HandleGetLatestReport returns the most recent report of a city
// @Summary Latest city report
// @Tags production
// @Produce json
// @Param cityID path string true "City ID"
// @Success 200 {object} domain.CityProductionReport
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/production/city/{cityID} [get]
func (h *ProductionHandler) HandleGetLatestReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cityID, ok := GetPathParam(r, w, "cityID")
		if !ok {
			return
		}

		report, err := h.service.LatestReport(r.Context(), cityID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetReportFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, report)
	}
}

// HandleListResourceTypes lists the loaded resource type policies
// @Summary List resource types
// @Tags production
// @Produce json
// @Success 200 {object} ResourceTypesResponse
// @Router /api/v1/resource-types [get]
func (h *ProductionHandler) HandleListResourceTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		policies := h.rules.Policies()
		resp := ResourceTypesResponse{
			RulesDigest:   h.rules.Digest(),
			ResourceTypes: make([]ResourceTypeResponse, 0, len(policies)),
		}
		for _, p := range policies {
			resp.ResourceTypes = append(resp.ResourceTypes, ResourceTypeResponse{
				ID:            p.ResourceType,
				Name:          h.rules.DisplayName(p.ResourceType),
				DefaultBucket: p.DefaultBucket,
				Rounding:      p.Rounding,
			})
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
