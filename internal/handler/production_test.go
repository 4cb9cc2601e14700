package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/handler"
	"github.com/osse101/CityProduction_Go/internal/rules"
	"github.com/osse101/CityProduction_Go/mocks"
)

func testRegistry() *rules.Registry {
	return rules.MustNewRegistry(
		domain.ResourceTypePolicy{ResourceType: domain.ResourceGold, DefaultBucket: domain.FlatBeforeBonus, Rounding: domain.RoundDown},
		domain.ResourceTypePolicy{ResourceType: domain.ResourceFood, DefaultBucket: domain.FlatBeforeBonus, Rounding: domain.RoundUp},
	)
}

func newRouter(h *handler.ProductionHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/production/city", h.HandleRecomputeCity())
	r.Post("/api/v1/production/turn", h.HandleRecomputeTurn())
	r.Get("/api/v1/production/city/{cityID}", h.HandleGetLatestReport())
	r.Get("/api/v1/resource-types", h.HandleListResourceTypes())
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleRecomputeCity(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		report := &domain.CityProductionReport{
			ID:     "r1",
			CityID: "city-1",
			Turn:   4,
			Lines:  []domain.ProductionLine{{ResourceType: domain.ResourceGold, FlatBeforeBonus: 10, PercentageBonus: 50, Total: 7}},
		}
		svc.On("Recompute", mock.Anything, mock.MatchedBy(func(in domain.CityContributions) bool {
			return in.CityID == "city-1" && len(in.Contributions) == 2 && in.Contributions[1].Bucket != nil &&
				*in.Contributions[1].Bucket == domain.PercentageBonus
		})).Return(report, nil)

		body := `{"city_id":"city-1","turn":4,"contributions":[
			{"resource_type":"RE01","doubled_amount":10,"source":"tiles"},
			{"resource_type":"RE01","doubled_amount":50,"bucket":"percentage"}]}`
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/city", body)

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.CityProductionReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		total, ok := got.Total(domain.ResourceGold)
		assert.True(t, ok)
		assert.Equal(t, 7, total)
	})

	t.Run("Unknown bucket name", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		body := `{"city_id":"city-1","contributions":[{"resource_type":"RE01","doubled_amount":1,"bucket":"middle"}]}`
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/city", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), handler.ErrMsgInvalidRequest)
	})

	t.Run("Unknown field", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		body := `{"city_id":"city-1","gold":12}`
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/city", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Validation failure", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		body := `{"city_id":"","turn":-1,"contributions":[{"resource_type":"RE 01","doubled_amount":1}]}`
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/city", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp handler.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, handler.ErrMsgInvalidRequestSummary, resp.Error)
		assert.Contains(t, resp.Fields, "cityid")
		assert.Contains(t, resp.Fields, "turn")
		assert.Equal(t, "Invalid resource type ID", resp.Fields["contributions[0].resourcetype"])
	})

	t.Run("Doubled amount out of range", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		body := `{"city_id":"c","contributions":[{"resource_type":"RE01","doubled_amount":9223372036854775807}]}`
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/city", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp handler.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Must be at most 1000000000", resp.Fields["contributions[0].doubledamount"])
	})

	t.Run("Service error is mapped", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		svc.On("Recompute", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: city_id is required", domain.ErrInvalidInput))

		body := `{"city_id":"c","contributions":[]}`
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/city", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), handler.ErrMsgInvalidInputError)
	})
}

func TestHandleRecomputeTurn(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		svc.On("RecomputeTurn", mock.Anything, 9, mock.MatchedBy(func(c []domain.CityContributions) bool {
			return len(c) == 2
		})).Return(&domain.TurnReport{
			PassID:   "p",
			Turn:     9,
			Cities:   []*domain.CityProductionReport{{CityID: "a", Turn: 9}},
			Failures: []domain.CityFailure{{CityID: "b", Error: "boom"}},
		}, nil)

		body := `{"turn":9,"cities":[{"city_id":"a","contributions":[]},{"city_id":"b","contributions":[]}]}`
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/turn", body)

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.TurnReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 9, got.Turn)
		assert.Len(t, got.Cities, 1)
		assert.Len(t, got.Failures, 1)
	})

	t.Run("Empty cities rejected", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/turn", `{"turn":1,"cities":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cities")
	})

	t.Run("Nested city validated", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodPost, "/api/v1/production/turn", `{"turn":1,"cities":[{"city_id":""}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cities[0].cityid")
	})
}

func TestHandleGetLatestReport(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		svc.On("LatestReport", mock.Anything, "city-7").Return(&domain.CityProductionReport{CityID: "city-7", Turn: 3}, nil)

		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodGet, "/api/v1/production/city/city-7", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"city_id":"city-7"`)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		svc.On("LatestReport", mock.Anything, "ghost").Return(nil, domain.ErrReportNotFound)

		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodGet, "/api/v1/production/city/ghost", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), handler.ErrMsgReportNotFoundError)
	})

	t.Run("Database error hides details", func(t *testing.T) {
		svc := mocks.NewMockCityService(t)
		svc.On("LatestReport", mock.Anything, "c").Return(nil, fmt.Errorf("%w: dial tcp 10.0.0.5:5432", domain.ErrDatabaseError))

		w := doRequest(t, newRouter(handler.NewProductionHandler(svc, testRegistry())), http.MethodGet, "/api/v1/production/city/c", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, strings.Contains(w.Body.String(), "10.0.0.5"))
	})
}

func TestHandleListResourceTypes(t *testing.T) {
	reg := testRegistry()
	svc := mocks.NewMockCityService(t)

	w := doRequest(t, newRouter(handler.NewProductionHandler(svc, reg)), http.MethodGet, "/api/v1/resource-types", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got handler.ResourceTypesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, reg.Digest(), got.RulesDigest)
	require.Len(t, got.ResourceTypes, 2)
	assert.Equal(t, domain.ResourceGold, got.ResourceTypes[0].ID)
	assert.Equal(t, domain.RoundUp, got.ResourceTypes[1].Rounding)
}
