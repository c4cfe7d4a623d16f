package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/service"
)

func newEntryRouter(t *testing.T) (*gin.Engine, *service.ParkingService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewParkingService(domain.DefaultLayout(), zap.NewNop())
	h := NewEntryHandler(svc)

	r := gin.New()
	r.POST("/entry/park", h.Park)
	r.GET("/entry/available-spots", h.AvailableSpots)
	return r, svc
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParkEndpointIssuesTicket(t *testing.T) {
	r, _ := newEntryRouter(t)

	w := postJSON(t, r, "/entry/park", domain.ParkRequestDTO{Plate: "abc 1", VehicleType: "Car"})
	require.Equal(t, http.StatusCreated, w.Code)

	var ticket domain.Ticket
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ticket))
	require.Equal(t, "ABC 1", ticket.Plate)
	require.Equal(t, "F1-S01", ticket.SpotID)
}

func TestParkEndpointErrorMapping(t *testing.T) {
	r, svc := newEntryRouter(t)

	_, err := svc.ParkAtSpot("TAKEN 1", "car", "F2-S05")
	require.NoError(t, err)

	w := postJSON(t, r, "/entry/park", domain.ParkRequestDTO{Plate: "NEW 1", VehicleType: "car", SpotID: "F2-S05"})
	require.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(t, r, "/entry/park", domain.ParkRequestDTO{Plate: "NEW 2", VehicleType: "hovercraft"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/entry/park", domain.ParkRequestDTO{Plate: "NEW 3", VehicleType: "motorcycle", SpotID: "F2-S06"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postJSON(t, r, "/entry/park", domain.ParkRequestDTO{Plate: "NEW 4", VehicleType: "car", SpotID: "F9-S01"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailableSpotsEndpoint(t *testing.T) {
	r, _ := newEntryRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/entry/available-spots?vehicle_type=motorcycle", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int                  `json:"count"`
		Spots []domain.ParkingSpot `json:"spots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 40, resp.Count)

	req = httptest.NewRequest(http.MethodGet, "/entry/available-spots", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
