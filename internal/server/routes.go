package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/augi/luxtronik2mqtt/internal/core/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/value/:group/:id", s.GetValueHandler)
	e.POST("/write/:parameter", s.WriteParameterHandler)

	return e
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

type valueResponse struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// GetValueHandler serves the last snapshot without touching the device.
func (s *Server) GetValueHandler(c echo.Context) error {
	id := fmt.Sprintf("%s.%s", c.Param("group"), c.Param("id"))
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.GetValueRequest{ID: id}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "get_value: FAIL")
	}
	response, ok := res.(domain.GetValueResponse)
	if !ok {
		return c.String(http.StatusServiceUnavailable, "get_value: FAIL")
	}
	if !response.Found {
		return c.String(http.StatusNotFound, "get_value: NOT FOUND")
	}
	return c.JSON(http.StatusOK, valueResponse{
		ID:    response.ID,
		Value: response.Value.Float(),
		Text:  response.Value.String(),
	})
}

type writeRequest struct {
	Value string `json:"value" form:"value" query:"value"`
}

// WriteParameterHandler queues a parameter write on the device. A write
// skipped because the device lock timed out still returns OK, matching
// the warn and skip contract of the device wrapper.
func (s *Server) WriteParameterHandler(c echo.Context) error {
	parameter := c.Param("parameter")

	var req writeRequest
	if err := c.Bind(&req); err != nil || req.Value == "" {
		return c.String(http.StatusBadRequest, "write: missing value")
	}

	res, err := s.rootContext.RequestFuture(s.masterActor, domain.WriteParameterRequest{
		Parameter: parameter,
		Value:     req.Value,
	}, 60*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "write: FAIL")
	}
	response, ok := res.(domain.WriteParameterResponse)
	if !ok {
		return c.String(http.StatusServiceUnavailable, "write: FAIL")
	}
	if response.HasResponseError() {
		return c.String(http.StatusBadRequest, fmt.Sprintf("write: %s", response.GetResponseError()))
	}
	return c.String(http.StatusOK, "write: OK")
}
