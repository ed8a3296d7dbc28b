package handler

import (
	"net/http"

	"github.com/deppfellow/adsfsa-app/internal/config"
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/labstack/echo/v4"
)

type SystemHandler struct {
	Handler
}

func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(s),
	}
}

// BannerResponse is the body of GET /.
type BannerResponse struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// Banner identifies the running service.
func (h *SystemHandler) Banner(c echo.Context) error {
	return c.JSON(http.StatusOK, BannerResponse{
		Message:     "Welcome to " + config.ServiceName + " API",
		Status:      "running",
		Version:     config.Version,
		Environment: h.server.Config.Primary.Env,
	})
}
