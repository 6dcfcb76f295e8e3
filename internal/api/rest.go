package api

import (
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/controller"
	"github.com/flagbot/flagbot/internal/persistence"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "

	metricsSubsystem = "api"
)

// StateSource provides the state published by the last completed tick
type StateSource interface {
	Snapshot() robot.State
}

// Backend bundles everything the endpoints read from or write to
type Backend struct {
	Robot       StateSource
	Controller  controller.RobotController
	Persistence persistence.Persistence
	Config      configuration.Configuration
}

// Registry is where request metrics are registered and /metrics is gathered from
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

func CreateRestService(backend Backend, registry Registry) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())

	echoRest.Use(middleware.Logger())
	echoRest.Use(middleware.Recover())

	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "flagbot",
		Subsystem:  metricsSubsystem,
		Registerer: registry,
	}))

	echoRest.GET("/alive/", isAlive)
	echoRest.GET("/metrics/", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: registry,
	}))

	registerRobotEndpoints(echoRest, backend)
	registerChannelEndpoints(echoRest, backend)
	registerSensorEndpoints(echoRest, backend)
	registerCommandEndpoints(echoRest, backend)
	registerMatchEndpoints(echoRest, backend)

	return echoRest
}
