package api

import (
	"errors"
	"fmt"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/controller"
	"github.com/labstack/echo/v4"
)

type driveRequest struct {
	Forward int `json:"forward"`
	Turn    int `json:"turn"`
}

type flywheelRequest struct {
	Rpm float64 `json:"rpm"`
}

type fireRequest struct {
	Double bool `json:"double"`
}

type overrideRequest struct {
	Mode string `json:"mode"`
}

func registerCommandEndpoints(rest *echo.Echo, backend Backend) {
	group := rest.Group("/command")

	group.POST("/drive/", func(c echo.Context) error {
		var request driveRequest
		if err := c.Bind(&request); err != nil {
			return returnBadRequest(c, err)
		}
		if !withinCommandRange(request.Forward) || !withinCommandRange(request.Turn) {
			return returnBadRequest(c, fmt.Errorf("forward and turn must be in [%d..%d]", -configuration.MaxCommandValue, configuration.MaxCommandValue))
		}
		return submit(c, backend, controller.DriveCommand(request.Forward, request.Turn))
	})
	group.POST("/flywheel/", func(c echo.Context) error {
		var request flywheelRequest
		if err := c.Bind(&request); err != nil {
			return returnBadRequest(c, err)
		}
		maxRpm := backend.Config.Flywheel.MaxRpm
		if request.Rpm < 0 || request.Rpm > maxRpm {
			return returnBadRequest(c, fmt.Errorf("rpm must be in [0..%.0f]", maxRpm))
		}
		return submit(c, backend, controller.FlywheelCommand(request.Rpm))
	})
	group.POST("/fire/", func(c echo.Context) error {
		var request fireRequest
		if err := c.Bind(&request); err != nil {
			return returnBadRequest(c, err)
		}
		return submit(c, backend, controller.FireCommand(request.Double))
	})
	group.POST("/override/", func(c echo.Context) error {
		var request overrideRequest
		if err := c.Bind(&request); err != nil {
			return returnBadRequest(c, err)
		}
		mode, err := configuration.ParseMotionMode(request.Mode)
		if err != nil {
			return returnBadRequest(c, err)
		}
		return submit(c, backend, controller.OverrideCommand(mode))
	})
}

func submit(c echo.Context, backend Backend, command controller.Command) error {
	err := backend.Controller.Submit(command)
	if errors.Is(err, controller.ErrNotInDriverMode) {
		return returnConflict(c, err)
	} else if err != nil {
		return returnError(c, err)
	}
	return returnAccepted(c, command.Name)
}

func withinCommandRange(value int) bool {
	return value >= -configuration.MaxCommandValue && value <= configuration.MaxCommandValue
}
