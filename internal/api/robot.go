package api

import (
	"net/http"
	"strconv"

	"github.com/flagbot/flagbot/internal/controller"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

type robotResponse struct {
	Mode  controller.Mode `json:"mode"`
	State robot.State     `json:"state"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

func registerRobotEndpoints(rest *echo.Echo, backend Backend) {
	rest.GET("/robot/", func(c echo.Context) error {
		data := robotResponse{
			Mode:  backend.Controller.Mode(),
			State: reprint.This(backend.Robot.Snapshot()).(robot.State),
		}
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})

	rest.POST("/mode/", func(c echo.Context) error {
		var request modeRequest
		if err := c.Bind(&request); err != nil {
			return returnBadRequest(c, err)
		}
		mode, err := controller.ParseMode(request.Mode)
		if err != nil {
			return returnBadRequest(c, err)
		}
		if err := backend.Controller.SetMode(mode); err != nil {
			return returnBadRequest(c, err)
		}
		return returnAccepted(c, string(mode))
	})
}

func registerChannelEndpoints(rest *echo.Echo, backend Backend) {
	group := rest.Group("/channel")

	group.GET("/", func(c echo.Context) error {
		data := reprint.This(backend.Robot.Snapshot().Channels)
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)
		channelId, err := strconv.Atoi(id)
		if err != nil {
			return returnNotFound(c, id)
		}
		for _, channel := range backend.Robot.Snapshot().Channels {
			if channel.Id == channelId {
				return c.JSONPretty(http.StatusOK, channel, indentationChar)
			}
		}
		return returnNotFound(c, id)
	})
}
