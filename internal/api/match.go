package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/flagbot/flagbot/internal/auton"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/controller"
	"github.com/labstack/echo/v4"
)

type matchRequest struct {
	Alliance string `json:"alliance"`
	Routine  string `json:"routine"`
}

func registerMatchEndpoints(rest *echo.Echo, backend Backend) {
	rest.GET("/match/", func(c echo.Context) error {
		match, err := currentMatch(backend)
		if err != nil {
			return returnError(c, err)
		}
		return c.JSONPretty(http.StatusOK, match, indentationChar)
	})
	rest.POST("/match/", func(c echo.Context) error {
		match, err := parseMatch(c, backend)
		if err != nil {
			return returnBadRequest(c, err)
		}
		if err := backend.Persistence.SaveMatchConfig(match); err != nil {
			return returnError(c, err)
		}
		return c.JSONPretty(http.StatusOK, match, indentationChar)
	})

	rest.POST("/autonomous/", func(c echo.Context) error {
		match, err := currentMatch(backend)
		if err != nil {
			return returnError(c, err)
		}
		err = backend.Controller.StartAutonomous(match)
		if errors.Is(err, controller.ErrAutonomousActive) {
			return returnConflict(c, err)
		} else if errors.Is(err, auton.ErrUnknownRoutine) {
			return returnBadRequest(c, err)
		} else if err != nil {
			return returnError(c, err)
		}
		return returnAccepted(c, match.Routine)
	})

	rest.GET("/runs/", func(c echo.Context) error {
		limit := 0
		if text := c.QueryParam("limit"); text != "" {
			value, err := strconv.Atoi(text)
			if err != nil || value < 0 {
				return returnBadRequest(c, errors.New("limit must be a positive number"))
			}
			limit = value
		}
		runs, err := backend.Persistence.LoadRuns(limit)
		if err != nil {
			return returnError(c, err)
		}
		return c.JSONPretty(http.StatusOK, runs, indentationChar)
	})
}

// currentMatch is the stored match selection, or the configured one if none was stored
func currentMatch(backend Backend) (configuration.MatchConfig, error) {
	match, err := backend.Persistence.LoadMatchConfig()
	if errors.Is(err, os.ErrNotExist) {
		return backend.Config.Match, nil
	}
	return match, err
}

func parseMatch(c echo.Context, backend Backend) (configuration.MatchConfig, error) {
	var request matchRequest
	if err := c.Bind(&request); err != nil {
		return configuration.MatchConfig{}, err
	}
	alliance, err := configuration.ParseAlliance(request.Alliance)
	if err != nil {
		return configuration.MatchConfig{}, err
	}
	for _, routine := range backend.Config.Routines {
		if routine.ID == request.Routine {
			return configuration.MatchConfig{Alliance: alliance, Routine: routine.ID}, nil
		}
	}
	return configuration.MatchConfig{}, errors.New("no routine definition with id '" + request.Routine + "' found")
}
