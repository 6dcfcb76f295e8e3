package api

import (
	"net/http"
	"sort"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/sensors"
	"github.com/labstack/echo/v4"
)

type sensorResponse struct {
	Id     string                     `json:"id"`
	Role   configuration.SensorRole   `json:"role"`
	Config configuration.SensorConfig `json:"configuration"`
	// Value is the scaled value read by the last tick
	Value float64 `json:"value"`
}

func registerSensorEndpoints(rest *echo.Echo, backend Backend) {
	group := rest.Group("/sensor")

	group.GET("/", func(c echo.Context) error {
		snapshot := backend.Robot.Snapshot().Sensors
		var data []sensorResponse
		for _, sensor := range sensors.SensorMap.Items() {
			data = append(data, toSensorResponse(sensor, snapshot))
		}
		sort.Slice(data, func(i, j int) bool {
			return data[i].Id < data[j].Id
		})
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
	group.GET("/:"+urlParamId+"/", func(c echo.Context) error {
		id := c.Param(urlParamId)

		sensor, exists := sensors.SensorMap.Get(id)
		if !exists {
			return returnNotFound(c, id)
		}
		data := toSensorResponse(sensor, backend.Robot.Snapshot().Sensors)
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	})
}

func toSensorResponse(sensor sensors.Sensor, snapshot sensors.Snapshot) sensorResponse {
	config := sensor.GetConfig()
	return sensorResponse{
		Id:     sensor.GetId(),
		Role:   config.Role,
		Config: config,
		Value:  snapshot.Value(config.Role),
	}
}
