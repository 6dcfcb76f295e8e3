package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flagbot/flagbot/internal/actuators"
	"github.com/flagbot/flagbot/internal/api"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/controller"
	"github.com/flagbot/flagbot/internal/persistence"
	"github.com/flagbot/flagbot/internal/robot"
	"github.com/flagbot/flagbot/internal/sensors"
	"github.com/flagbot/flagbot/internal/sim"
	"github.com/flagbot/flagbot/internal/statistics"
	"github.com/flagbot/flagbot/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	err := pers.Init()
	if err != nil {
		ui.Fatal("Unable to initialize persistence at %s: %v", config.DbPath, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, err := InitializeObjects(ctx, config, robot.NewRealClock())
	if err != nil {
		ui.Fatal("Unable to initialize robot: %v", err)
	}

	robotController := controller.NewRobotController(r, config, pers)
	statistics.Register(statistics.NewControllerCollector(robotController))

	var g run.Group
	{
		// === control loop
		g.Add(func() error {
			err := robotController.Run(ctx)
			ui.Info("Controller stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error in controller: %v", err)
			}
			cancel()
		})
	}
	{
		enabled := config.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", port),
				Handler: promhttp.HandlerFor(statistics.Registry, promhttp.HandlerOpts{}),
			}

			g.Add(func() error {
				ui.Info("Starting statistics server on %s", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := config.Api.Enabled
		if enabled {
			// === REST api
			rest := api.CreateRestService(api.Backend{
				Robot:       r,
				Controller:  robotController,
				Persistence: pers,
				Config:      config,
			}, statistics.Registry)
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				ui.Info("Starting REST api on %s", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		stop := make(chan struct{})

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-stop:
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			close(stop)
			cancel()
		})
	}

	err = g.Run()

	if closeErr := r.Close(); closeErr != nil {
		ui.Warning("Error closing %s sink: %v", config.Sink.Type, closeErr)
	}

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
}

// InitializeObjects builds the robot described by config. With a simulated sink
// every sensor is connected to a simulated plant, otherwise the configured
// sensor sources and sink are used. All sensors are registered in sensors.SensorMap
// and the robot collectors are registered for statistics.
func InitializeObjects(ctx context.Context, config configuration.Configuration, clock robot.Clock) (*robot.Robot, error) {
	var r *robot.Robot
	if config.Sink.Type == configuration.SinkTypeSim {
		ui.Info("Using simulated robot")
		simulated, _, err := sim.NewRobot(config, clock)
		if err != nil {
			return nil, err
		}
		r = simulated
	} else {
		var sensorList []sensors.Sensor
		for _, sensorConfig := range config.Sensors {
			sensor, err := sensors.NewSensor(sensorConfig, nil)
			if err != nil {
				return nil, fmt.Errorf("unable to process sensor configuration %s: %w", sensorConfig.ID, err)
			}
			sensorList = append(sensorList, sensor)
		}

		feed, err := sensors.NewFeed(sensorList)
		if err != nil {
			return nil, err
		}

		sink, err := actuators.NewSink(ctx, config.Sink, config.Channels)
		if err != nil {
			return nil, err
		}
		r = robot.New(config, clock, feed, actuators.NewBank(config.Channels), sink)
	}

	for _, sensor := range r.Sensors() {
		currentValue, err := sensor.GetValue()
		if err != nil {
			ui.Warning("Error reading sensor %s: %v", sensor.GetId(), err)
		}
		ui.Debug("Sensor %s (%s): %.2f", sensor.GetId(), sensor.GetConfig().Role, currentValue)
		sensors.SensorMap.Set(sensor.GetId(), sensor)
	}

	statistics.Register(statistics.NewRobotCollector(r))
	statistics.Register(statistics.NewFlywheelCollector(r))
	statistics.Register(statistics.NewChannelCollector(r))
	statistics.Register(statistics.NewSensorCollector(r))

	return r, nil
}
