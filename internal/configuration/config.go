package configuration

import (
	"os"
	"reflect"
	"time"

	"github.com/flagbot/flagbot/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// TickRate is the fixed period of the control loop
	TickRate time.Duration `json:"tickRate"`

	Channels []ChannelConfig `json:"channels"`
	Mapping  MappingConfig   `json:"mapping"`
	Sensors  []SensorConfig  `json:"sensors"`
	Sink     SinkConfig      `json:"sink"`

	Flywheel    FlywheelConfig    `json:"flywheel"`
	Drive       MotionConfig      `json:"drive"`
	Turn        MotionConfig      `json:"turn"`
	FireControl FireControlConfig `json:"fireControl"`

	Match    MatchConfig     `json:"match"`
	Routines []RoutineConfig `json:"routines"`

	Sim SimConfig `json:"sim"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("flagbot")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/flagbot/")
	}

	viper.SetEnvPrefix("flagbot")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/flagbot/flagbot.db")
	viper.SetDefault("tickRate", 20*time.Millisecond)

	viper.SetDefault("channels", DefaultChannels())
	viper.SetDefault("mapping.frontLeft", 3)
	viper.SetDefault("mapping.backLeft", 6)
	viper.SetDefault("mapping.frontRight", 2)
	viper.SetDefault("mapping.backRight", 7)
	viper.SetDefault("mapping.flywheel", []int{1, 8})
	viper.SetDefault("mapping.intake", 5)
	viper.SetDefault("mapping.indexer", 0)
	viper.SetDefault("mapping.modePower", 127)
	viper.SetDefault("sensors", DefaultSimSensors())
	viper.SetDefault("sink.type", SinkTypeSim)
	viper.SetDefault("sink.serial.baudRate", 115200)
	viper.SetDefault("sink.can.interface", "can0")
	viper.SetDefault("sink.can.baseId", 0x200)

	viper.SetDefault("flywheel.gain", 0.00005)
	viper.SetDefault("flywheel.maxRpm", 3200.0)
	viper.SetDefault("flywheel.gearRatio", 1.0)
	viper.SetDefault("flywheel.ticksPerRevolution", 360.0)
	viper.SetDefault("flywheel.smoothing", true)
	viper.SetDefault("flywheel.bangBangThreshold", 750.0)
	viper.SetDefault("flywheel.reseed", 1.0)
	viper.SetDefault("flywheel.lockThreshold", 100.0)
	viper.SetDefault("flywheel.lockWindow", 5)

	viper.SetDefault("drive.p", 0.5)
	viper.SetDefault("drive.driftCompensation", 600.0)
	viper.SetDefault("drive.tolerance", 50.0)
	viper.SetDefault("drive.maxPower", 127)
	viper.SetDefault("drive.brakePower", 60)
	viper.SetDefault("drive.brakeDuration", 100*time.Millisecond)
	viper.SetDefault("drive.maxDuration", 5*time.Second)
	viper.SetDefault("drive.resetOnConfigure", true)

	viper.SetDefault("turn.p", 4.0)
	viper.SetDefault("turn.tolerance", 5.0)
	viper.SetDefault("turn.maxPower", 70)
	viper.SetDefault("turn.brakePower", 30)
	viper.SetDefault("turn.brakeDuration", 60*time.Millisecond)
	viper.SetDefault("turn.maxDuration", 3*time.Second)
	viper.SetDefault("turn.resetOnConfigure", true)

	viper.SetDefault("fireControl.resetDelay", 2*time.Second)
	viper.SetDefault("fireControl.queueTimeout", 1*time.Second)
	viper.SetDefault("fireControl.fireTimeout", 3*time.Second)
	viper.SetDefault("fireControl.clearOn", ClearOnSensor)
	viper.SetDefault("fireControl.flywheelDropThreshold", 150.0)

	viper.SetDefault("match.alliance", AllianceBlue)
	viper.SetDefault("match.routine", DefaultRoutineId)
	viper.SetDefault("routines", DefaultRoutines())

	viper.SetDefault("sim.driveTicksPerSecond", 2400.0)
	viper.SetDefault("sim.turnDecidegreesPerSecond", 1800.0)
	viper.SetDefault("sim.driveResponse", 0.3)
	viper.SetDefault("sim.flywheelTimeConstant", 400*time.Millisecond)
	viper.SetDefault("sim.loadDuration", 300*time.Millisecond)
	viper.SetDefault("sim.ejectDuration", 100*time.Millisecond)
	viper.SetDefault("sim.minFireRpm", 500.0)
	viper.SetDefault("sim.balls", 4)
	viper.SetDefault("sim.preloaded", true)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 8080)
}

// DetectAndReadConfigFile detects the path of the first existing config file
// and reads it, returns the path of the file that was used
func DetectAndReadConfigFile() string {
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			ui.Warning("No config file found, using defaults")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	return viper.ConfigFileUsed()
}

// LoadConfig populates CurrentConfig from the viper state
func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		enumHookFunc(),
	)
}

// enumHookFunc normalizes the textual representation of enum-like
// configuration values before they are assigned
func enumHookFunc() mapstructure.DecodeHookFuncType {
	allianceType := reflect.TypeOf(Alliance(""))
	roleType := reflect.TypeOf(SensorRole(""))
	clearOnType := reflect.TypeOf(ClearCondition(""))
	stepKindType := reflect.TypeOf(StepKind(""))
	modeType := reflect.TypeOf(MotionMode(""))
	sinkType := reflect.TypeOf(SinkType(""))

	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		text := reflect.ValueOf(data).String()

		switch t {
		case allianceType:
			return ParseAlliance(text)
		case roleType:
			return ParseSensorRole(text)
		case clearOnType:
			return ParseClearCondition(text)
		case stepKindType:
			return ParseStepKind(text)
		case modeType:
			return ParseMotionMode(text)
		case sinkType:
			return ParseSinkType(text)
		}
		return data, nil
	}
}
