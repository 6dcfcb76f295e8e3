package configuration

// ChannelConfig describes a single actuator (motor) channel
type ChannelConfig struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	// Deadband is the magnitude below which a command is forced to zero
	Deadband int `json:"deadband"`
	// SlewRate is the maximum change of the commanded value per tick
	SlewRate int  `json:"slewRate"`
	Reversed bool `json:"reversed"`
}

// MappingConfig maps the logical subsystems of the robot to channel ids
type MappingConfig struct {
	FrontLeft  int   `json:"frontLeft"`
	BackLeft   int   `json:"backLeft"`
	FrontRight int   `json:"frontRight"`
	BackRight  int   `json:"backRight"`
	Flywheel   []int `json:"flywheel"`
	Intake     int   `json:"intake"`
	Indexer    int   `json:"indexer"`
	// ModePower is the channel target used for intake/indexer in forward/reverse mode
	ModePower int `json:"modePower"`
}

// DefaultChannels returns the channel table of the competition robot
func DefaultChannels() []ChannelConfig {
	return []ChannelConfig{
		{Id: 0, Name: "Uptake", Deadband: 15, SlewRate: 10, Reversed: true},
		{Id: 1, Name: "FlywheelA", Deadband: 15, SlewRate: 10},
		{Id: 2, Name: "DriveFR", Deadband: 15, SlewRate: 127},
		{Id: 3, Name: "DriveFL", Deadband: 15, SlewRate: 127},
		{Id: 4, Name: "CapFlipper", Deadband: 15, SlewRate: 10},
		{Id: 5, Name: "Intake", Deadband: 15, SlewRate: 127, Reversed: true},
		{Id: 6, Name: "DriveBL", Deadband: 15, SlewRate: 127},
		{Id: 7, Name: "DriveBR", Deadband: 15, SlewRate: 127},
		{Id: 8, Name: "FlywheelB", Deadband: 15, SlewRate: 127},
		{Id: 9, Name: "Spare", Deadband: 15, SlewRate: 10},
	}
}

// DefaultMapping matches DefaultChannels
func DefaultMapping() MappingConfig {
	return MappingConfig{
		FrontLeft:  3,
		BackLeft:   6,
		FrontRight: 2,
		BackRight:  7,
		Flywheel:   []int{1, 8},
		Intake:     5,
		Indexer:    0,
		ModePower:  127,
	}
}
