package sim

import (
	"sync"
	"time"

	"github.com/flagbot/flagbot/internal/actuators"
	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/util"
)

// flywheel speed lost when a ball passes through it
const shotRpmDrop = 0.15

// Plant is a coarse physical model of the robot, driven by channel
// outputs and read through simulated sensors
type Plant struct {
	config   configuration.SimConfig
	flywheel configuration.FlywheelConfig
	mapping  configuration.MappingConfig
	reversed map[int]bool

	mu sync.Mutex

	outputs map[int]int

	leftSpeed  float64
	rightSpeed float64
	leftPos    float64
	rightPos   float64
	heading    float64

	flywheelRpm   float64
	flywheelTicks float64

	balls      int
	loaded     bool
	loadTimer  time.Duration
	ejectTimer time.Duration
	shots      int
}

// PlantState is a read-only copy of the plant
type PlantState struct {
	LeftPosition  float64 `json:"leftPosition"`
	RightPosition float64 `json:"rightPosition"`
	// Heading in tenths of a degree
	Heading     float64 `json:"heading"`
	FlywheelRpm float64 `json:"flywheelRpm"`
	Balls       int     `json:"balls"`
	Loaded      bool    `json:"loaded"`
	Shots       int     `json:"shots"`
}

func NewPlant(config configuration.Configuration) *Plant {
	reversed := map[int]bool{}
	for _, channel := range config.Channels {
		reversed[channel.Id] = channel.Reversed
	}

	balls := config.Sim.Balls
	loaded := false
	if config.Sim.Preloaded && balls > 0 {
		loaded = true
		balls--
	}

	return &Plant{
		config:   config.Sim,
		flywheel: config.Flywheel,
		mapping:  config.Mapping,
		reversed: reversed,
		outputs:  map[int]int{},
		balls:    balls,
		loaded:   loaded,
	}
}

// Apply sets the hardware outputs the plant reacts to
func (p *Plant) Apply(commands []actuators.Command) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, command := range commands {
		p.outputs[command.Channel] = command.Value
	}
}

// Advance moves the model forward by dt
func (p *Plant) Advance(dt time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	seconds := dt.Seconds()
	p.advanceDrive(seconds)
	p.advanceFlywheel(seconds)
	p.advanceBalls(dt)
}

func (p *Plant) advanceDrive(seconds float64) {
	left := (p.power(p.mapping.FrontLeft) + p.power(p.mapping.BackLeft)) / 2
	right := (p.power(p.mapping.FrontRight) + p.power(p.mapping.BackRight)) / 2

	response := util.Coerce(p.config.DriveResponse, 0, 1)
	p.leftSpeed += (left*p.config.DriveTicksPerSecond - p.leftSpeed) * response
	p.rightSpeed += (right*p.config.DriveTicksPerSecond - p.rightSpeed) * response

	p.leftPos += p.leftSpeed * seconds
	p.rightPos += p.rightSpeed * seconds

	if p.config.DriveTicksPerSecond > 0 {
		turnRate := (p.rightSpeed - p.leftSpeed) / (2 * p.config.DriveTicksPerSecond)
		p.heading += turnRate * p.config.TurnDecidegreesPerSecond * seconds
	}
}

func (p *Plant) advanceFlywheel(seconds float64) {
	if len(p.mapping.Flywheel) == 0 {
		return
	}
	power := 0.0
	for _, id := range p.mapping.Flywheel {
		power += p.power(id)
	}
	power /= float64(len(p.mapping.Flywheel))

	tau := p.config.FlywheelTimeConstant.Seconds()
	factor := 1.0
	if tau > 0 {
		factor = util.Coerce(seconds/tau, 0, 1)
	}
	p.flywheelRpm += (power*p.flywheel.MaxRpm - p.flywheelRpm) * factor

	if p.flywheel.GearRatio > 0 {
		ticksPerSecond := p.flywheelRpm / 60 * p.flywheel.TicksPerRevolution / p.flywheel.GearRatio
		p.flywheelTicks += ticksPerSecond * seconds
	}
}

func (p *Plant) advanceBalls(dt time.Duration) {
	indexerForward := p.power(p.mapping.Indexer) > 0
	intakeForward := p.power(p.mapping.Intake) > 0

	if !p.loaded {
		p.ejectTimer = 0
		if indexerForward && intakeForward && p.balls > 0 {
			p.loadTimer += dt
			if p.loadTimer >= p.config.LoadDuration {
				p.loadTimer = 0
				p.loaded = true
				p.balls--
			}
		} else {
			p.loadTimer = 0
		}
		return
	}

	if indexerForward && p.flywheelRpm >= p.config.MinFireRpm {
		p.ejectTimer += dt
		if p.ejectTimer >= p.config.EjectDuration {
			p.ejectTimer = 0
			p.loaded = false
			p.shots++
			p.flywheelRpm *= 1 - shotRpmDrop
		}
	} else {
		p.ejectTimer = 0
	}
}

// power returns the logical power of a channel in [-1, 1]
func (p *Plant) power(channel int) float64 {
	value := float64(p.outputs[channel])
	if p.reversed[channel] {
		value = -value
	}
	return value / actuators.MaxCommandValue
}

// ReadRole returns the raw sensor value for the given role
func (p *Plant) ReadRole(role configuration.SensorRole) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch role {
	case configuration.RoleLeftDrive:
		return p.leftPos
	case configuration.RoleRightDrive:
		return p.rightPos
	case configuration.RoleHeading:
		return p.heading
	case configuration.RoleFlywheel:
		return p.flywheelTicks
	case configuration.RoleBallLoaded:
		if p.loaded {
			return 1
		}
		return 0
	}
	return 0
}

// AddBalls puts balls into reach of the intake
func (p *Plant) AddBalls(count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balls += count
}

func (p *Plant) State() PlantState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PlantState{
		LeftPosition:  p.leftPos,
		RightPosition: p.rightPos,
		Heading:       p.heading,
		FlywheelRpm:   p.flywheelRpm,
		Balls:         p.balls,
		Loaded:        p.loaded,
		Shots:         p.shots,
	}
}
