package auton

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flagbot/flagbot/internal/configuration"
	"github.com/flagbot/flagbot/internal/ui"
)

var ErrUnknownRoutine = errors.New("unknown routine")

const maxRoutineDepth = 16

// StepResult is the outcome of a single routine step
type StepResult struct {
	Routine string                 `json:"routine"`
	Index   int                    `json:"index"`
	Kind    configuration.StepKind `json:"kind"`
	Value   float64                `json:"value"`
	Result  *Result                `json:"result,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// RunResult is the outcome of a routine run
type RunResult struct {
	Routine   string                 `json:"routine"`
	Alliance  configuration.Alliance `json:"alliance"`
	StartMs   int64                  `json:"startMs"`
	EndMs     int64                  `json:"endMs"`
	Completed bool                   `json:"completed"`
	Steps     []StepResult           `json:"steps"`
	Error     string                 `json:"error,omitempty"`
}

// Runner executes configured routines, step after step
type Runner struct {
	executor *Executor
	motion   *Motion
	launcher *Launcher

	routines map[string]configuration.RoutineConfig
}

func NewRunner(r Robot, config configuration.Configuration) *Runner {
	executor := NewExecutor(r)
	routines := map[string]configuration.RoutineConfig{}
	for _, routine := range config.Routines {
		routines[routine.ID] = routine
	}
	return &Runner{
		executor: executor,
		motion:   NewMotion(executor, config.Drive, config.Turn),
		launcher: NewLauncher(executor, config.FireControl),
		routines: routines,
	}
}

// Run executes the routine with the given id for the given alliance.
// Primitives that do not converge are recorded and the routine continues,
// only cancellation and configuration errors abort it.
func (r *Runner) Run(ctx context.Context, id string, alliance configuration.Alliance) (RunResult, error) {
	result := RunResult{
		Routine:  id,
		Alliance: alliance,
		StartMs:  r.executor.NowMs(),
	}

	ui.Info("Running routine '%s' for alliance %s", id, alliance)
	err := r.runRoutine(ctx, id, alliance, 0, &result)
	if err == nil {
		// changes queued by the last steps have not reached the robot yet
		err = r.executor.Flush(ctx)
	}
	result.EndMs = r.executor.NowMs()
	if err != nil {
		result.Error = err.Error()
		ui.Error("Routine '%s' aborted: %v", id, err)
		return result, err
	}

	result.Completed = true
	ui.Success("Routine '%s' finished after %s", id, time.Duration(result.EndMs-result.StartMs)*time.Millisecond)
	return result, nil
}

func (r *Runner) runRoutine(ctx context.Context, id string, alliance configuration.Alliance, depth int, result *RunResult) error {
	if depth > maxRoutineDepth {
		return fmt.Errorf("routine %s: nesting deeper than %d", id, maxRoutineDepth)
	}
	routine, ok := r.routines[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoutine, id)
	}

	for idx, step := range routine.Steps {
		if step.Kind == configuration.StepRoutine {
			err := r.runRoutine(ctx, step.Routine, alliance, depth+1, result)
			if err != nil {
				return err
			}
			continue
		}

		if step.Kind == configuration.StepTurn && step.Mirror {
			step.Value *= alliance.HeadingSign()
		}

		stepResult := StepResult{Routine: id, Index: idx, Kind: step.Kind, Value: step.Value}
		motionResult, err := r.runStep(ctx, step)
		stepResult.Result = motionResult
		if err != nil {
			stepResult.Error = err.Error()
			result.Steps = append(result.Steps, stepResult)
			if !errors.Is(err, ErrNotConverged) {
				return err
			}
			ui.Warning("Routine %s, step %d (%s): %v", id, idx, step.Kind, err)
			continue
		}
		result.Steps = append(result.Steps, stepResult)
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, step configuration.StepConfig) (*Result, error) {
	ui.Debug("Step %s %.1f %s", step.Kind, step.Value, step.Duration)

	var result Result
	var err error
	switch step.Kind {
	case configuration.StepDrive:
		result, err = r.motion.Drive(ctx, step.Value)
	case configuration.StepTurn:
		result, err = r.motion.Turn(ctx, step.Value)
	case configuration.StepWait:
		return nil, r.launcher.Wait(ctx, step.Duration)
	case configuration.StepPower:
		power := int(step.Value)
		return nil, r.motion.Power(ctx, power, power, step.Duration)
	case configuration.StepFlywheel:
		r.launcher.SetFlywheel(step.Value)
		return nil, nil
	case configuration.StepWaitFlywheel:
		result, err = r.launcher.WaitFlywheel(ctx, step.Value)
	case configuration.StepOverride:
		r.launcher.SetOverride(step.Mode)
		return nil, nil
	case configuration.StepFire:
		result, err = r.launcher.Fire(ctx)
	case configuration.StepDoubleShot:
		result, err = r.launcher.DoubleShot(ctx)
	default:
		return nil, fmt.Errorf("unsupported step kind '%s'", step.Kind)
	}
	return &result, err
}
