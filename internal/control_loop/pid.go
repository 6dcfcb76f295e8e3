package control_loop

// PidState is a read-only copy of the internals of a PidLoop
type PidState struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`

	Target           float64 `json:"target"`
	Measured         float64 `json:"measured"`
	Error            float64 `json:"error"`
	LastError        float64 `json:"lastError"`
	AccumulatedError float64 `json:"accumulatedError"`
	Output           float64 `json:"output"`
}

// PidLoop is a tick based PID controller.
// The output is not bounded, callers have to clamp it before it is applied.
type PidLoop struct {
	// Proportional Constant
	p float64
	// Integral Constant
	i float64
	// Derivative Constant
	d float64

	target   float64
	measured float64

	err       float64
	lastError float64
	// sum of all errors, only advanced while i != 0
	accumulatedError float64

	output float64
}

func NewPidLoop(p, i, d float64) *PidLoop {
	return &PidLoop{
		p: p,
		i: i,
		d: d,
	}
}

// Configure replaces the gains, accumulated state is left untouched
func (l *PidLoop) Configure(p, i, d float64) {
	l.p = p
	l.i = i
	l.d = d
}

func (l *PidLoop) SetTarget(target float64) {
	l.target = target
}

func (l *PidLoop) SetMeasured(measured float64) {
	l.measured = measured
}

// Step computes the output for the current target and measured value
func (l *PidLoop) Step() float64 {
	l.err = l.target - l.measured

	if l.i != 0 {
		l.accumulatedError += l.err
	}

	l.output = l.p*l.err + l.i*l.accumulatedError + l.d*l.lastError
	l.lastError = l.err

	return l.output
}

func (l *PidLoop) Cycle(target float64, measured float64) float64 {
	l.SetTarget(target)
	l.SetMeasured(measured)
	return l.Step()
}

// Reset clears the accumulated and last error
func (l *PidLoop) Reset() {
	l.err = 0
	l.lastError = 0
	l.accumulatedError = 0
	l.output = 0
}

func (l *PidLoop) Target() float64 {
	return l.target
}

func (l *PidLoop) Error() float64 {
	return l.err
}

func (l *PidLoop) Output() float64 {
	return l.output
}

func (l *PidLoop) State() PidState {
	return PidState{
		P:                l.p,
		I:                l.i,
		D:                l.d,
		Target:           l.target,
		Measured:         l.measured,
		Error:            l.err,
		LastError:        l.lastError,
		AccumulatedError: l.accumulatedError,
		Output:           l.output,
	}
}
