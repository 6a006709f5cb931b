package domain

// Reserved parameter names written by the runtime.
const (
	// ParamStateTime holds the seconds spent in the current state (float64).
	ParamStateTime = "StateTime"

	// ParamAnimationComplete is raised by OneTime states when their clip finishes (bool).
	ParamAnimationComplete = "AnimationComplete"
)

// DefaultEpsilon is the tolerance used by float and time equality.
const DefaultEpsilon = 1e-3
