package animflow

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SetCommand writes Value to the parameter Name before tick Tick.
type SetCommand struct {
	Tick  int
	Name  string
	Value any
}

// ParseSetCommand parses "name=value@tick". The value is read as a YAML scalar,
// so 3 is an int, 3.5 a float, true a bool and anything else a string.
// Without "@tick" the command applies before the first tick.
func ParseSetCommand(s string) (SetCommand, error) {
	var cmd SetCommand
	name, rest, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return cmd, fmt.Errorf("set %q: expected name=value[@tick]", s)
	}
	cmd.Name = strings.TrimSpace(name)

	raw := rest
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		tick, err := strconv.Atoi(strings.TrimSpace(rest[at+1:]))
		if err != nil || tick < 0 {
			return cmd, fmt.Errorf("set %q: invalid tick", s)
		}
		cmd.Tick = tick
		raw = rest[:at]
	}

	cmd.Value = raw
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err == nil {
		switch value.(type) {
		case bool, int, float64, string:
			cmd.Value = value
		}
	}
	return cmd, nil
}

// Advancer is implemented by software animators that need to be stepped with
// the flow, such as timeline.Animator.
type Advancer interface {
	Advance(dt float64)
}

// Step is a state change observed by the Runner.
type Step struct {
	Tick int
	Time float64
	From string
	To   string
}

// StepRenderer formats a step for output.
type StepRenderer func(Step) string

// Runner drives an engine for a fixed number of ticks, applying scripted
// parameter writes and reporting every state change.
// This allows for easy testing and headless simulation (CLI, CI).
type Runner struct {
	Output   io.Writer
	Ticks    int
	DT       float64
	Script   []SetCommand
	Animator Advancer
	Renderer StepRenderer
}

// Run starts the engine when needed and executes the ticks.
func (r *Runner) Run(engine *Engine) ([]Step, error) {
	if r.DT <= 0 {
		return nil, fmt.Errorf("tick delta must be positive, got %v", r.DT)
	}
	if !engine.Started() {
		if err := engine.Start(); err != nil {
			return nil, fmt.Errorf("start: %w", err)
		}
	}

	var steps []Step
	emit := func(s Step) {
		steps = append(steps, s)
		if r.Output == nil {
			return
		}
		line := defaultStepRenderer(s)
		if r.Renderer != nil {
			line = r.Renderer(s)
		}
		fmt.Fprintln(r.Output, line)
	}

	emit(Step{Tick: 0, To: engine.CurrentStateID()})

	for tick := 0; tick < r.Ticks; tick++ {
		for _, cmd := range r.Script {
			if cmd.Tick == tick {
				engine.SetParameter(cmd.Name, cmd.Value)
			}
		}
		if r.Animator != nil {
			r.Animator.Advance(r.DT)
		}

		before := engine.Transitions()
		engine.Tick(r.DT)
		if engine.Transitions() != before {
			ev := engine.LastTransition()
			emit(Step{Tick: tick + 1, Time: float64(tick+1) * r.DT, From: ev.FromID, To: ev.ToID})
		}
	}
	return steps, nil
}

func defaultStepRenderer(s Step) string {
	if s.From == "" {
		return fmt.Sprintf("[%4d] %7.3fs  start -> %s", s.Tick, s.Time, s.To)
	}
	return fmt.Sprintf("[%4d] %7.3fs  %s -> %s", s.Tick, s.Time, s.From, s.To)
}
