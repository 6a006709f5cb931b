/*
Package animflow is a data-driven animation state machine for sprites and
characters.

A flow is authored as data (states, transitions and condition trees), built
once, then ticked every frame. Gameplay code never switches animations itself:
it writes parameters (IsMoving, Speed, Grounded...) and the flow decides which
clip plays.

# Concept

Each state plays one clip in one of three ways:

  - Looping: the clip repeats until a transition fires.
  - OneTime: the clip plays once and raises the AnimationComplete parameter.
  - HoldFrame: the clip is paused on a single frame.

Transitions are checked in declaration order and the first whose conditions all
hold is taken. Conditions compare a parameter with a literal (bool, int, float
with a tolerance, string), the time spent in the current state, or the
animator's completion flag, and combine with AND, OR, AT_LEAST, EXACTLY and
AT_MOST. At most one transition fires per tick.

Authoring mistakes never stop a flow: ids are regenerated, a missing initial
state is chosen, dangling transitions are dropped and unknown conditions become
always-false. Each repair is reported as a domain.Diagnostic.

# Usage

	eng, err := animflow.Open("player.yaml", animflow.WithAnimator(myAnimator))
	if err != nil {
		log.Fatal(err)
	}
	if err := eng.Start(); err != nil {
		log.Fatal(err)
	}

	for range frames {
		eng.SetParameter("IsMoving", input.Moving())
		eng.SetParameter("Speed", body.Speed())
		eng.Tick(dt)
	}

Graphs can also be built in Go with package dsl, served by the loaders in
pkg/adapters, and observed through domain.LifecycleHooks (see package
observability for Prometheus metrics).
*/
package animflow
