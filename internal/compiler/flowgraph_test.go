package compiler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/animflow/internal/compiler"
	"github.com/aretw0/animflow/internal/runtime"
	"github.com/aretw0/animflow/pkg/adapters/timeline"
	"github.com/aretw0/animflow/pkg/domain"
	"github.com/aretw0/animflow/pkg/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func codes(diags []domain.Diagnostic) []domain.DiagnosticCode {
	out := make([]domain.DiagnosticCode, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func locomotion() *domain.Graph {
	return &domain.Graph{
		Name: "locomotion",
		Parameters: []domain.ParameterRecord{
			{Name: "IsMoving", Type: "bool"},
			{Name: "Speed", Type: "float", Default: 1},
		},
		States: []domain.StateRecord{
			{ID: "idle", Variant: domain.VariantLooping, AnimationName: "idle", IsInitial: true},
			{ID: "run", Variant: domain.VariantLooping, AnimationName: "run"},
			{ID: "attack", Variant: domain.VariantOneTime, AnimationName: "attack"},
			{ID: "crouch", Variant: domain.VariantHoldFrame, AnimationName: "crouch", HoldFrame: 3},
		},
		Transitions: []domain.TransitionRecord{
			{FromID: "idle", ToID: "run", Conditions: []domain.ConditionRecord{
				{Kind: domain.OperandBool, Op: domain.OpEqual, Parameter: "IsMoving", Value: true},
			}},
			{FromID: "run", ToID: "idle", Conditions: []domain.ConditionRecord{
				{Kind: domain.OperandBool, Op: domain.OpEqual, Parameter: "IsMoving", Value: false},
			}},
			{FromID: "attack", ToID: "idle", Conditions: []domain.ConditionRecord{
				{Kind: domain.OperandAnimationComplete},
			}},
		},
	}
}

func TestValidate_CleanGraph(t *testing.T) {
	fg := compiler.New(locomotion())
	assert.Empty(t, fg.Validate())
	assert.Equal(t, "idle", fg.InitialStateID())
	assert.Len(t, fg.Graph().Transitions, 3)
}

func TestValidate_RegeneratesEmptyAndDuplicateIDs(t *testing.T) {
	g := &domain.Graph{States: []domain.StateRecord{
		{ID: "a", Variant: domain.VariantLooping, IsInitial: true},
		{ID: "", Variant: domain.VariantLooping},
		{ID: "a", Variant: domain.VariantLooping},
		{ID: "gen-1", Variant: domain.VariantLooping},
	}}
	fg := compiler.New(g, compiler.WithIDGenerator(sequentialIDs()))
	diags := fg.Validate()

	assert.Equal(t, []domain.DiagnosticCode{domain.DiagEmptyID, domain.DiagDuplicateID}, codes(diags))

	ids := map[string]bool{}
	for _, s := range fg.Graph().States {
		require.NotEmpty(t, s.ID)
		assert.False(t, ids[s.ID], "id %q repeated", s.ID)
		ids[s.ID] = true
	}
	assert.Equal(t, "gen-2", fg.Graph().States[1].ID, "generated ids skip ids already taken")
	assert.Equal(t, "", g.States[1].ID, "caller's records are untouched")
}

func TestValidate_UUIDIDsByDefault(t *testing.T) {
	fg := compiler.New(&domain.Graph{States: []domain.StateRecord{{Variant: domain.VariantLooping}}})
	fg.Validate()
	assert.Regexp(t, `^state-[0-9a-f-]{36}$`, fg.Graph().States[0].ID)
}

func TestValidate_InitialSelection(t *testing.T) {
	t.Run("none flagged picks first", func(t *testing.T) {
		fg := compiler.New(&domain.Graph{States: []domain.StateRecord{
			{ID: "a", Variant: domain.VariantLooping},
			{ID: "b", Variant: domain.VariantLooping},
		}})
		diags := fg.Validate()
		assert.Equal(t, []domain.DiagnosticCode{domain.DiagNoInitial}, codes(diags))
		assert.Equal(t, "a", fg.InitialStateID())
		assert.True(t, fg.Graph().States[0].IsInitial)
	})

	t.Run("several flagged keeps first", func(t *testing.T) {
		fg := compiler.New(&domain.Graph{States: []domain.StateRecord{
			{ID: "a", Variant: domain.VariantLooping},
			{ID: "b", Variant: domain.VariantLooping, IsInitial: true},
			{ID: "c", Variant: domain.VariantLooping, IsInitial: true},
		}})
		diags := fg.Validate()
		assert.Equal(t, []domain.DiagnosticCode{domain.DiagMultipleInitial}, codes(diags))
		assert.Equal(t, "b", fg.InitialStateID())

		initial := 0
		for _, s := range fg.Graph().States {
			if s.IsInitial {
				initial++
			}
		}
		assert.Equal(t, 1, initial)
	})

	t.Run("empty graph", func(t *testing.T) {
		fg := compiler.New(nil)
		assert.Empty(t, fg.Validate())
		assert.Equal(t, "", fg.InitialStateID())
	})
}

func TestValidate_DropsDanglingTransitions(t *testing.T) {
	g := locomotion()
	g.Transitions = append(g.Transitions,
		domain.TransitionRecord{FromID: "idle", ToID: "ghost"},
		domain.TransitionRecord{FromID: "ghost", ToID: "idle"},
	)
	fg := compiler.New(g)
	diags := fg.Validate()

	assert.Equal(t, []domain.DiagnosticCode{domain.DiagDanglingTransition, domain.DiagDanglingTransition}, codes(diags))
	assert.Len(t, fg.Graph().Transitions, 3)
	assert.Len(t, g.Transitions, 5)
}

func TestValidate_IsIdempotent(t *testing.T) {
	g := locomotion()
	g.States = append(g.States, domain.StateRecord{ID: "run", Variant: domain.VariantLooping, IsInitial: true})
	g.Transitions = append(g.Transitions, domain.TransitionRecord{FromID: "idle", ToID: "ghost"})

	fg := compiler.New(g, compiler.WithIDGenerator(sequentialIDs()))
	first := fg.Validate()
	require.NotEmpty(t, first)
	assert.Empty(t, fg.Validate())
}

func TestValidate_ReportsUnknownTagsWithoutFailing(t *testing.T) {
	g := locomotion()
	g.States[1].Variant = "Bouncing"
	g.Transitions[0].Conditions = append(g.Transitions[0].Conditions, domain.ConditionRecord{Kind: "vector"})

	diags := compiler.New(g).Validate()
	assert.ElementsMatch(t, []domain.DiagnosticCode{domain.DiagUnknownVariant, domain.DiagUnknownCondition}, codes(diags))
}

func TestValidate_ParameterWarnings(t *testing.T) {
	g := locomotion()
	g.Transitions[0].Conditions = append(g.Transitions[0].Conditions,
		domain.ConditionRecord{Kind: domain.OperandInt, Op: domain.OpGreater, Parameter: "Speed", Value: 2},
		domain.ConditionRecord{Kind: domain.OperandBool, Parameter: "IsGrounded", Value: true},
		domain.ConditionRecord{Kind: domain.OperandTime, Op: domain.OpGreater, Value: 0.5},
		domain.ConditionRecord{Kind: domain.OperandBool, Parameter: domain.ParamAnimationComplete, Value: true},
	)
	g.Parameters = append(g.Parameters, domain.ParameterRecord{Name: "Broken", Type: "vector3"})

	diags := compiler.New(g).Validate()
	assert.Equal(t, []domain.DiagnosticCode{
		domain.DiagInvalidParameter,
		domain.DiagParamTypeMismatch,
		domain.DiagUndeclaredParam,
	}, codes(diags))
	assert.Equal(t, "idle->run[1]", diags[1].Subject)
}

func TestValidate_UndeclaredParametersIgnoredWithoutDeclarations(t *testing.T) {
	g := locomotion()
	g.Parameters = nil
	assert.Empty(t, compiler.New(g).Validate())
}

func TestBuild_NilController(t *testing.T) {
	_, err := compiler.New(locomotion()).Build(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNilController))
}

func TestBuild_InstallsStatesAndTransitions(t *testing.T) {
	c := runtime.NewController(nil)
	diags, err := compiler.New(locomotion()).Build(c)
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.Equal(t, []string{"idle", "run", "attack", "crouch"}, c.States())
	assert.Equal(t, "idle", c.InitialStateID())

	crouch, ok := c.State("crouch")
	require.True(t, ok)
	hold, ok := crouch.(*runtime.HoldFrameState)
	require.True(t, ok)
	assert.Equal(t, 3, hold.Frame)

	idle, _ := c.State("idle")
	require.Len(t, idle.Transitions(), 1)
	assert.Equal(t, "run", idle.Transitions()[0].Target)

	assert.Equal(t, 1.0, params.Get[float64](c.Store(), "Speed"), "declared defaults are seeded")
	assert.Equal(t, false, params.Get[bool](c.Store(), "IsMoving"))
}

func TestBuild_UnknownVariantDefaultsToOneTime(t *testing.T) {
	g := locomotion()
	g.States[1].Variant = "Bouncing"

	c := runtime.NewController(nil)
	diags, err := compiler.New(g).Build(c)
	require.NoError(t, err)
	assert.Equal(t, []domain.DiagnosticCode{domain.DiagUnknownVariant}, codes(diags))

	run, _ := c.State("run")
	assert.Equal(t, domain.VariantOneTime, run.Variant())
}

func TestBuild_FallbackConditionNeverFires(t *testing.T) {
	g := &domain.Graph{
		States: []domain.StateRecord{
			{ID: "a", Variant: domain.VariantLooping, IsInitial: true},
			{ID: "b", Variant: domain.VariantLooping},
		},
		Transitions: []domain.TransitionRecord{
			{FromID: "a", ToID: "b", Conditions: []domain.ConditionRecord{{Kind: "vector"}}},
		},
	}
	c := runtime.NewController(nil)
	_, err := compiler.New(g).Build(c)
	require.NoError(t, err)
	require.NoError(t, c.Start())

	for i := 0; i < 10; i++ {
		c.Tick(0.1)
	}
	assert.Equal(t, "a", c.CurrentStateID())
}

func TestBuild_ReplacesPreviousGraph(t *testing.T) {
	c := runtime.NewController(nil)
	_, err := compiler.New(locomotion()).Build(c)
	require.NoError(t, err)
	require.NoError(t, c.Start())
	c.SetParameter("Custom", 7)

	other := &domain.Graph{States: []domain.StateRecord{{ID: "only", Variant: domain.VariantLooping}}}
	_, err = compiler.New(other).Build(c)
	require.NoError(t, err)

	assert.False(t, c.Started())
	assert.Equal(t, []string{"only"}, c.States())
	assert.Equal(t, "only", c.InitialStateID())
	assert.Equal(t, 7, params.Get[int](c.Store(), "Custom"))
}

func TestBuild_EndToEnd(t *testing.T) {
	anim := timeline.New([]timeline.Clip{
		{Name: "idle", Frames: 4, FPS: 10, Loop: true},
		{Name: "run", Frames: 6, FPS: 10, Loop: true},
		{Name: "attack", Frames: 3, FPS: 10},
	})
	c := runtime.NewController(anim)
	_, err := compiler.New(locomotion()).Build(c)
	require.NoError(t, err)
	require.NoError(t, c.Start())

	c.SetParameter("IsMoving", true)
	c.Tick(0.016)
	assert.Equal(t, "run", c.CurrentStateID())
	assert.Equal(t, "run", anim.CurrentAnimationName())
	assert.True(t, anim.Looping())

	require.True(t, c.ForceTransition("attack"))
	assert.False(t, anim.Looping())
	anim.Advance(0.5)
	c.Tick(0.016)
	assert.Equal(t, "idle", c.CurrentStateID())
}

func TestBuild_EpsilonOption(t *testing.T) {
	g := &domain.Graph{
		States: []domain.StateRecord{
			{ID: "a", Variant: domain.VariantLooping, IsInitial: true},
			{ID: "b", Variant: domain.VariantLooping},
		},
		Transitions: []domain.TransitionRecord{
			{FromID: "a", ToID: "b", Conditions: []domain.ConditionRecord{
				{Kind: domain.OperandFloat, Op: domain.OpEqual, Parameter: "Speed", Value: 1.0},
			}},
		},
	}
	c := runtime.NewController(nil)
	_, err := compiler.New(g, compiler.WithEpsilon(0.1)).Build(c)
	require.NoError(t, err)
	require.NoError(t, c.Start())

	c.SetParameter("Speed", 1.05)
	c.Tick(0.016)
	assert.Equal(t, "b", c.CurrentStateID())
}

func TestBuild_NegativeLeafEpsilonTakesGraphDefault(t *testing.T) {
	g := &domain.Graph{
		States: []domain.StateRecord{
			{ID: "a", Variant: domain.VariantLooping, IsInitial: true},
			{ID: "b", Variant: domain.VariantLooping},
		},
		Transitions: []domain.TransitionRecord{
			{FromID: "a", ToID: "b", Conditions: []domain.ConditionRecord{
				{Kind: domain.OperandFloat, Op: domain.OpEqual, Parameter: "Speed", Value: 1.0, Epsilon: -1},
			}},
		},
	}
	c := runtime.NewController(nil)
	_, err := compiler.New(g, compiler.WithEpsilon(0.1)).Build(c)
	require.NoError(t, err)
	require.NoError(t, c.Start())

	c.SetParameter("Speed", 1.05)
	c.Tick(0.016)
	assert.Equal(t, "b", c.CurrentStateID())
}

func TestBuild_CustomStateFactory(t *testing.T) {
	g := &domain.Graph{States: []domain.StateRecord{{ID: "spin", Variant: "Spin", AnimationName: "spin"}}}
	fg := compiler.New(g, compiler.WithStateFactory("Spin", func(rec domain.StateRecord) runtime.State {
		return runtime.NewLoopingState(rec.ID, rec.AnimationName)
	}))
	c := runtime.NewController(nil)
	diags, err := fg.Build(c)
	require.NoError(t, err)
	assert.Equal(t, []domain.DiagnosticCode{domain.DiagNoInitial}, codes(diags))

	s, _ := c.State("spin")
	assert.Equal(t, domain.VariantLooping, s.Variant())
}
