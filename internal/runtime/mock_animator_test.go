package runtime_test

import (
	"github.com/aretw0/animflow/pkg/ports"
	"github.com/stretchr/testify/mock"
)

// MockAnimator records every AnimatorAdapter call.
type MockAnimator struct {
	mock.Mock
}

func (m *MockAnimator) Play(animation string)     { m.Called(animation) }
func (m *MockAnimator) SetLooping(loop bool)      { m.Called(loop) }
func (m *MockAnimator) Pause()                    { m.Called() }
func (m *MockAnimator) Resume()                   { m.Called() }
func (m *MockAnimator) SetCurrentFrame(frame int) { m.Called(frame) }

func (m *MockAnimator) RegisterCompletionCallback(fn ports.CompletionFunc) ports.CallbackID {
	args := m.Called(fn)
	return args.Get(0).(ports.CallbackID)
}

func (m *MockAnimator) UnregisterCompletionCallback(id ports.CallbackID) { m.Called(id) }

func (m *MockAnimator) IsAnimationComplete() bool {
	return m.Called().Bool(0)
}

func (m *MockAnimator) CurrentAnimationName() string {
	return m.Called().String(0)
}

func (m *MockAnimator) calls() []string {
	var names []string
	for _, c := range m.Calls {
		names = append(names, c.Method)
	}
	return names
}
