package businessflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardAdvancesThroughAllSteps(t *testing.T) {
	w := NewWizardState()
	w.Title = "Spring Sale"
	w.Content = "Everything half price"
	w.Platforms = []string{"email"}

	require.NoError(t, w.Next())
	assert.Equal(t, StepPlatforms, w.Step)
	require.NoError(t, w.Next())
	assert.Equal(t, StepTarget, w.Step)
	require.NoError(t, w.Next())
	assert.Equal(t, StepSchedule, w.Step)

	assert.True(t, w.CanFinish())
	assert.ErrorIs(t, w.Next(), ErrNoFurtherStep)
}

func TestWizardBlocksIncompleteStep(t *testing.T) {
	w := NewWizardState()
	w.Title = "  "
	w.Content = "body"

	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	assert.Equal(t, StepDetails, w.Step)

	w.Title = "Spring Sale"
	require.NoError(t, w.Next())

	// no platform picked yet
	assert.ErrorIs(t, w.Next(), ErrStepIncomplete)
	assert.Equal(t, StepPlatforms, w.Step)
}

func TestWizardJumpBackwardOnly(t *testing.T) {
	w := NewWizardState()
	w.Title = "Spring Sale"
	w.Content = "body"
	w.Platforms = []string{"whatsapp"}

	require.NoError(t, w.Next())
	require.NoError(t, w.Next())

	assert.ErrorIs(t, w.JumpTo(StepSchedule), ErrForwardJump)
	assert.ErrorIs(t, w.JumpTo(w.Step), ErrForwardJump)

	require.NoError(t, w.JumpTo(StepDetails))
	assert.Equal(t, StepDetails, w.Step)
}

func TestWizardCanFinishRequiresEarlierSteps(t *testing.T) {
	w := &WizardState{Step: StepSchedule, Title: "t", Content: "c"}
	assert.False(t, w.CanFinish(), "missing platforms should block finishing")

	w.Platforms = []string{"facebook"}
	assert.True(t, w.CanFinish())
}
