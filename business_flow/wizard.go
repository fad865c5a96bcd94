package businessflow

import (
	"strings"
)

// WizardStep represents one step of the campaign composer
type WizardStep int

const (
	StepDetails WizardStep = iota
	StepPlatforms
	StepTarget
	StepSchedule
)

func (s WizardStep) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepPlatforms:
		return "platforms"
	case StepTarget:
		return "target"
	case StepSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// WizardState tracks the composer position over the campaign form. Steps
// advance linearly; earlier steps are always reachable, later ones only
// through Next once the current step is complete.
type WizardState struct {
	Step      WizardStep
	Title     string
	Content   string
	Platforms []string
}

// NewWizardState creates a wizard positioned at the first step
func NewWizardState() *WizardState {
	return &WizardState{Step: StepDetails}
}

// StepComplete reports whether the given step has everything it needs
func (w *WizardState) StepComplete(step WizardStep) bool {
	switch step {
	case StepDetails:
		return strings.TrimSpace(w.Title) != "" && strings.TrimSpace(w.Content) != ""
	case StepPlatforms:
		return len(w.Platforms) > 0
	case StepTarget, StepSchedule:
		return true
	default:
		return false
	}
}

// Next advances to the following step, gated on current-step completeness
func (w *WizardState) Next() error {
	if w.Step >= StepSchedule {
		return ErrNoFurtherStep
	}
	if !w.StepComplete(w.Step) {
		return ErrStepIncomplete
	}
	w.Step++
	return nil
}

// JumpTo moves directly to an earlier step. Jumping forward or to the
// current step is rejected; only Next moves the wizard ahead.
func (w *WizardState) JumpTo(step WizardStep) error {
	if step >= w.Step {
		return ErrForwardJump
	}
	w.Step = step
	return nil
}

// CanFinish reports whether the wizard reached the final step with all
// preceding steps complete
func (w *WizardState) CanFinish() bool {
	if w.Step != StepSchedule {
		return false
	}
	for s := StepDetails; s < StepSchedule; s++ {
		if !w.StepComplete(s) {
			return false
		}
	}
	return true
}
