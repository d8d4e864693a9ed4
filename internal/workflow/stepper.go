// Package workflow holds the order-progress stepper, the seller delivery
// state machine and pre-submit checks for buyer actions.
package workflow

import "marketdash/internal/domain"

// Stages of a shipment, in order.
var Stages = []string{"Placed", "Confirmed", "Packed", "In Transit", "Out for Delivery", "Delivered"}

// StageState is how a stage renders relative to the current step.
type StageState string

const (
	StageDone     StageState = "done"
	StageCurrent  StageState = "current"
	StageUpcoming StageState = "upcoming"
)

// Stage is one rendered step.
type Stage struct {
	Index int        `json:"index"`
	Label string     `json:"label"`
	State StageState `json:"state"`
}

// Progress is the rendered stepper for one shipment.
type Progress struct {
	ShipmentID  string  `json:"shipment_id"`
	Reference   string  `json:"reference,omitempty"`
	CurrentStep int     `json:"current_step"`
	Complete    bool    `json:"complete"`
	Stages      []Stage `json:"stages"`
}

// ClampStep forces step into [0, len(Stages)-1].
func ClampStep(step int) int {
	if step < 0 {
		return 0
	}
	if last := len(Stages) - 1; step > last {
		return last
	}
	return step
}

// Render draws the stepper for a shipment record. Out-of-range steps are clamped.
func Render(rec domain.Record) Progress {
	current := ClampStep(rec.CurrentStep)
	stages := make([]Stage, len(Stages))
	for i, label := range Stages {
		state := StageUpcoming
		switch {
		case i < current:
			state = StageDone
		case i == current:
			state = StageCurrent
		}
		stages[i] = Stage{Index: i, Label: label, State: state}
	}
	return Progress{
		ShipmentID:  rec.ID,
		Reference:   rec.Reference,
		CurrentStep: current,
		Complete:    current == len(Stages)-1,
		Stages:      stages,
	}
}
