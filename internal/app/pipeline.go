package service

import (
	"context"

	"github.com/okian/fifaclean/internal/domain/impute"
	"github.com/okian/fifaclean/internal/domain/model"
)

// State is a step of the cleaning run. A run moves through the states in
// declaration order with no branching and no retry.
type State int

// Pipeline states.
const (
	StateIdle State = iota
	StateLoad
	StateNormalizeDate
	StateDeriveAge
	StateImputeBirthDate
	StateImputePositions
	StateImputeWorkRate
	StateImputeValue
	StateImputeGlobalNumeric
	StateResetGoalkeeperFields
	StatePersist
	StatePersisted
)

var stateNames = [...]string{
	StateIdle:                  "idle",
	StateLoad:                  "load",
	StateNormalizeDate:         "normalize_date",
	StateDeriveAge:             "derive_age",
	StateImputeBirthDate:       "impute_birth_date",
	StateImputePositions:       "impute_positions",
	StateImputeWorkRate:        "impute_work_rate",
	StateImputeValue:           "impute_value",
	StateImputeGlobalNumeric:   "impute_global_numeric",
	StateResetGoalkeeperFields: "reset_goalkeeper_fields",
	StatePersist:               "persist",
	StatePersisted:             "persisted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// stageFunc transforms one table snapshot into the next.
type stageFunc func(ctx context.Context, t *model.Table) (*model.Table, impute.Result, error)

type stage struct {
	state State
	run   stageFunc
}

// stages lists the table transforms between Load and Persist, in order.
// Age is derived before birth dates are imputed, so rows whose birth date
// is only recovered by imputation keep an absent age until the global
// numeric stage fills it with the column mean.
func stages(im *impute.Imputer) []stage {
	return []stage{
		{StateNormalizeDate, im.NormalizeDates},
		{StateDeriveAge, im.DeriveAge},
		{StateImputeBirthDate, im.ImputeBirthDate},
		{StateImputePositions, im.ImputePositions},
		{StateImputeWorkRate, im.ImputeWorkRate},
		{StateImputeValue, im.ImputeValue},
		{StateImputeGlobalNumeric, im.ImputeGlobalNumeric},
		{StateResetGoalkeeperFields, im.ResetGoalkeeperFields},
	}
}
