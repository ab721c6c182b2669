package domain

import "time"

// Frequency of a standing instruction.
type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}

	return false
}

// Next returns the execution time following from.
func (f Frequency) Next(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0)
	default:
		return from
	}
}

// ScheduleDefinition is a standing instruction that yields TransferRecords
// over its lifetime, one per execution. Execution bookkeeping is mutated only
// by the scheduler; cancel/update come from the scheduling API.
type ScheduleDefinition struct {
	ID              string
	Template        TransferIntent
	Frequency       Frequency
	NextExecutionAt time.Time
	ExecutionCount  int
	MaxExecutions   int // 0 means unbounded
	EndDate         *time.Time
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Due reports whether the schedule should execute at now.
func (s *ScheduleDefinition) Due(now time.Time) bool {
	return s.Active && !s.NextExecutionAt.After(now)
}

// RecordExecution advances the schedule after an execution attempt. A failed
// execution does not deactivate a recurring schedule; a one-off is single-shot
// regardless of outcome. Deactivation also happens when max executions is
// reached or the next slot falls past the end date.
func (s *ScheduleDefinition) RecordExecution(now time.Time) {
	s.ExecutionCount++
	s.UpdatedAt = now

	if s.Frequency == FrequencyOnce {
		s.Active = false
		return
	}

	s.NextExecutionAt = s.Frequency.Next(s.NextExecutionAt)

	if s.MaxExecutions > 0 && s.ExecutionCount >= s.MaxExecutions {
		s.Active = false
	}

	if s.EndDate != nil && s.NextExecutionAt.After(*s.EndDate) {
		s.Active = false
	}
}

// Deactivate soft-deletes the schedule.
func (s *ScheduleDefinition) Deactivate(now time.Time) {
	s.Active = false
	s.UpdatedAt = now
}
