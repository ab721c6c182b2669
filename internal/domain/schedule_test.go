package domain

import (
	"testing"
	"time"
)

func TestFrequency_Next(t *testing.T) {
	from := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		freq Frequency
		want time.Time
	}{
		{"daily", FrequencyDaily, time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)},
		{"weekly", FrequencyWeekly, time.Date(2025, 2, 7, 9, 0, 0, 0, time.UTC)},
		{"monthly rolls over short month", FrequencyMonthly, time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)},
		{"once does not advance", FrequencyOnce, from},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.freq.Next(from); !got.Equal(tt.want) {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrequency_Valid(t *testing.T) {
	for _, f := range []Frequency{FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly} {
		if !f.Valid() {
			t.Errorf("expected %s to be valid", f)
		}
	}

	if Frequency("fortnightly").Valid() {
		t.Error("unknown frequency must be invalid")
	}
}

func TestScheduleDefinition_Due(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := &ScheduleDefinition{Active: true, NextExecutionAt: now.Add(-time.Minute)}
	if !s.Due(now) {
		t.Error("past execution time should be due")
	}

	s.NextExecutionAt = now
	if !s.Due(now) {
		t.Error("exact execution time should be due")
	}

	s.NextExecutionAt = now.Add(time.Minute)
	if s.Due(now) {
		t.Error("future execution time should not be due")
	}

	s.Active = false
	s.NextExecutionAt = now.Add(-time.Hour)
	if s.Due(now) {
		t.Error("inactive schedule is never due")
	}
}

func TestScheduleDefinition_RecordExecution(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("recurring schedule advances from the slot, not from now", func(t *testing.T) {
		s := &ScheduleDefinition{
			Frequency:       FrequencyDaily,
			NextExecutionAt: now.Add(-2 * time.Hour),
			Active:          true,
		}

		s.RecordExecution(now)

		want := now.Add(-2*time.Hour).AddDate(0, 0, 1)
		if !s.NextExecutionAt.Equal(want) {
			t.Errorf("NextExecutionAt = %v, want %v", s.NextExecutionAt, want)
		}
		if s.ExecutionCount != 1 {
			t.Errorf("ExecutionCount = %d, want 1", s.ExecutionCount)
		}
		if !s.Active {
			t.Error("recurring schedule must stay active")
		}
	})

	t.Run("one-off deactivates after single execution", func(t *testing.T) {
		s := &ScheduleDefinition{
			Frequency:       FrequencyOnce,
			NextExecutionAt: now,
			Active:          true,
		}

		s.RecordExecution(now)

		if s.Active {
			t.Error("one-off schedule must deactivate")
		}
		if s.ExecutionCount != 1 {
			t.Errorf("ExecutionCount = %d, want 1", s.ExecutionCount)
		}
	})

	t.Run("max executions reached deactivates", func(t *testing.T) {
		s := &ScheduleDefinition{
			Frequency:       FrequencyWeekly,
			NextExecutionAt: now,
			ExecutionCount:  2,
			MaxExecutions:   3,
			Active:          true,
		}

		s.RecordExecution(now)

		if s.Active {
			t.Error("schedule at max executions must deactivate")
		}
	})

	t.Run("next slot past end date deactivates", func(t *testing.T) {
		end := now.Add(24 * time.Hour)
		s := &ScheduleDefinition{
			Frequency:       FrequencyWeekly,
			NextExecutionAt: now,
			EndDate:         &end,
			Active:          true,
		}

		s.RecordExecution(now)

		if s.Active {
			t.Error("schedule past end date must deactivate")
		}
	})
}

func TestScheduleDefinition_Deactivate(t *testing.T) {
	now := time.Now().UTC()
	s := &ScheduleDefinition{Active: true}

	s.Deactivate(now)

	if s.Active {
		t.Error("expected schedule to be inactive")
	}
	if !s.UpdatedAt.Equal(now) {
		t.Error("expected UpdatedAt to advance")
	}
}
