package service

import "time"

// SetClock overrides the time source used for overdue calculations
func (s *TaskService) SetClock(now func() time.Time) {
	s.now = now
}
