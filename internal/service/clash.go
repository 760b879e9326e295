package service

import (
	"time"

	"github.com/metinatakli/cinema-ticket-service/internal/domain"
)

// BreakDuration is the mandatory turnaround gap after a screening ends
// before the room can host another one.
const BreakDuration = 10 * time.Minute

const (
	MsgOverlappingScreening = "There is an overlapping screening"
	MsgBreakPeriodClash     = "This would start in the break period after another screening in this room"
)

// ClashDetector decides whether a candidate time slot conflicts with
// screenings already scheduled in a room. It holds no state and
// performs no I/O; callers supply the existing screenings.
//
// Every scheduled screening blocks off [start, end+BreakDuration). The
// candidate's own end carries no break on its side: the break belongs
// to the screening that is already on the schedule.
type ClashDetector struct{}

// Check compares the candidate interval [candidateStart, candidateEnd)
// against one existing screening. It returns nil when the slots are
// compatible and a *domain.ClashError otherwise.
func (ClashDetector) Check(candidateStart, candidateEnd time.Time, existing domain.Screening) error {
	existingEnd := existing.EndAt()
	breakEnd := existingEnd.Add(BreakDuration)

	if !candidateEnd.After(existing.StartAt) {
		// Finishes before the reserved slot begins. Touching endpoints
		// are allowed.
		return nil
	}

	if !candidateStart.Before(breakEnd) {
		// Starts after the reserved slot and its break fully elapse.
		return nil
	}

	if !candidateStart.Before(existingEnd) {
		return &domain.ClashError{Message: MsgBreakPeriodClash}
	}

	return &domain.ClashError{Message: MsgOverlappingScreening}
}

// CheckAll verifies a candidate of the given duration starting at start
// against every existing screening. The first conflict found is
// returned; a candidate is schedulable only if it clashes with none.
func (d ClashDetector) CheckAll(duration int, start time.Time, existing []domain.Screening) error {
	end := start.Add(time.Duration(duration) * time.Minute)

	for _, screening := range existing {
		if err := d.Check(start, end, screening); err != nil {
			return err
		}
	}

	return nil
}
