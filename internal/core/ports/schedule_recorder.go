package ports

import (
	"time"

	"fleetdelivery/internal/core/domain/services"
)

// ScheduleRecorder observes finished scheduling runs. Source names what
// triggered the run, such as "estimate" or "batch".
type ScheduleRecorder interface {
	RecordSchedule(source string, schedule services.Schedule, elapsed time.Duration)
}
