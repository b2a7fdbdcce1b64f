package model

// TaskState enumerates the low-level physical activities of a drone.
type TaskState int

const (
	TaskIdle TaskState = iota
	TaskTraveling
	TaskLoading
	TaskUnloading
)

func (s TaskState) String() string {
	switch s {
	case TaskTraveling:
		return "traveling"
	case TaskLoading:
		return "loading"
	case TaskUnloading:
		return "unloading"
	default:
		return "idle"
	}
}

// Task is the drone's current physical activity. A task is pending while
// now < Start+Duration and complete once now >= Start+Duration; its effect
// is applied lazily on the next resolution at or after that tick.
type Task struct {
	State    TaskState
	Start    int
	Duration int
	Dest     Location
	Products *Order
}

func (t *Task) setIdle() {
	t.State = TaskIdle
	t.Start = -1
	t.Duration = -1
	t.Products = NewOrder()
}

func (t *Task) setTravel(start, duration int, dest Location) {
	t.State = TaskTraveling
	t.Start = start
	t.Duration = duration
	t.Dest = dest
	t.Products = NewOrder()
}

// done reports whether the task has reached its completion tick.
func (t *Task) done(now int) bool {
	return t.State != TaskIdle && now >= t.Start+t.Duration
}
