package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Blocking reports whether an appointment in this state occupies its slot.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// CanTransition reports whether from -> to is an edge of the lifecycle graph.
// approved -> approved is the reschedule edge, which only moves date and time.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusApproved || to == StatusCompleted
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Decisions
// ===============================

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// ===============================
// Reschedule Request Status
// ===============================

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	return s == RequestPending || s == RequestApproved || s == RequestRejected
}
