package termination

import "time"

// Status は退職申請の状態を表します。
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Initiator は退職申請の起案者区分を表します。
type Initiator string

const (
	InitiatorEmployee Initiator = "employee"
	InitiatorHR       Initiator = "hr"
)

// Reason は退職理由を表します。
type Reason string

const (
	ReasonResignation   Reason = "resignation"
	ReasonRetirement    Reason = "retirement"
	ReasonEndOfContract Reason = "end_of_contract"
	ReasonDismissal     Reason = "dismissal"
	ReasonRedundancy    Reason = "redundancy"
)

// Request は退職申請エンティティです。
type Request struct {
	ID               string
	EmployeeID       string
	Initiator        Initiator
	Reason           Reason
	TerminationDate  time.Time
	EmployeeComments string
	Status           Status
	DecidedBy        string
	DecisionComments string
	DecidedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Decision は退職申請に対する裁定を表します。
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)
