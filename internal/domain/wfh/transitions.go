package wfh

// Action is a lifecycle operation applied to a single entry.
type Action string

const (
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionCancel      Action = "cancel"
	ActionRevoke      Action = "revoke"
	ActionWithdraw    Action = "withdraw"    // manager-initiated withdrawal of an approved entry
	ActionAcknowledge Action = "acknowledge" // manager confirms a pending withdrawal
	ActionAutoReject  Action = "auto_reject" // system, no actor
)

// transitions is the one canonical table of legal per-entry transitions.
// Anything absent here is an illegal transition from that status.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionApprove:    StatusApproved,
		ActionReject:     StatusRejected,
		ActionCancel:     StatusCancelled,
		ActionAutoReject: StatusAutoRejected,
	},
	StatusApproved: {
		ActionRevoke:   StatusWithdrawn,
		ActionWithdraw: StatusPendingWithdrawal,
	},
	StatusPendingWithdrawal: {
		ActionAcknowledge: StatusWithdrawn,
	},
}

// targets maps each action to the status it produces, independent of the
// originating status. Used for idempotent retry detection.
var targets = map[Action]Status{
	ActionApprove:     StatusApproved,
	ActionReject:      StatusRejected,
	ActionCancel:      StatusCancelled,
	ActionRevoke:      StatusWithdrawn,
	ActionWithdraw:    StatusPendingWithdrawal,
	ActionAcknowledge: StatusWithdrawn,
	ActionAutoReject:  StatusAutoRejected,
}

// NextStatus returns the status act produces from the given status, and
// whether the transition is legal at all.
func NextStatus(from Status, act Action) (Status, bool) {
	to, ok := transitions[from][act]
	return to, ok
}

// Target returns the status act produces when it applies.
func (a Action) Target() Status {
	return targets[a]
}

// RequiresReason reports whether the action must carry an action reason.
func (a Action) RequiresReason() bool {
	return a == ActionReject || a == ActionWithdraw
}

// notificationStatuses maps each action to the notification flag it leaves
// on the request for the downstream feed.
var notificationStatuses = map[Action]NotificationStatus{
	ActionApprove:     NotificationEdited,
	ActionReject:      NotificationEdited,
	ActionCancel:      NotificationCancelled,
	ActionRevoke:      NotificationSelfWithdrawn,
	ActionWithdraw:    NotificationWithdrawn,
	ActionAcknowledge: NotificationAcknowledged,
	ActionAutoReject:  NotificationAutoRejected,
}

// NotificationStatusFor returns the notification flag an action sets.
func NotificationStatusFor(act Action) NotificationStatus {
	return notificationStatuses[act]
}
