package spin

// Rejection reason labels for the spins_rejected_total metric.
const (
	RejectReasonPaused = "paused"
	RejectReasonQuota  = "quota"
	RejectReasonCharge = "charge"
)
