package shared

// Task type names routed through the maintenance queue. Kept here so the
// scheduler and the worker handlers agree without importing each other.
const (
	TypeSweepExpiredSessions = "session:sweep_expired"
	TypeReportPendingQueue   = "submission:report_pending"

	QueueMaintenance = "maintenance"
)

type SweepExpiredSessionsPayload struct{}

type ReportPendingQueuePayload struct{}
