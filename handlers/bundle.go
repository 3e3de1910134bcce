package handlers

// HandlerBundle groups the handler instances routes are registered with.
type HandlerBundle struct {
	Notification *NotificationHandler
	Session      *SessionHandler
	Intake       *IntakeHandler
	Scan         *ScanHandler
}
