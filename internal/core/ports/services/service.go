package services

// ServiceContainer aggregates all service facades for dependency injection
// into the route registration.
type ServiceContainer struct {
	Account       AccountSvcFacade
	ChangeRequest ChangeRequestSvcFacade
	Payment       PaymentSvcFacade
	Feedback      FeedbackSvcFacade
	Task          TaskSvcFacade
	Transition    TransitionSvcFacade
	Notification  NotificationSvcFacade
}
