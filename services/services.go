package services

import (
	"github.com/blogem/webtemplate/repositories"
)

// Settings carries the configuration the services depend on
type Settings struct {
	LogRetentionMonths int
	LogonPasswordHash  string
}

// Services holds all service instances
type Services struct {
	Log     LogService
	Session SessionService
	Dialog  DialogService
	Logon   LogonService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, settings Settings) *Services {
	logService := NewLogService(repos.Log, settings.LogRetentionMonths)
	sessionService := NewSessionService()
	dialogService := NewDialogService(logService)

	return &Services{
		Log:     logService,
		Session: sessionService,
		Dialog:  dialogService,
		Logon:   NewLogonService(sessionService, dialogService, logService, settings.LogonPasswordHash),
	}
}
