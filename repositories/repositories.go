package repositories

import (
	"github.com/blogem/webtemplate/sqlmap"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Log LogRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(client *sqlmap.Client) *Repositories {
	return &Repositories{
		Log: NewLogRepository(client),
	}
}
