package repositories

// Repositories holds all the repository instances
type Repositories struct {
	SessionRepository *SessionRepository
}

// NewRepositories initializes all repositories
func NewRepositories() *Repositories {
	return &Repositories{
		SessionRepository: NewSessionRepository(),
	}
}
