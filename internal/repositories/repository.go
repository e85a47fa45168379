package repositories

import "context"

// Repository aggregates all repository interfaces.
type Repository interface {
	// Catalog domain (read-only for this service)
	Subject() SubjectRepository
	Question() QuestionRepository

	// Practice exam domain
	Distribution() DistributionRepository
	Exam() ExamRepository
	Setting() SettingRepository
	Result() ResultRepository

	// User domain (identity provider backed, read-only)
	User() UserRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
