package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories aggregates all repository instances
type Repositories struct {
	Catalog    *CatalogRepository
	Instructor *InstructorRepository
	Eval       *EvalRepository
	Subject    *SubjectRepository
	Offering   *OfferingRepository
}

// NewRepositories creates all repositories over one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Catalog:    NewCatalogRepository(db),
		Instructor: NewInstructorRepository(db),
		Eval:       NewEvalRepository(db),
		Subject:    NewSubjectRepository(db),
		Offering:   NewOfferingRepository(db),
	}
}
