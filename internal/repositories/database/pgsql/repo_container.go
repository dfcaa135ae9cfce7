package pgsql

import (
	"time"

	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	redisrepo "github.com/araliya-mfi/loan_origination_app/internal/repositories/database/redis"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

// NewRepositoryProvider wires every repository. Canonical records live in
// Postgres; draft snapshots live in Redis with a TTL.
func NewRepositoryProvider(dbPool *pgxpool.Pool, redisClient *goredis.Client, draftTTL time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		ProductRepo:  newPgxProductRepository(dbPool),
		CustomerRepo: newPgxCustomerRepository(dbPool),
		LoanRepo:     newPgxLoanRepository(dbPool),
		ApprovalRepo: newPgxApprovalRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
		DraftRepo:    redisrepo.NewRedisDraftRepository(redisClient, draftTTL),
	}
}
