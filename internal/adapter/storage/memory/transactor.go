package memory

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Transactor satisfies ports.DBTransactor for the in-memory driver.
// There is nothing to roll back, but the handle is not a pure no-op:
// repos register row locks on it and Commit/Rollback release them, so
// FOR-UPDATE reads hold until the unit of work ends just as they do
// against postgres.
type Transactor struct{}

// NewTransactor creates a transactor producing lock-holding handles.
func NewTransactor() *Transactor { return &Transactor{} }

// Begin returns a fresh transaction handle.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is the in-memory pgx.Tx. Statements are no-ops; the handle
// only carries the row locks acquired during the unit of work.
type noopTx struct {
	mu       sync.Mutex
	releases []func()
}

// onRelease registers a lock release to run when the tx ends.
func (t *noopTx) onRelease(fn func()) {
	t.mu.Lock()
	t.releases = append(t.releases, fn)
	t.mu.Unlock()
}

// release runs registered releases in reverse acquisition order.
// Commit and the deferred Rollback both funnel here; the second call
// sees an empty list.
func (t *noopTx) release() {
	t.mu.Lock()
	fns := t.releases
	t.releases = nil
	t.mu.Unlock()
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { t.release(); return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { t.release(); return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }

// rowLocks is a lazily populated set of per-key mutexes shared by
// repos that offer FOR-UPDATE reads.
type rowLocks struct {
	locks sync.Map
}

// acquire locks the key's mutex and parks the release on the tx, so
// the row stays held until the tx commits or rolls back. Tx handles
// from other drivers (as seen when repo methods are driven directly in
// tests) skip the lock.
func (r *rowLocks) acquire(tx pgx.Tx, key any) {
	holder, ok := tx.(*noopTx)
	if !ok {
		return
	}
	l, _ := r.locks.LoadOrStore(key, &sync.Mutex{})
	mu := l.(*sync.Mutex)
	mu.Lock()
	holder.onRelease(mu.Unlock)
}
