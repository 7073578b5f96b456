package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"merch-shop/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Account Repo ---

type inMemoryAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
}

func newInMemoryAccountRepo() *inMemoryAccountRepo {
	return &inMemoryAccountRepo{accounts: make(map[uuid.UUID]*domain.Account)}
}

func (r *inMemoryAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Username == account.Username {
			return domain.ErrUsernameTaken
		}
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *inMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// AdjustBalance mirrors the conditional update of the postgres repo: the
// check and the write happen under one lock, so the balance can never go
// negative even under concurrent transfers. The applied delta is journaled
// on the transaction so Rollback restores the previous balance.
func (r *inMemoryAccountRepo) AdjustBalance(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[accountID]
	if !ok {
		return 0, domain.ErrInsufficientBalance
	}
	if a.Balance+delta < 0 {
		return 0, domain.ErrInsufficientBalance
	}
	a.Balance += delta
	if mt, ok := tx.(*memTx); ok {
		mt.onRollback(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if acc, ok := r.accounts[accountID]; ok {
				acc.Balance -= delta
			}
		})
	}
	return a.Balance, nil
}

// --- In-Memory Ledger Repo ---

type inMemoryLedgerRepo struct {
	mu        sync.RWMutex
	transfers []*domain.Transfer
	accounts  *inMemoryAccountRepo
}

func newInMemoryLedgerRepo(accounts *inMemoryAccountRepo) *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{accounts: accounts}
}

func (r *inMemoryLedgerRepo) Record(ctx context.Context, tx pgx.Tx, transfer *domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *transfer
	r.transfers = append(r.transfers, &cp)
	if mt, ok := tx.(*memTx); ok {
		id := transfer.ID
		mt.onRollback(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, rec := range r.transfers {
				if rec.ID == id {
					r.transfers = append(r.transfers[:i], r.transfers[i+1:]...)
					break
				}
			}
		})
	}
	return nil
}

func (r *inMemoryLedgerRepo) HistoryFor(ctx context.Context, accountID uuid.UUID) (*domain.CoinHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history := &domain.CoinHistory{
		Received: []domain.HistoryEntry{},
		Sent:     []domain.HistoryEntry{},
	}
	for _, t := range r.transfers {
		switch accountID {
		case t.ToAccountID:
			history.Received = append(history.Received, domain.HistoryEntry{
				Counterparty: r.usernameOf(ctx, t.FromAccountID),
				Amount:       t.Amount,
			})
		case t.FromAccountID:
			history.Sent = append(history.Sent, domain.HistoryEntry{
				Counterparty: r.usernameOf(ctx, t.ToAccountID),
				Amount:       t.Amount,
			})
		}
	}
	return history, nil
}

func (r *inMemoryLedgerRepo) usernameOf(ctx context.Context, id uuid.UUID) string {
	a, _ := r.accounts.GetByID(ctx, id)
	if a == nil {
		return ""
	}
	return a.Username
}

// --- In-Memory Catalog Repo ---

type inMemoryCatalogRepo struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
}

func newInMemoryCatalogRepo() *inMemoryCatalogRepo {
	return &inMemoryCatalogRepo{items: make(map[string]*domain.Item)}
}

func (r *inMemoryCatalogRepo) FindItemByName(ctx context.Context, name string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[name]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *inMemoryCatalogRepo) ListItems(ctx context.Context) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Item, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, *item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *inMemoryCatalogRepo) Seed(ctx context.Context, items []domain.SeedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, seed := range items {
		if _, ok := r.items[seed.Name]; ok {
			continue
		}
		r.items[seed.Name] = &domain.Item{ID: uuid.New(), Name: seed.Name, Price: seed.Price}
	}
	return nil
}

func (r *inMemoryCatalogRepo) itemNameByID(id uuid.UUID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.ID == id {
			return item.Name
		}
	}
	return ""
}

// --- In-Memory Inventory Repo ---

type inMemoryInventoryRepo struct {
	mu      sync.RWMutex
	entries []*domain.InventoryEntry
	catalog *inMemoryCatalogRepo
}

func newInMemoryInventoryRepo(catalog *inMemoryCatalogRepo) *inMemoryInventoryRepo {
	return &inMemoryInventoryRepo{catalog: catalog}
}

func (r *inMemoryInventoryRepo) Add(ctx context.Context, tx pgx.Tx, entry *domain.InventoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	if mt, ok := tx.(*memTx); ok {
		id := entry.ID
		mt.onRollback(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, e := range r.entries {
				if e.ID == id {
					r.entries = append(r.entries[:i], r.entries[i+1:]...)
					break
				}
			}
		})
	}
	return nil
}

func (r *inMemoryInventoryRepo) OwnedBy(ctx context.Context, accountID uuid.UUID) ([]domain.OwnedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64)
	for _, e := range r.entries {
		if e.AccountID != accountID {
			continue
		}
		name := r.catalog.itemNameByID(e.ItemID)
		if name == "" {
			return nil, fmt.Errorf("inventory entry references unknown item %s", e.ItemID)
		}
		counts[name]++
	}

	owned := make([]domain.OwnedItem, 0, len(counts))
	for name, qty := range counts {
		owned = append(owned, domain.OwnedItem{Name: name, Quantity: qty})
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Name < owned[j].Name })
	return owned, nil
}

// --- In-Memory Transactor ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

// memTx journals the effects the in-memory repos apply through it and
// undoes them in reverse order on Rollback, so a failure between the
// debit and the ledger/inventory write leaves no partial state — the
// same contract a real database transaction gives the services.
type memTx struct {
	mu   sync.Mutex
	undo []func()
	done bool
}

// onRollback registers a compensation for one applied effect.
func (t *memTx) onRollback(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undo = append(t.undo, fn)
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *memTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undo = nil
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
	return nil
}

func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *memTx) Conn() *pgx.Conn { return nil }
