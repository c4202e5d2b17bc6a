package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/fintrack/fintrack-backend/internal/domain"
	"github.com/fintrack/fintrack-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32
	// LastPage records the pagination of the most recent List call
	LastPage domain.Pagination
	mu       sync.Mutex

	CreateFn  func(data *domain.TransactionData) (*domain.Transaction, error)
	GetByIDFn func(id int32) (*domain.Transaction, error)
	ListFn    func(filters *domain.TransactionFilters, page domain.Pagination) ([]*domain.Transaction, error)
	ListAllFn func(filters *domain.TransactionFilters) ([]*domain.Transaction, error)
	UpdateFn  func(id int32, data *domain.TransactionData) (*domain.Transaction, error)
	DeleteFn  func(id int32) (int32, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
	}
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(ctx context.Context, data *domain.TransactionData) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	t := &domain.Transaction{ID: m.NextID, CreatedAt: now, UpdatedAt: now}
	applyTransactionData(t, data)
	m.NextID++
	m.Transactions[t.ID] = t
	return t, nil
}

// GetByID retrieves a transaction by its ID
func (m *MockTransactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return t, nil
}

// List returns one page of matching transactions, newest first
func (m *MockTransactionRepository) List(ctx context.Context, filters *domain.TransactionFilters, page domain.Pagination) ([]*domain.Transaction, error) {
	if m.ListFn != nil {
		return m.ListFn(filters, page)
	}
	all, _ := m.ListAll(ctx, filters)

	m.mu.Lock()
	m.LastPage = page
	m.mu.Unlock()

	start := int(page.Offset)
	if start >= len(all) {
		return []*domain.Transaction{}, nil
	}
	end := start + int(page.Limit)
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

// ListAll returns every matching transaction, newest first
func (m *MockTransactionRepository) ListAll(ctx context.Context, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(filters)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []*domain.Transaction{}
	for _, t := range m.Transactions {
		if filters.Matches(t) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return result, nil
}

// Update replaces every mutable field of a transaction
func (m *MockTransactionRepository) Update(ctx context.Context, id int32, data *domain.TransactionData) (*domain.Transaction, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(id, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	applyTransactionData(t, data)
	t.UpdatedAt = time.Now().UTC()
	return t, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(ctx context.Context, id int32) (int32, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Transactions[id]; !ok {
		return 0, domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return id, nil
}

// AddTransaction adds a transaction directly to the mock storage (for test setup)
func (m *MockTransactionRepository) AddTransaction(t *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.ID == 0 {
		t.ID = m.NextID
	}
	if t.ID >= m.NextID {
		m.NextID = t.ID + 1
	}
	m.Transactions[t.ID] = t
}

func applyTransactionData(t *domain.Transaction, data *domain.TransactionData) {
	t.Type = data.Type
	t.Description = data.Description
	t.Amount = data.Amount
	t.Date = data.Date
	t.Category = data.Category
	t.PaymentMethod = data.PaymentMethod
	t.Notes = data.Notes
}

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	Goals  map[int32]*domain.Goal
	NextID int32
	mu     sync.Mutex

	CreateFn      func(data *domain.CreateGoalData) (*domain.Goal, error)
	GetAllFn      func() ([]*domain.Goal, error)
	AddProgressFn func(id int32, amount decimal.Decimal) (*domain.Goal, error)
	UpdateFn      func(id int32, data *domain.UpdateGoalData) (*domain.Goal, error)
	DeleteFn      func(id int32) (int32, error)
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		Goals:  make(map[int32]*domain.Goal),
		NextID: 1,
	}
}

// Create stores a new active goal with nothing saved yet
func (m *MockGoalRepository) Create(ctx context.Context, data *domain.CreateGoalData) (*domain.Goal, error) {
	if m.CreateFn != nil {
		return m.CreateFn(data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	g := &domain.Goal{
		ID:            m.NextID,
		Title:         data.Title,
		Description:   data.Description,
		TargetAmount:  data.TargetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    data.TargetDate,
		Category:      data.Category,
		Status:        domain.GoalStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.NextID++
	m.Goals[g.ID] = g
	return g, nil
}

// GetAll returns every goal, newest first
func (m *MockGoalRepository) GetAll(ctx context.Context) ([]*domain.Goal, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn()
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	goals := make([]*domain.Goal, 0, len(m.Goals))
	for _, g := range m.Goals {
		goals = append(goals, g)
	}
	sort.Slice(goals, func(i, j int) bool {
		if !goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].CreatedAt.After(goals[j].CreatedAt)
		}
		return goals[i].ID > goals[j].ID
	})
	return goals, nil
}

// AddProgress adds amount and promotes the goal when it reaches its target
func (m *MockGoalRepository) AddProgress(ctx context.Context, id int32, amount decimal.Decimal) (*domain.Goal, error) {
	if m.AddProgressFn != nil {
		return m.AddProgressFn(id, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.Goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	if domain.StatusFor(g.CurrentAmount, g.TargetAmount) == domain.GoalStatusCompleted {
		g.Status = domain.GoalStatusCompleted
	}
	g.UpdatedAt = time.Now().UTC()
	return g, nil
}

// Update replaces the editable fields and recomputes status
func (m *MockGoalRepository) Update(ctx context.Context, id int32, data *domain.UpdateGoalData) (*domain.Goal, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(id, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.Goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	g.Title = data.Title
	g.TargetAmount = data.TargetAmount
	g.TargetDate = data.TargetDate
	g.CurrentAmount = data.CurrentAmount
	g.Status = domain.StatusFor(g.CurrentAmount, g.TargetAmount)
	g.UpdatedAt = time.Now().UTC()
	return g, nil
}

// Delete removes a goal
func (m *MockGoalRepository) Delete(ctx context.Context, id int32) (int32, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Goals[id]; !ok {
		return 0, domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return id, nil
}

// AddGoal adds a goal directly to the mock storage (for test setup)
func (m *MockGoalRepository) AddGoal(g *domain.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g.ID == 0 {
		g.ID = m.NextID
	}
	if g.ID >= m.NextID {
		m.NextID = g.ID + 1
	}
	m.Goals[g.ID] = g
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[string]*domain.Budget
	NextID  int32
	mu      sync.Mutex

	GetByMonthFn func(month, year int) ([]*domain.Budget, error)
	UpsertFn     func(data *domain.UpsertBudgetData) (*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[string]*domain.Budget),
		NextID:  1,
	}
}

func budgetKey(category string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", category, month, year)
}

// GetByMonth returns the month's budgets ordered by category
func (m *MockBudgetRepository) GetByMonth(ctx context.Context, month, year int) ([]*domain.Budget, error) {
	if m.GetByMonthFn != nil {
		return m.GetByMonthFn(month, year)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []*domain.Budget{}
	for _, b := range m.Budgets {
		if b.Month == month && b.Year == year {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Category < result[j].Category })
	return result, nil
}

// Upsert inserts or updates the monthly limit, keeping spent_amount on update
func (m *MockBudgetRepository) Upsert(ctx context.Context, data *domain.UpsertBudgetData) (*domain.Budget, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	key := budgetKey(data.Category, data.Month, data.Year)
	if b, ok := m.Budgets[key]; ok {
		b.MonthlyLimit = data.MonthlyLimit
		b.UpdatedAt = now
		return b, nil
	}
	b := &domain.Budget{
		ID:           m.NextID,
		Category:     data.Category,
		MonthlyLimit: data.MonthlyLimit,
		SpentAmount:  data.SpentAmount,
		Month:        data.Month,
		Year:         data.Year,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.NextID++
	m.Budgets[key] = b
	return b, nil
}

// AddBudget adds a budget directly to the mock storage (for test setup)
func (m *MockBudgetRepository) AddBudget(b *domain.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b.ID == 0 {
		b.ID = m.NextID
	}
	if b.ID >= m.NextID {
		m.NextID = b.ID + 1
	}
	m.Budgets[budgetKey(b.Category, b.Month, b.Year)] = b
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories  []*domain.Category
	GetGlobalFn func(categoryType *domain.CategoryType) ([]*domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

// GetGlobal returns unowned categories ordered by name
func (m *MockCategoryRepository) GetGlobal(ctx context.Context, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	if m.GetGlobalFn != nil {
		return m.GetGlobalFn(categoryType)
	}
	result := []*domain.Category{}
	for _, c := range m.Categories {
		if c.UserID != nil {
			continue
		}
		if categoryType != nil && c.Type != *categoryType {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// AddCategory adds a category directly to the mock storage (for test setup)
func (m *MockCategoryRepository) AddCategory(c *domain.Category) {
	if c.ID == 0 {
		c.ID = int32(len(m.Categories) + 1)
	}
	m.Categories = append(m.Categories, c)
}

// MockAnalyticsRepository is a mock implementation of domain.AnalyticsRepository.
// It returns the configured rows and records the window each call received.
type MockAnalyticsRepository struct {
	TypeSummaries     []*domain.TypeSummary
	CategorySummaries []*domain.CategorySummary
	Trends            []*domain.MonthlyTrend

	TypeSince     *time.Time
	CategorySince *time.Time
	TrendsSince   time.Time
	mu            sync.Mutex

	SummarizeByTypeFn     func(since *time.Time) ([]*domain.TypeSummary, error)
	SummarizeByCategoryFn func(since *time.Time) ([]*domain.CategorySummary, error)
	MonthlyTrendsFn       func(since time.Time) ([]*domain.MonthlyTrend, error)
}

// NewMockAnalyticsRepository creates a new MockAnalyticsRepository
func NewMockAnalyticsRepository() *MockAnalyticsRepository {
	return &MockAnalyticsRepository{}
}

// SummarizeByType returns TypeSummaries
func (m *MockAnalyticsRepository) SummarizeByType(ctx context.Context, since *time.Time) ([]*domain.TypeSummary, error) {
	m.mu.Lock()
	m.TypeSince = since
	m.mu.Unlock()
	if m.SummarizeByTypeFn != nil {
		return m.SummarizeByTypeFn(since)
	}
	return m.TypeSummaries, nil
}

// SummarizeByCategory returns CategorySummaries
func (m *MockAnalyticsRepository) SummarizeByCategory(ctx context.Context, since *time.Time) ([]*domain.CategorySummary, error) {
	m.mu.Lock()
	m.CategorySince = since
	m.mu.Unlock()
	if m.SummarizeByCategoryFn != nil {
		return m.SummarizeByCategoryFn(since)
	}
	return m.CategorySummaries, nil
}

// MonthlyTrends returns Trends
func (m *MockAnalyticsRepository) MonthlyTrends(ctx context.Context, since time.Time) ([]*domain.MonthlyTrend, error) {
	m.mu.Lock()
	m.TrendsSince = since
	m.mu.Unlock()
	if m.MonthlyTrendsFn != nil {
		return m.MonthlyTrendsFn(since)
	}
	return m.Trends, nil
}

// MockObjectStorage is an in-memory implementation of domain.ObjectStorage
type MockObjectStorage struct {
	Objects      map[string][]byte
	ContentTypes map[string]string
	mu           sync.Mutex

	UploadFn     func(key string, data io.Reader, contentType string, size int64) (string, error)
	PresignGetFn func(key string, expiry time.Duration) (string, error)
}

// NewMockObjectStorage creates a new MockObjectStorage
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{
		Objects:      make(map[string][]byte),
		ContentTypes: make(map[string]string),
	}
}

// Upload stores the object body in memory
func (m *MockObjectStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64) (string, error) {
	if m.UploadFn != nil {
		return m.UploadFn(key, data, contentType, size)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = buf.Bytes()
	m.ContentTypes[key] = contentType
	return key, nil
}

// PresignGet returns a fake URL embedding the key and expiry
func (m *MockObjectStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.PresignGetFn != nil {
		return m.PresignGetFn(key, expiry)
	}
	return fmt.Sprintf("https://storage.test/%s?expires=%d", key, int(expiry.Seconds())), nil
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	Events []websocket.Event
	mu     sync.Mutex
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the type of every recorded event in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.Type)
	}
	return types
}
