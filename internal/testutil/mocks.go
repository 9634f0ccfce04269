package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
	"github.com/pratik-mahalle/proftrack/internal/domain/report"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	Writes      int
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

// Add stores u directly without counting a write
func (m *MockUserRepository) Add(u *user.User) *user.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(u)
	return u
}

func (m *MockUserRepository) insert(u *user.User) {
	if u.ID == 0 {
		u.ID = m.NextID
	}
	if u.ID >= m.NextID {
		m.NextID = u.ID + 1
	}
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = user.StatusInactive
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.EmailIndex[u.Email]; ok {
		return errors.DatabaseError("Failed to create user", nil)
	}
	m.Writes++
	m.insert(u)
	return nil
}

func (m *MockUserRepository) CreateIfAbsent(ctx context.Context, u *user.User) (*user.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return nil, false, m.CreateError
	}
	if existing, ok := m.EmailIndex[u.Email]; ok {
		return copyUser(existing), false, nil
	}
	m.Writes++
	m.insert(u)
	return copyUser(u), true, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return copyUser(u), nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return copyUser(u), nil
}

func (m *MockUserRepository) GetByCustomerRef(ctx context.Context, ref string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.Users {
		if u.PaymentCustomerRef != nil && *u.PaymentCustomerRef == ref {
			return copyUser(u), nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return m.UpdateError
	}
	stored, ok := m.Users[u.ID]
	if !ok {
		return errors.NotFound("User")
	}
	m.Writes++
	stored.DisplayName = u.DisplayName
	stored.Role = u.Role
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *MockUserRepository) UpsertSubscription(ctx context.Context, c user.SubscriptionChange) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	m.Writes++
	u, ok := m.EmailIndex[c.Email]
	if !ok {
		u = &user.User{Email: c.Email, CreatedAt: c.At}
		m.insert(u)
	}
	u.SubscriptionStatus = c.Status
	u.SubscriptionEndsAt = c.EndsAt
	if c.CustomerRef != nil {
		u.PaymentCustomerRef = c.CustomerRef
	}
	u.UpdatedAt = c.At
	return copyUser(u), nil
}

func (m *MockUserRepository) SetSubscriptionStatus(ctx context.Context, id int64, status string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return false, m.UpdateError
	}
	u, ok := m.Users[id]
	if !ok || u.SubscriptionStatus == status {
		return false, nil
	}
	m.Writes++
	u.SubscriptionStatus = status
	u.UpdatedAt = at
	return true, nil
}

func (m *MockUserRepository) ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.Users {
		if u.SubscriptionStatus == user.StatusActive && (u.SubscriptionEndsAt == nil || !u.SubscriptionEndsAt.After(now)) {
			u.SubscriptionStatus = user.StatusInactive
			n++
		}
	}
	m.Writes += int(n)
	return n, nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*user.User
	for _, u := range m.Users {
		result = append(result, copyUser(u))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

// WriteCount returns how many mutating calls reached the repository
func (m *MockUserRepository) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Writes
}

func copyUser(u *user.User) *user.User {
	c := *u
	return &c
}

// MockProjectRepository is a mock implementation of project.Repository
type MockProjectRepository struct {
	Projects    map[int64]*project.Project
	NextID      int64
	CreateError error
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{Projects: make(map[int64]*project.Project), NextID: 1}
}

func (m *MockProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	p.ID = m.NextID
	m.NextID++
	m.Projects[p.ID] = p
	return nil
}

func (m *MockProjectRepository) GetByID(ctx context.Context, userID, id int64) (*project.Project, error) {
	p, ok := m.Projects[id]
	if !ok || p.UserID != userID {
		return nil, errors.NotFound("Project")
	}
	c := *p
	return &c, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, p *project.Project) error {
	existing, ok := m.Projects[p.ID]
	if !ok || existing.UserID != p.UserID {
		return errors.NotFound("Project")
	}
	m.Projects[p.ID] = p
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, userID, id int64) error {
	p, ok := m.Projects[id]
	if !ok || p.UserID != userID {
		return errors.NotFound("Project")
	}
	delete(m.Projects, id)
	return nil
}

func (m *MockProjectRepository) List(ctx context.Context, userID int64, filter project.Filter, limit, offset int) ([]*project.Project, int64, error) {
	var result []*project.Project
	for _, p := range m.Projects {
		if p.UserID == userID && (filter.Status == "" || p.Status == filter.Status) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

// MockRefereeRepository is a mock implementation of referee.Repository
type MockRefereeRepository struct {
	Referees map[int64]*referee.Referee
	NextID   int64
}

func NewMockRefereeRepository() *MockRefereeRepository {
	return &MockRefereeRepository{Referees: make(map[int64]*referee.Referee), NextID: 1}
}

func (m *MockRefereeRepository) Create(ctx context.Context, r *referee.Referee) error {
	r.ID = m.NextID
	m.NextID++
	m.Referees[r.ID] = r
	return nil
}

func (m *MockRefereeRepository) GetByID(ctx context.Context, userID, id int64) (*referee.Referee, error) {
	r, ok := m.Referees[id]
	if !ok || r.UserID != userID {
		return nil, errors.NotFound("Referee")
	}
	c := *r
	return &c, nil
}

func (m *MockRefereeRepository) Update(ctx context.Context, r *referee.Referee) error {
	existing, ok := m.Referees[r.ID]
	if !ok || existing.UserID != r.UserID {
		return errors.NotFound("Referee")
	}
	m.Referees[r.ID] = r
	return nil
}

func (m *MockRefereeRepository) Delete(ctx context.Context, userID, id int64) error {
	r, ok := m.Referees[id]
	if !ok || r.UserID != userID {
		return errors.NotFound("Referee")
	}
	delete(m.Referees, id)
	return nil
}

func (m *MockRefereeRepository) List(ctx context.Context, userID int64, filter referee.Filter) ([]*referee.Referee, error) {
	var result []*referee.Referee
	for _, r := range m.Referees {
		if r.UserID != userID {
			continue
		}
		if filter.ProjectID != nil && (r.ProjectID == nil || *r.ProjectID != *filter.ProjectID) {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// MockReportRepository is a mock implementation of report.Repository
type MockReportRepository struct {
	Reports map[int64]*report.Report
	NextID  int64
}

func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{Reports: make(map[int64]*report.Report), NextID: 1}
}

func (m *MockReportRepository) Create(ctx context.Context, r *report.Report) error {
	r.ID = m.NextID
	m.NextID++
	m.Reports[r.ID] = r
	return nil
}

func (m *MockReportRepository) GetByID(ctx context.Context, userID, id int64) (*report.Report, error) {
	r, ok := m.Reports[id]
	if !ok || r.UserID != userID {
		return nil, errors.NotFound("Report")
	}
	c := *r
	return &c, nil
}

func (m *MockReportRepository) Update(ctx context.Context, r *report.Report) error {
	existing, ok := m.Reports[r.ID]
	if !ok || existing.UserID != r.UserID {
		return errors.NotFound("Report")
	}
	m.Reports[r.ID] = r
	return nil
}

func (m *MockReportRepository) Delete(ctx context.Context, userID, id int64) error {
	r, ok := m.Reports[id]
	if !ok || r.UserID != userID {
		return errors.NotFound("Report")
	}
	delete(m.Reports, id)
	return nil
}

func (m *MockReportRepository) List(ctx context.Context, userID int64, filter report.Filter, limit, offset int) ([]*report.Report, int64, error) {
	var result []*report.Report
	for _, r := range m.Reports {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, int64(len(result)), nil
}

// MockEventLog is an in-memory payment.EventLog
type MockEventLog struct {
	mu        sync.Mutex
	Refs      map[string]string
	SeenError error
}

func NewMockEventLog() *MockEventLog {
	return &MockEventLog{Refs: make(map[string]string)}
}

func (m *MockEventLog) Seen(ctx context.Context, reference string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SeenError != nil {
		return false, m.SeenError
	}
	_, ok := m.Refs[reference]
	return ok, nil
}

func (m *MockEventLog) Record(ctx context.Context, reference, eventType, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refs[reference] = eventType
	return nil
}

// MockGateway is a scripted payment.Gateway
type MockGateway struct {
	Checkout     *payment.Checkout
	InitError    error
	Transactions map[string]*payment.Transaction
	VerifyError  error
	LastCheckout *payment.CheckoutRequest
	VerifyCalls  int
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		Checkout: &payment.Checkout{
			AuthorizationURL: "https://checkout.example.com/pay/abc",
			AccessCode:       "abc",
			Reference:        "ref_abc",
		},
		Transactions: make(map[string]*payment.Transaction),
	}
}

func (m *MockGateway) Initialize(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	m.LastCheckout = &req
	if m.InitError != nil {
		return nil, m.InitError
	}
	return m.Checkout, nil
}

func (m *MockGateway) Verify(ctx context.Context, reference string) (*payment.Transaction, error) {
	m.VerifyCalls++
	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	tx, ok := m.Transactions[reference]
	if !ok {
		return nil, errors.NotFound("Transaction")
	}
	return tx, nil
}

// MockResolver maps tokens to identities
type MockResolver struct {
	Identities map[string]*identity.Identity
	Err        error
}

func NewMockResolver() *MockResolver {
	return &MockResolver{Identities: make(map[string]*identity.Identity)}
}

func (m *MockResolver) Name() string { return "mock" }

func (m *MockResolver) Resolve(ctx context.Context, token string) (*identity.Identity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	id, ok := m.Identities[token]
	if !ok {
		return nil, identity.ErrTokenRejected
	}
	return id, nil
}

// MockWriter returns canned report text
type MockWriter struct {
	Text    string
	Err     error
	Prompts []string
}

func (m *MockWriter) Draft(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

// MockArchive records uploads in memory
type MockArchive struct {
	Objects map[string][]byte
	Err     error
}

func NewMockArchive() *MockArchive {
	return &MockArchive{Objects: make(map[string][]byte)}
}

func (m *MockArchive) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Objects[key] = body
	return "mem://" + key, nil
}
