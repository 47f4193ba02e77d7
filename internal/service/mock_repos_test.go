package service

import (
	"context"

	"oms-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- Mock TransactionManager ---

// mockTxManager runs the body directly; transactional semantics are covered
// by integration tests against a real database.
type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepo) add(user *model.User) *model.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.add(user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.RoleKey == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) DebitPTOBalance(_ context.Context, id uuid.UUID, days decimal.Decimal) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PTOBalanceDays = u.PTOBalanceDays.Sub(days)
	return nil
}

// --- Mock AttendanceRepository ---

type mockAttendanceRepo struct {
	records []*model.AttendanceRecord
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockAttendanceRepo) FindOpenByUser(_ context.Context, userID uuid.UUID) (*model.AttendanceRecord, error) {
	for _, r := range m.records {
		if r.UserID == userID && r.ClockOutTime == nil {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) FindOpenByUserForUpdate(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error) {
	return m.FindOpenByUser(ctx, userID)
}

func (m *mockAttendanceRepo) Update(_ context.Context, record *model.AttendanceRecord) error {
	for i, r := range m.records {
		if r.ID == record.ID {
			m.records[i] = record
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) CountOpen(_ context.Context) (int64, error) {
	var count int64
	for _, r := range m.records {
		if r.ClockOutTime == nil {
			count++
		}
	}
	return count, nil
}

// --- Mock OrderRepository ---

type mockOrderRepo struct {
	orders map[uuid.UUID]*model.Order
	items  []*model.OrderItem
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepo) add(order *model.Order) *model.Order {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders[order.ID] = order
	return order
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	m.add(order)
	return nil
}

func (m *mockOrderRepo) CreateItem(_ context.Context, item *model.OrderItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m.items = append(m.items, item)
	return nil
}

func (m *mockOrderRepo) FindByIDWithItems(_ context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	copied.Items = nil
	for _, item := range m.items {
		if item.OrderID == id {
			copied.Items = append(copied.Items, *item)
		}
	}
	return &copied, nil
}

func (m *mockOrderRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*model.Order, error) {
	if order, ok := m.orders[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	order, ok := m.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.CurrentStatus = status
	return nil
}

func (m *mockOrderRepo) SetDispatch(_ context.Context, id uuid.UUID, deliveryUserID uuid.UUID) error {
	order, ok := m.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.CurrentStatus = model.OrderStatusDispatched
	order.AssignedDeliveryID = &deliveryUserID
	return nil
}

func (m *mockOrderRepo) List(_ context.Context, _, _ int) ([]model.Order, int64, error) {
	var result []model.Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

// --- Mock ProofRepository ---

type mockProofRepo struct {
	proofs []*model.ProofOfExecutionRecord
	pings  []*model.GPSTrackingPing
}

func newMockProofRepo() *mockProofRepo {
	return &mockProofRepo{}
}

func (m *mockProofRepo) CreateProof(_ context.Context, proof *model.ProofOfExecutionRecord) error {
	if proof.ID == uuid.Nil {
		proof.ID = uuid.New()
	}
	m.proofs = append(m.proofs, proof)
	return nil
}

func (m *mockProofRepo) ListProofsByOrder(_ context.Context, orderID uuid.UUID) ([]model.ProofOfExecutionRecord, error) {
	var result []model.ProofOfExecutionRecord
	for _, p := range m.proofs {
		if p.OrderID == orderID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProofRepo) CreatePing(_ context.Context, ping *model.GPSTrackingPing) error {
	if ping.ID == uuid.Nil {
		ping.ID = uuid.New()
	}
	m.pings = append(m.pings, ping)
	return nil
}

func (m *mockProofRepo) ListPings(_ context.Context, _, _ int) ([]model.GPSTrackingPing, int64, error) {
	var result []model.GPSTrackingPing
	for _, p := range m.pings {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

// --- Mock TimeOffRepository ---

type mockTimeOffRepo struct {
	requests map[uuid.UUID]*model.TimeOffRequest
}

func newMockTimeOffRepo() *mockTimeOffRepo {
	return &mockTimeOffRepo{requests: make(map[uuid.UUID]*model.TimeOffRequest)}
}

func (m *mockTimeOffRepo) Create(_ context.Context, request *model.TimeOffRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	m.requests[request.ID] = request
	return nil
}

func (m *mockTimeOffRepo) FindPendingForManagerForUpdate(_ context.Context, id, managerID uuid.UUID) (*model.TimeOffRequest, error) {
	request, ok := m.requests[id]
	if !ok || request.ManagerID != managerID || request.Status != model.TimeOffStatusRequest {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (m *mockTimeOffRepo) Update(_ context.Context, request *model.TimeOffRequest) error {
	m.requests[request.ID] = request
	return nil
}

func (m *mockTimeOffRepo) ListPendingByManager(_ context.Context, managerID uuid.UUID) ([]model.TimeOffRequest, error) {
	var result []model.TimeOffRequest
	for _, r := range m.requests {
		if r.ManagerID == managerID && r.Status == model.TimeOffStatusRequest {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockTimeOffRepo) CountPending(_ context.Context) (int64, error) {
	var count int64
	for _, r := range m.requests {
		if r.Status == model.TimeOffStatusRequest {
			count++
		}
	}
	return count, nil
}

// --- Mock StatusAuditRepository ---

type mockAuditRepo struct {
	audits []*model.StaffStatusAudit
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Create(_ context.Context, audit *model.StaffStatusAudit) error {
	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	m.audits = append(m.audits, audit)
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, _, _ int) ([]model.StaffStatusAudit, int64, error) {
	var result []model.StaffStatusAudit
	for _, a := range m.audits {
		result = append(result, *a)
	}
	return result, int64(len(result)), nil
}

// --- Mock VisitRepository ---

type mockVisitRepo struct {
	plans map[uuid.UUID]*model.SalesVisitPlan
}

func newMockVisitRepo() *mockVisitRepo {
	return &mockVisitRepo{plans: make(map[uuid.UUID]*model.SalesVisitPlan)}
}

func (m *mockVisitRepo) Create(_ context.Context, plan *model.SalesVisitPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockVisitRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SalesVisitPlan, error) {
	if plan, ok := m.plans[id]; ok {
		return plan, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVisitRepo) Update(_ context.Context, plan *model.SalesVisitPlan) error {
	m.plans[plan.ID] = plan
	return nil
}

func (m *mockVisitRepo) ListByOwner(_ context.Context, salesRepID uuid.UUID) ([]model.SalesVisitPlan, error) {
	var result []model.SalesVisitPlan
	for _, p := range m.plans {
		if p.SalesRepID == salesRepID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockVisitRepo) ListAll(_ context.Context) ([]model.SalesVisitPlan, error) {
	var result []model.SalesVisitPlan
	for _, p := range m.plans {
		result = append(result, *p)
	}
	return result, nil
}
