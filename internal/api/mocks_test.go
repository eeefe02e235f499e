package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mbriand/railgo/internal/api/shared"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/store"
)

// errUnexpectedCall is returned by any mock method a test did not stub.
var errUnexpectedCall = errors.New("unexpected store call")

// mockUserStore is a function-field fake of store.UserStore.
type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	listFn       func(ctx context.Context, filter store.UserFilter) ([]*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
	deleteFn     func(ctx context.Context, id int64) error
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createFn == nil {
		return errUnexpectedCall
	}
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) List(ctx context.Context, filter store.UserFilter) ([]*domain.User, error) {
	if m.listFn == nil {
		return nil, errUnexpectedCall
	}
	return m.listFn(ctx, filter)
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.updateFn == nil {
		return errUnexpectedCall
	}
	return m.updateFn(ctx, user)
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return errUnexpectedCall
	}
	return m.deleteFn(ctx, id)
}

// mockStationStore is a function-field fake of store.StationStore.
type mockStationStore struct {
	createFn    func(ctx context.Context, station *domain.Station) error
	getByIDFn   func(ctx context.Context, id int64) (*domain.Station, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Station, error)
	listFn      func(ctx context.Context, filter store.StationFilter) ([]*domain.Station, error)
	updateFn    func(ctx context.Context, station *domain.Station) error
	deleteFn    func(ctx context.Context, id int64) error
}

func (m *mockStationStore) Create(ctx context.Context, station *domain.Station) error {
	if m.createFn == nil {
		return errUnexpectedCall
	}
	return m.createFn(ctx, station)
}

func (m *mockStationStore) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	if m.getByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockStationStore) GetByName(ctx context.Context, name string) (*domain.Station, error) {
	if m.getByNameFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByNameFn(ctx, name)
}

func (m *mockStationStore) List(
	ctx context.Context,
	filter store.StationFilter,
) ([]*domain.Station, error) {
	if m.listFn == nil {
		return nil, errUnexpectedCall
	}
	return m.listFn(ctx, filter)
}

func (m *mockStationStore) Update(ctx context.Context, station *domain.Station) error {
	if m.updateFn == nil {
		return errUnexpectedCall
	}
	return m.updateFn(ctx, station)
}

func (m *mockStationStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return errUnexpectedCall
	}
	return m.deleteFn(ctx, id)
}

// mockTrainStore is a function-field fake of store.TrainStore.
type mockTrainStore struct {
	createFn  func(ctx context.Context, train *domain.Train) error
	getByIDFn func(ctx context.Context, id int64) (*domain.Train, error)
	listFn    func(ctx context.Context, filter store.TrainFilter) ([]*domain.Train, error)
	updateFn  func(ctx context.Context, train *domain.Train) error
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockTrainStore) Create(ctx context.Context, train *domain.Train) error {
	if m.createFn == nil {
		return errUnexpectedCall
	}
	return m.createFn(ctx, train)
}

func (m *mockTrainStore) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	if m.getByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockTrainStore) List(
	ctx context.Context,
	filter store.TrainFilter,
) ([]*domain.Train, error) {
	if m.listFn == nil {
		return nil, errUnexpectedCall
	}
	return m.listFn(ctx, filter)
}

func (m *mockTrainStore) Update(ctx context.Context, train *domain.Train) error {
	if m.updateFn == nil {
		return errUnexpectedCall
	}
	return m.updateFn(ctx, train)
}

func (m *mockTrainStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return errUnexpectedCall
	}
	return m.deleteFn(ctx, id)
}

// mockTicketStore is a function-field fake of store.TicketStore.
type mockTicketStore struct {
	createFn    func(ctx context.Context, ticket *domain.Ticket) error
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	getOldestFn func(ctx context.Context, userID, trainID int64) (*domain.Ticket, error)
	listFn      func(ctx context.Context, userID int64) ([]*domain.Ticket, error)
	validateFn  func(ctx context.Context, id uuid.UUID, at time.Time) error
}

func (m *mockTicketStore) Create(ctx context.Context, ticket *domain.Ticket) error {
	if m.createFn == nil {
		return errUnexpectedCall
	}
	return m.createFn(ctx, ticket)
}

func (m *mockTicketStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	if m.getByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockTicketStore) GetOldestByUserAndTrain(
	ctx context.Context,
	userID, trainID int64,
) (*domain.Ticket, error) {
	if m.getOldestFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getOldestFn(ctx, userID, trainID)
}

func (m *mockTicketStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	if m.listFn == nil {
		return nil, errUnexpectedCall
	}
	return m.listFn(ctx, userID)
}

func (m *mockTicketStore) Validate(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.validateFn == nil {
		return errUnexpectedCall
	}
	return m.validateFn(ctx, id, at)
}

// mockSequenceStore is a function-field fake of store.SequenceStore.
type mockSequenceStore struct {
	nextFn func(ctx context.Context, name string) (int64, error)
}

func (m *mockSequenceStore) Next(ctx context.Context, name string) (int64, error) {
	if m.nextFn == nil {
		return 0, errUnexpectedCall
	}
	return m.nextFn(ctx, name)
}

// fixedSequence returns a mockSequenceStore that always allocates the same
// value, enough for single-create tests.
func fixedSequence(value int64) *mockSequenceStore {
	return &mockSequenceStore{
		nextFn: func(ctx context.Context, name string) (int64, error) {
			return value, nil
		},
	}
}

// requestWithActor attaches an authenticated caller to the request, the way
// the auth middleware would.
func requestWithActor(r *http.Request, userID int64, role domain.Role) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	ctx = context.WithValue(ctx, shared.RoleContextKey, role)
	return r.WithContext(ctx)
}

// withPathParam attaches a chi URL parameter to the request, the way the
// router would when dispatching.
func withPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
