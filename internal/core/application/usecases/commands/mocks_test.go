package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockStopRepository struct{ mock.Mock }

func (m *MockStopRepository) LockRoute(ctx context.Context, routeID kernel.UUID) error {
	args := m.Called(ctx, routeID)
	return args.Error(0)
}

func (m *MockStopRepository) MaxSequence(ctx context.Context, routeID kernel.UUID) (int, error) {
	args := m.Called(ctx, routeID)
	return args.Int(0), args.Error(1)
}

func (m *MockStopRepository) Get(ctx context.Context, routeID, orderID kernel.UUID) (*stop.Stop, error) {
	args := m.Called(ctx, routeID, orderID)
	s, _ := args.Get(0).(*stop.Stop)
	return s, args.Error(1)
}

func (m *MockStopRepository) ListInRange(ctx context.Context, routeID kernel.UUID, r stop.Range) ([]*stop.Stop, error) {
	args := m.Called(ctx, routeID, r)
	stops, _ := args.Get(0).([]*stop.Stop)
	return stops, args.Error(1)
}

func (m *MockStopRepository) ListByRoute(ctx context.Context, routeID kernel.UUID) ([]*stop.Stop, error) {
	args := m.Called(ctx, routeID)
	stops, _ := args.Get(0).([]*stop.Stop)
	return stops, args.Error(1)
}

func (m *MockStopRepository) Add(ctx context.Context, s *stop.Stop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopRepository) UpdateDetails(ctx context.Context, s *stop.Stop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopRepository) Resequence(ctx context.Context, routeID kernel.UUID, plan stop.Plan) error {
	args := m.Called(ctx, routeID, plan)
	return args.Error(0)
}

func (m *MockStopRepository) Remove(ctx context.Context, routeID, orderID kernel.UUID) error {
	args := m.Called(ctx, routeID, orderID)
	return args.Error(0)
}

type MockStopUoW struct{ mock.Mock }

func (m *MockStopUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStopUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStopUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStopUoW) StopRepository() ports.StopRepository {
	args := m.Called()
	return args.Get(0).(ports.StopRepository)
}

type MockStopUoWFactory struct{ mock.Mock }

func (m *MockStopUoWFactory) Create() commands.StopUoW {
	args := m.Called()
	return args.Get(0).(commands.StopUoW)
}

// mustStop builds a pending stop or panics.
func mustStop(routeID, orderID kernel.UUID, sequence int) *stop.Stop {
	s, err := stop.NewStop(routeID, orderID, sequence, stop.PendingDetails())
	if err != nil {
		panic(err)
	}
	return s
}
