package stoprepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/stoprepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/stop"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// StopRepositoryIntegrationTestSuite provides integration tests for GormStopRepository
// using PostgreSQL containers to verify database persistence behavior.
type StopRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *stoprepo.GormStopRepository
}

func (suite *StopRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&stoprepo.StopDTO{}))
}

func (suite *StopRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE route_stops").Error)
	suite.repository = stoprepo.NewGormStopRepository(suite.db)
}

func (suite *StopRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seedRoute stores n pending stops at sequences 1..n and returns them in order.
func (suite *StopRepositoryIntegrationTestSuite) seedRoute(routeID kernel.UUID, n int) []*stop.Stop {
	stops := make([]*stop.Stop, 0, n)
	for i := 1; i <= n; i++ {
		s, err := stop.NewStop(routeID, kernel.NewUUID(), i, stop.PendingDetails())
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(context.Background(), s))
		stops = append(stops, s)
	}
	return stops
}

func (suite *StopRepositoryIntegrationTestSuite) sequences(routeID kernel.UUID) map[kernel.UUID]int {
	stops, err := suite.repository.ListByRoute(context.Background(), routeID)
	suite.Require().NoError(err)

	res := make(map[kernel.UUID]int, len(stops))
	for _, s := range stops {
		res[s.OrderID()] = s.Sequence()
	}
	return res
}

func (suite *StopRepositoryIntegrationTestSuite) TestAdd_RoundTripsDetails() {
	ctx := context.Background()
	eta := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	etd := eta.Add(10 * time.Minute)
	details, err := stop.NewDetails(&eta, &etd, stop.EnRoute, "https://cdn.example.com/1.jpg", "back door")
	suite.Require().NoError(err)
	s, err := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), 1, details)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.Get(ctx, s.RouteID(), s.OrderID())
	suite.Require().NoError(err)
	suite.Equal(1, got.Sequence())
	suite.Equal(stop.EnRoute, got.Details().Status())
	suite.True(eta.Equal(*got.Details().ETA()))
	suite.True(etd.Equal(*got.Details().ETD()))
	suite.Equal("https://cdn.example.com/1.jpg", got.Details().ProofPhotoURL())
	suite.Equal("back door", got.Details().Notes())
}

func (suite *StopRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderIsAlreadyExists() {
	ctx := context.Background()
	existing := suite.seedRoute(kernel.NewUUID(), 1)[0]
	dup, err := stop.NewStop(existing.RouteID(), existing.OrderID(), 2, stop.PendingDetails())
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, dup)

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *StopRepositoryIntegrationTestSuite) TestAdd_TakenSequenceIsConstraintViolation() {
	ctx := context.Background()
	existing := suite.seedRoute(kernel.NewUUID(), 1)[0]
	clash, err := stop.NewStop(existing.RouteID(), kernel.NewUUID(), 1, stop.PendingDetails())
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, clash)

	suite.Require().ErrorIs(err, errs.ErrConstraintViolation)
	suite.Contains(err.Error(), stoprepo.SequenceIndexName)
}

func (suite *StopRepositoryIntegrationTestSuite) TestAdd_SameSequenceOnAnotherRoute() {
	suite.seedRoute(kernel.NewUUID(), 2)
	suite.seedRoute(kernel.NewUUID(), 2)
}

func (suite *StopRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StopRepositoryIntegrationTestSuite) TestMaxSequence() {
	ctx := context.Background()
	routeID := kernel.NewUUID()

	maxSequence, err := suite.repository.MaxSequence(ctx, routeID)
	suite.Require().NoError(err)
	suite.Equal(0, maxSequence)

	suite.seedRoute(routeID, 4)
	suite.seedRoute(kernel.NewUUID(), 9)

	maxSequence, err = suite.repository.MaxSequence(ctx, routeID)
	suite.Require().NoError(err)
	suite.Equal(4, maxSequence)
}

func (suite *StopRepositoryIntegrationTestSuite) TestListInRange() {
	ctx := context.Background()
	routeID := kernel.NewUUID()
	stops := suite.seedRoute(routeID, 5)

	closed, err := suite.repository.ListInRange(ctx, routeID, stop.Between(2, 4))
	suite.Require().NoError(err)
	suite.Require().Len(closed, 3)
	suite.True(closed[0].IsEqual(stops[1]))
	suite.True(closed[2].IsEqual(stops[3]))

	open, err := suite.repository.ListInRange(ctx, routeID, stop.From(4))
	suite.Require().NoError(err)
	suite.Require().Len(open, 2)
	suite.Equal(4, open[0].Sequence())
	suite.Equal(5, open[1].Sequence())

	empty, err := suite.repository.ListInRange(ctx, routeID, stop.Between(4, 3))
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *StopRepositoryIntegrationTestSuite) TestUpdateDetails_NeverWritesSequence() {
	ctx := context.Background()
	stored := suite.seedRoute(kernel.NewUUID(), 3)[1]

	changed, err := stop.NewStop(stored.RouteID(), stored.OrderID(), 3, stop.PendingDetails())
	suite.Require().NoError(err)
	details, err := stop.NewDetails(nil, nil, stop.Failed, "", strings.Repeat("n", stop.MaxNotesLength))
	suite.Require().NoError(err)
	suite.Require().NoError(changed.ReplaceDetails(details))

	suite.Require().NoError(suite.repository.UpdateDetails(ctx, changed))

	got, err := suite.repository.Get(ctx, stored.RouteID(), stored.OrderID())
	suite.Require().NoError(err)
	suite.Equal(2, got.Sequence(), "sequence carried by the entity must be ignored")
	suite.Equal(stop.Failed, got.Details().Status())
	suite.Len(got.Details().Notes(), stop.MaxNotesLength)
}

func (suite *StopRepositoryIntegrationTestSuite) TestUpdateDetails_NotFound() {
	s, err := stop.NewStop(kernel.NewUUID(), kernel.NewUUID(), 1, stop.PendingDetails())
	suite.Require().NoError(err)

	err = suite.repository.UpdateDetails(context.Background(), s)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StopRepositoryIntegrationTestSuite) TestResequence_ShiftsWithoutTrippingUniqueIndex() {
	ctx := context.Background()
	routeID := kernel.NewUUID()
	stops := suite.seedRoute(routeID, 4)

	// move the last stop to the front: every row changes and each target is taken
	plan := stop.Plan{
		{OrderID: stops[2].OrderID(), From: 3, To: 4},
		{OrderID: stops[1].OrderID(), From: 2, To: 3},
		{OrderID: stops[0].OrderID(), From: 1, To: 2},
		{OrderID: stops[3].OrderID(), From: 4, To: 1},
	}

	suite.Require().NoError(suite.repository.Resequence(ctx, routeID, plan))

	got := suite.sequences(routeID)
	suite.Equal(2, got[stops[0].OrderID()])
	suite.Equal(3, got[stops[1].OrderID()])
	suite.Equal(4, got[stops[2].OrderID()])
	suite.Equal(1, got[stops[3].OrderID()])
}

func (suite *StopRepositoryIntegrationTestSuite) TestResequence_StaleChangeRollsBackWholePlan() {
	ctx := context.Background()
	routeID := kernel.NewUUID()
	stops := suite.seedRoute(routeID, 3)

	plan := stop.Plan{
		{OrderID: stops[2].OrderID(), From: 3, To: 1},
		{OrderID: stops[0].OrderID(), From: 2, To: 3},
	}

	err := suite.repository.Resequence(ctx, routeID, plan)

	suite.Require().ErrorIs(err, errs.ErrConstraintViolation)
	got := suite.sequences(routeID)
	suite.Equal(1, got[stops[0].OrderID()])
	suite.Equal(2, got[stops[1].OrderID()])
	suite.Equal(3, got[stops[2].OrderID()])
}

func (suite *StopRepositoryIntegrationTestSuite) TestResequence_DuplicateTargetIsConstraintViolation() {
	ctx := context.Background()
	routeID := kernel.NewUUID()
	stops := suite.seedRoute(routeID, 3)

	plan := stop.Plan{
		{OrderID: stops[2].OrderID(), From: 3, To: 1},
	}

	err := suite.repository.Resequence(ctx, routeID, plan)

	suite.Require().ErrorIs(err, errs.ErrConstraintViolation)
	suite.Equal(3, suite.sequences(routeID)[stops[2].OrderID()])
}

func (suite *StopRepositoryIntegrationTestSuite) TestResequence_LeavesOtherRoutesAlone() {
	ctx := context.Background()
	routeID := kernel.NewUUID()
	otherID := kernel.NewUUID()
	stops := suite.seedRoute(routeID, 2)
	others := suite.seedRoute(otherID, 2)

	plan := stop.Plan{
		{OrderID: stops[0].OrderID(), From: 1, To: 2},
		{OrderID: stops[1].OrderID(), From: 2, To: 1},
	}
	suite.Require().NoError(suite.repository.Resequence(ctx, routeID, plan))

	got := suite.sequences(otherID)
	suite.Equal(1, got[others[0].OrderID()])
	suite.Equal(2, got[others[1].OrderID()])
}

func (suite *StopRepositoryIntegrationTestSuite) TestRemove() {
	ctx := context.Background()
	routeID := kernel.NewUUID()
	stops := suite.seedRoute(routeID, 2)

	suite.Require().NoError(suite.repository.Remove(ctx, routeID, stops[0].OrderID()))

	_, err := suite.repository.Get(ctx, routeID, stops[0].OrderID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Remove(ctx, routeID, stops[0].OrderID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StopRepositoryIntegrationTestSuite) TestLockRoute_OutsideTransactionSucceeds() {
	suite.Require().NoError(suite.repository.LockRoute(context.Background(), kernel.NewUUID()))
}

func TestStopRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StopRepositoryIntegrationTestSuite))
}
