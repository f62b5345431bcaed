package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory commands.StopUoWFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	factory := postgres.NewGormUnitOfWorkFactory(gormDB)

	return CompositionRoot{
		config: config,
		gormDB: gormDB,
		uowFactory: FuncStopUoWFactory(func() commands.StopUoW {
			return factory.Create()
		}),
		logger: logger,
	}
}

func (c *CompositionRoot) CreateAppendStopCommandHandler() commands.AppendStopCommandHandler {
	return commands.NewAppendStopCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateUpsertStopCommandHandler() commands.UpsertStopCommandHandler {
	return commands.NewUpsertStopCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateInsertStopCommandHandler() commands.InsertStopCommandHandler {
	return commands.NewInsertStopCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateMoveStopCommandHandler() commands.MoveStopCommandHandler {
	return commands.NewMoveStopCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateRemoveStopCommandHandler() commands.RemoveStopCommandHandler {
	return commands.NewRemoveStopCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetRouteStopsQueryHandler() queries.GetRouteStopsQueryHandler {
	return queries.NewGetRouteStopsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindSequenceGapsQueryHandler() queries.FindSequenceGapsQueryHandler {
	return queries.NewFindSequenceGapsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	appendHandler := c.CreateAppendStopCommandHandler()
	upsertHandler := c.CreateUpsertStopCommandHandler()
	insertHandler := c.CreateInsertStopCommandHandler()
	moveHandler := c.CreateMoveStopCommandHandler()
	removeHandler := c.CreateRemoveStopCommandHandler()

	return httpin.NewServer(
		&appendHandler,
		&upsertHandler,
		&insertHandler,
		&moveHandler,
		&removeHandler,
		c.CreateGetRouteStopsQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateFindSequenceGapsQueryHandler(), c.config.SequenceAuditSchedule, c.logger)
}

type FuncStopUoWFactory func() commands.StopUoW

func (f FuncStopUoWFactory) Create() commands.StopUoW {
	return f()
}
