package cmd

import (
	"log/slog"

	"shipping/internal/adapters/out/auditbuf"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/auditrepo"
	"shipping/internal/adapters/out/redis"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	recorder   *auditbuf.BufferedRecorder
}

// NewCompositionRoot wires the persistence stack. When a cache is provided,
// carrier and rule reads go through it; a nil cache disables caching.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, cache *redis.Cache, logger *slog.Logger) CompositionRoot {
	var uowFactory ports.UnitOfWorkFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	if cache != nil {
		uowFactory = redis.NewCachingUnitOfWorkFactory(uowFactory, cache)
	}

	// The recorder writes outside the command transactions on purpose: audit
	// entries are appended after commit and must not fail the command.
	recorder := auditbuf.NewBufferedRecorder(auditrepo.NewGormAuditRepository(gormDB), logger)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// AuditRecorder exposes the buffered recorder for the retry job.
func (c *CompositionRoot) AuditRecorder() *auditbuf.BufferedRecorder {
	return c.recorder
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateOverrideCourierCommandHandler() commands.OverrideCourierCommandHandler {
	var f commands.OverrideUoWFactory = FuncOverrideUoWFactory(func() commands.OverrideUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOverrideCourierCommandHandler(f, c.recorder)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAssignmentQueryHandler() queries.GetAssignmentQueryHandler {
	return queries.NewGetAssignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditTrailQueryHandler() queries.GetAuditTrailQueryHandler {
	return queries.NewGetAuditTrailQueryHandler(c.gormDB)
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncOverrideUoWFactory func() commands.OverrideUoW

func (f FuncOverrideUoWFactory) Create() commands.OverrideUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
