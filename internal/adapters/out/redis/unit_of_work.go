package redis

import (
	"shipping/internal/core/ports"
)

// CachingUnitOfWorkFactory wraps a UnitOfWorkFactory so that every unit of
// work it creates serves carrier and rule reads through the cache.
type CachingUnitOfWorkFactory struct {
	inner ports.UnitOfWorkFactory
	cache *Cache
}

// NewCachingUnitOfWorkFactory decorates the given factory.
func NewCachingUnitOfWorkFactory(inner ports.UnitOfWorkFactory, cache *Cache) *CachingUnitOfWorkFactory {
	return &CachingUnitOfWorkFactory{inner: inner, cache: cache}
}

// Create produces a unit of work with cached carrier and rule repositories.
func (f *CachingUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &cachingUnitOfWork{
		UnitOfWork: f.inner.Create(),
		cache:      f.cache,
	}
}

// cachingUnitOfWork delegates transaction control and order/audit persistence
// to the wrapped unit of work, decorating only the read-heavy repositories.
type cachingUnitOfWork struct {
	ports.UnitOfWork
	cache *Cache
}

func (uow *cachingUnitOfWork) CarrierRepository() ports.CarrierRepository {
	return NewCachedCarrierRepository(uow.UnitOfWork.CarrierRepository(), uow.cache)
}

func (uow *cachingUnitOfWork) RuleRepository() ports.RuleRepository {
	return NewCachedRuleRepository(uow.UnitOfWork.RuleRepository(), uow.cache)
}

var _ ports.UnitOfWork = (*cachingUnitOfWork)(nil)
