package app

import (
	"context"

	"github.com/truthtechno/lockerroom-evals/cache"
	"github.com/truthtechno/lockerroom-evals/model"
	"github.com/truthtechno/lockerroom-evals/store"
)

// TemplateCache is a read-through cache over the template store.
// Templates are read on every submission save and listed on every form
// picker load, but change rarely; entries live until a template
// mutation flushes them.
type TemplateCache struct {
	store *store.Store
	one   *cache.Cache[model.FormTemplate]
	lists *cache.Cache[[]model.FormTemplate]
}

func NewTemplateCache(st *store.Store) *TemplateCache {
	return &TemplateCache{
		store: st,
		one:   cache.New[model.FormTemplate](),
		lists: cache.New[[]model.FormTemplate](),
	}
}

func (c *TemplateCache) Get(ctx context.Context, id string) (model.FormTemplate, error) {
	return c.one.GetOrLoad(id, func() (model.FormTemplate, error) {
		return c.store.GetTemplate(ctx, id)
	})
}

func (c *TemplateCache) List(ctx context.Context, status string) ([]model.FormTemplate, error) {
	return c.lists.GetOrLoad("status="+status, func() ([]model.FormTemplate, error) {
		return c.store.ListTemplates(ctx, status)
	})
}

// Invalidate drops everything cached. Template writes are rare enough
// that being coarse here costs nothing and can never serve stale data.
func (c *TemplateCache) Invalidate() {
	c.one.Flush()
	c.lists.Flush()
}
