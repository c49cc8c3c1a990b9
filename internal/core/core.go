package core

import (
	"github.com/mimi1vx/osc-plugin-qam/internal/config"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	do "github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy[*app.App](NewApp),
)

// NewApp creates a new App instance with dependencies from the injector.
func NewApp(i do.Injector) (*app.App, error) {
	cfg := do.MustInvoke[*config.Config](i)
	repo := do.MustInvoke[app.Repository](i)
	templates := do.MustInvoke[app.TemplateLoader](i)

	return app.NewApp(cfg, repo, templates)
}
