package adapters

import (
	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/primary/cli"
	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/cache"
	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/obs"
	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/repository/cached"
	obsrepo "github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/repository/obs"
	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/testreport"
	"github.com/mimi1vx/osc-plugin-qam/internal/config"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/app"
	ascii "github.com/mimi1vx/osc-plugin-qam/internal/format/ascii"
	"github.com/mimi1vx/osc-plugin-qam/internal/incident"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var PrimaryPackage = do.Package(
	do.Lazy[*cobra.Command](cli.Command),
	do.Lazy[*ascii.Formatter](NewFormatter),
	do.Lazy[*incident.Resolver](NewIncidentResolver),
)

var SecondaryPackage = do.Package(
	do.Lazy[*obs.Client](NewOBSClient),
	do.Lazy[*obsrepo.Repository](NewOBSRepository),
	do.Lazy[cache.Cache](NewCache),
	do.Lazy[app.Repository](NewRepository),
	do.Lazy[app.TemplateLoader](NewTemplateLoader),
)

// NewOBSClient creates a new build service gateway.
func NewOBSClient(i do.Injector) (*obs.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return obs.NewClient(cfg.APIURL, cfg.User, cfg.Password), nil
}

// NewOBSRepository creates a new build service repository instance.
func NewOBSRepository(i do.Injector) (*obsrepo.Repository, error) {
	client := do.MustInvoke[*obs.Client](i)

	return obsrepo.NewRepository(client), nil
}

// NewCache creates a new cache instance.
func NewCache(_ do.Injector) (cache.Cache, error) {
	return cache.NewInMemoryCache(), nil
}

// NewRepository creates a repository adapter that implements
// app.Repository. It wraps the build service repository with identity
// caching.
func NewRepository(i do.Injector) (app.Repository, error) {
	obsRepository := do.MustInvoke[*obsrepo.Repository](i)
	cacheInstance := do.MustInvoke[cache.Cache](i)

	return cached.NewCachedRepository(obsRepository, cacheInstance), nil
}

// NewTemplateLoader creates the test report loader.
func NewTemplateLoader(i do.Injector) (app.TemplateLoader, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return testreport.NewLoader(cfg.ReportsURL), nil
}

// NewIncidentResolver creates the incident URL resolver used by the
// formatter.
func NewIncidentResolver(i do.Injector) (*incident.Resolver, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return incident.NewResolver(cfg.IncidentURLTemplate)
}

// NewFormatter creates the terminal formatter.
func NewFormatter(i do.Injector) (*ascii.Formatter, error) {
	incidents := do.MustInvoke[*incident.Resolver](i)

	return ascii.NewFormatter(incidents), nil
}
