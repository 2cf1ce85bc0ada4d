package ports

import "github.com/skeinlabs/gcx/internal/core/domain"

// ConfigLoader loads the run configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration starting from the given working directory
	// and returns a normalized, validated run plan.
	Load(cwd string) (domain.RunPlan, error)

	// DiscoverRoot walks up from cwd to the directory containing gcx.yaml.
	DiscoverRoot(cwd string) (string, error)
}
