package health

import (
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthHttp "github.com/hellofresh/health-go/v5/checks/http"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const Version = "1.0.0"

// NewHealthHandler checks the cart store when it is redis and whether the
// booking backend answers at all. A backend 4xx still counts as reachable.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "backend",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check: healthHttp.New(healthHttp.Config{
				URL:            cfg.Backend.BaseURL,
				RequestTimeout: 4 * time.Second,
			}),
		},
	}

	if cfg.Storage.Driver == config.StorageDriverRedis {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
