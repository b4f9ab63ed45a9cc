// Package containers starts throwaway backing services for integration tests.
package containers

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage  = "postgres:16-alpine"
	redisImage     = "redis:7-alpine"
	startupTimeout = 30 * time.Second
)

// Service is a running container and the address tests dial
type Service struct {
	// Endpoint is a connection string for postgres and host:port for redis
	Endpoint  string
	container testcontainers.Container
}

// Terminate removes the container; a nil Service is fine
func (s *Service) Terminate() {
	if s == nil || s.container == nil {
		return
	}
	if err := s.container.Terminate(context.Background()); err != nil {
		slog.Warn("Failed to terminate test container", "error", err)
	}
}

// Postgres starts an empty database
func Postgres(ctx context.Context) (*Service, error) {
	return guarded(func() (*Service, error) {
		c, err := postgres.Run(ctx, postgresImage,
			postgres.WithDatabase("contests_test"),
			postgres.WithUsername("contest"),
			postgres.WithPassword("contest"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(startupTimeout)),
		)
		if err != nil {
			return nil, fmt.Errorf("start postgres: %w", err)
		}
		svc := &Service{container: c}
		if svc.Endpoint, err = c.ConnectionString(ctx, "sslmode=disable"); err != nil {
			svc.Terminate()
			return nil, fmt.Errorf("postgres connection string: %w", err)
		}
		return svc, nil
	})
}

// Redis starts a single redis node
func Redis(ctx context.Context) (*Service, error) {
	return guarded(func() (*Service, error) {
		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        redisImage,
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(startupTimeout),
			},
			Started: true,
		})
		if err != nil {
			return nil, fmt.Errorf("start redis: %w", err)
		}
		svc := &Service{container: c}
		host, err := c.Host(ctx)
		if err != nil {
			svc.Terminate()
			return nil, fmt.Errorf("redis host: %w", err)
		}
		port, err := c.MappedPort(ctx, "6379/tcp")
		if err != nil {
			svc.Terminate()
			return nil, fmt.Errorf("redis port: %w", err)
		}
		svc.Endpoint = net.JoinHostPort(host, port.Port())
		return svc, nil
	})
}

// guarded turns the panic testcontainers raises without a docker daemon
// into an error
func guarded(start func() (*Service, error)) (svc *Service, err error) {
	defer func() {
		if r := recover(); r != nil {
			svc, err = nil, fmt.Errorf("docker unavailable: %v", r)
		}
	}()
	return start()
}
