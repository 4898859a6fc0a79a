package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fitlife/fitlife-backend/internal"
	"github.com/fitlife/fitlife-backend/internal/config"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverPort = 9100
	serverHost = "localhost"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type Suite struct {
	DB         *sql.DB
	dockerPool *dockertest.Pool
	server     *internal.Server
	teardown   []func()
}

func newSuite(ctx context.Context) (_ *Suite) {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := suite.redisSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup redis: %s", err.Error())
	}

	pgPort, err := suite.postgresSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	cfg, err := getTestConfig(redisPort, pgPort)
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to build test config: %s", err)
	}

	suite.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			RedisPassword:           "",
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		suite.cleanup()
		log.Fatalf("new server: %s", err)
	}

	suite.server.Serve(ctx, cfg.Host, cfg.Port)

	return suite
}

func (s *Suite) cleanup() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
}

func getTestConfig(redisPort, postgresPort string) (*config.Config, error) {
	programsDir, err := os.MkdirTemp("", "programs")
	if err != nil {
		return nil, fmt.Errorf("create programs dir: %w", err)
	}
	if err := os.WriteFile(
		filepath.Join(programsDir, "weight_loss.pdf"),
		[]byte("%PDF-1.4 weight loss plan"),
		0o600,
	); err != nil {
		return nil, fmt.Errorf("write program file: %w", err)
	}

	return &config.Config{
		Host:                        serverHost,
		Port:                        serverPort,
		RedisHost:                   "localhost",
		RedisPort:                   redisPort,
		PostgresHost:                "localhost",
		PostgresPort:                postgresPort,
		PostgresDBName:              "fitlife",
		PrometheusMetricsHost:       "localhost",
		PrometheusMetricsPort:       "0",
		LoginRateLimitAllowedPerMin: 100,
		TrainingProgramsPath:        programsDir,
		ChatbotServiceURL:           "http://localhost:65010",
	}, nil
}

func (s *Suite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Name:       "redis-integration",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		redisResource.Close()
	})

	redisPort := redisResource.GetPort("6379/tcp")
	return redisPort, nil
}

func (s *Suite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "12",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=fitlife",
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/fitlife?sslmode=disable", pgPort)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("open db conn: %s", err)
	}
	s.DB = db

	if err := s.dockerPool.Retry(db.Ping); err != nil {
		return "", fmt.Errorf("ping db: %s", err)
	}

	if _, err := db.Exec(initSQL); err != nil {
		return "", fmt.Errorf("run init script: %s", err)
	}

	return pgPort, nil
}

const initSQL = `
CREATE TABLE public.users
(
    id            SERIAL PRIMARY KEY,
    username      VARCHAR NOT NULL UNIQUE,
    password_hash VARCHAR NOT NULL,
    name          VARCHAR          NOT NULL DEFAULT '',
    age           INTEGER          NOT NULL DEFAULT 0,
    gender        VARCHAR          NOT NULL DEFAULT '',
    height        DOUBLE PRECISION NOT NULL DEFAULT 0,
    weight        DOUBLE PRECISION NOT NULL DEFAULT 0,
    email         VARCHAR          NOT NULL DEFAULT '',
    created_at    TIMESTAMP WITHOUT TIME ZONE NOT NULL
);

ALTER TABLE public.users OWNER TO postgres;

CREATE TABLE public.weight_log
(
    id      SERIAL PRIMARY KEY,
    user_id INTEGER          NOT NULL REFERENCES public.users (id),
    weight  DOUBLE PRECISION NOT NULL,
    date    DATE             NOT NULL,
    UNIQUE (user_id, date)
);

ALTER TABLE public.weight_log OWNER TO postgres;
CREATE INDEX ix_weight_log_user_date ON public.weight_log (user_id, date);
`
