package integration

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"reqwise/pkg/auth"
	"reqwise/pkg/config"
	"reqwise/pkg/db"
	"reqwise/pkg/server"
	"reqwise/pkg/server/endpoints"
	gormstore "reqwise/pkg/server/store/gorm"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	Server      *server.Server
	ServerURL   string
	DatabaseURL string
	HTTPClient  *http.Client
}

// NewTestContext starts a PostgreSQL testcontainer, creates the schema and
// runs an in-process server against it.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("reqwise_test"),
		tcpostgres.WithUsername("reqwise"),
		tcpostgres.WithPassword("reqwise"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://reqwise:reqwise@%s:%s/reqwise_test?sslmode=disable", host, port.Port())

	database, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Setup(database); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	serverURL, srv, err := startInlineServer(database)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	tc := &TestContext{
		DB:          database,
		Container:   pgContainer,
		Server:      srv,
		ServerURL:   serverURL,
		DatabaseURL: connStr,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}

	if err := tc.waitForServer(); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	log.Printf("Test server running at %s", serverURL)
	return tc, nil
}

func startInlineServer(database *gorm.DB) (string, *server.Server, error) {
	cfg := &config.Config{
		TokenTTLMinutes: config.DefaultTokenTTLMinutes,
		ListLimitMax:    config.DefaultListLimitMax,
	}
	codec := auth.NewCodec([]byte("integration-test-secret"))

	users := gormstore.NewUsersStore(database)
	projects := gormstore.NewProjectsStore(database)
	requirements := gormstore.NewRequirementsStore(database)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create listener: %w", err)
	}

	srv := server.NewServer(database, cfg, codec, users, projects, requirements, "127.0.0.1", "0")
	endpoints.RegisterAll(srv)

	go func() {
		_ = srv.StartWithListener(listener)
	}()

	return fmt.Sprintf("http://%s", listener.Addr().String()), srv, nil
}

func (tc *TestContext) waitForServer() error {
	url := tc.ServerURL + "/status"
	for i := 0; i < 50; i++ {
		resp, err := tc.HTTPClient.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become ready at %s", url)
}

// Close terminates the test container
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
