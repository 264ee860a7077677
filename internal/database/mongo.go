package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/qrstash/qrstash/pkg/logger"
	"github.com/qrstash/qrstash/pkg/metrics"
)

// Connection states reported by the status endpoint.
const (
	StateConnected    = "connected"
	StateDisconnected = "disconnected"
)

const defaultConnectTimeout = 10 * time.Second

// Config contains MongoDB connection options.
type Config struct {
	URI            string
	Name           string // database name
	ConnectTimeout time.Duration
}

// Mongo owns the single shared client used across all in-flight requests.
// The underlying *mongo.Client is safe for concurrent use; the mutex only
// guards the cached connection state.
type Mongo struct {
	cfg Config
	log *zap.Logger

	mu        sync.RWMutex
	client    *mongo.Client
	connected bool
	lastErr   error
}

// NewMongo constructs an unconnected handle. Call Connect (or let
// EnsureConnected do it on first use) before issuing operations.
func NewMongo(cfg Config) (*Mongo, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, fmt.Errorf("database: uri is required")
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("database: name is required")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}

	return &Mongo{
		cfg: cfg,
		log: logger.WithModule("database"),
	}, nil
}

// Connect dials the configured URI and verifies the server with a ping.
// On failure the handle is marked disconnected and the error recorded;
// retrying is the caller's decision.
func (m *Mongo) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.connectLocked(ctx)
}

func (m *Mongo) connectLocked(ctx context.Context) error {
	if m.client != nil {
		// Drop the stale client before dialling again.
		_ = m.client.Disconnect(ctx)
		m.client = nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, m.cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(m.cfg.URI).
		SetServerSelectionTimeout(m.cfg.ConnectTimeout)

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		m.connected = false
		m.lastErr = err
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		m.connected = false
		m.lastErr = err
		return fmt.Errorf("database: ping: %w", err)
	}

	m.client = client
	m.connected = true
	m.lastErr = nil
	m.log.Info("mongodb connected", zap.String("database", m.cfg.Name))
	return nil
}

// IsConnected reports the cached connection state, not a live probe.
func (m *Mongo) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.connected
}

// State returns the cached state as a status string.
func (m *Mongo) State() string {
	if m.IsConnected() {
		return StateConnected
	}
	return StateDisconnected
}

// LastError returns the error recorded by the most recent failed dial.
func (m *Mongo) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastErr
}

// EnsureConnected returns nil when the handle is connected, otherwise makes
// one synchronous reconnect attempt and reports the outcome. Handlers call
// this before delegating to the record store.
func (m *Mongo) EnsureConnected(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return nil
	}

	m.log.Warn("mongodb disconnected, attempting reconnect")
	if err := m.connectLocked(ctx); err != nil {
		metrics.StoreReconnects.WithLabelValues("failure").Inc()
		m.log.Error("mongodb reconnect failed", zap.Error(err))
		return err
	}

	metrics.StoreReconnects.WithLabelValues("success").Inc()
	return nil
}

// Database returns a handle to the configured database, or nil before the
// first successful connect.
func (m *Mongo) Database() *mongo.Database {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.client == nil {
		return nil
	}
	return m.client.Database(m.cfg.Name)
}

// Collection returns a handle to the named collection in the configured
// database, or nil before the first successful connect.
func (m *Mongo) Collection(name string) *mongo.Collection {
	db := m.Database()
	if db == nil {
		return nil
	}
	return db.Collection(name)
}

// Close disconnects the client during shutdown.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Disconnect(ctx)
	m.client = nil
	m.connected = false
	return err
}
