package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMongoValidatesConfig(t *testing.T) {
	_, err := NewMongo(Config{Name: "qrstash"})
	require.Error(t, err)

	_, err = NewMongo(Config{URI: "mongodb://localhost:27017"})
	require.Error(t, err)

	m, err := NewMongo(Config{URI: "mongodb://localhost:27017", Name: "qrstash"})
	require.NoError(t, err)
	require.False(t, m.IsConnected())
	require.Equal(t, StateDisconnected, m.State())
}

func TestConnectFailureMarksDisconnected(t *testing.T) {
	// Port 1 is never a mongod; the dial fails fast with the short timeout.
	m, err := NewMongo(Config{
		URI:            "mongodb://127.0.0.1:1",
		Name:           "qrstash",
		ConnectTimeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	err = m.Connect(context.Background())
	require.Error(t, err)
	require.False(t, m.IsConnected())
	require.Equal(t, StateDisconnected, m.State())
	require.Error(t, m.LastError())
}

func TestEnsureConnectedRetriesOnce(t *testing.T) {
	m, err := NewMongo(Config{
		URI:            "mongodb://127.0.0.1:1",
		Name:           "qrstash",
		ConnectTimeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	err = m.EnsureConnected(context.Background())
	require.Error(t, err)
	require.False(t, m.IsConnected())
}

func TestHandlesBeforeConnectAreNil(t *testing.T) {
	m, err := NewMongo(Config{URI: "mongodb://localhost:27017", Name: "qrstash"})
	require.NoError(t, err)

	require.Nil(t, m.Database())
	require.Nil(t, m.Collection("qrcodes"))
	require.NoError(t, m.Close(context.Background()))
}
