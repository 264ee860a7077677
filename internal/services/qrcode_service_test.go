package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrstash/qrstash/internal/database"
	appErrors "github.com/qrstash/qrstash/pkg/errors"
)

func newDisconnectedService(t *testing.T) *QRCodeService {
	t.Helper()

	db, err := database.NewMongo(database.Config{
		URI:  "mongodb://localhost:27017",
		Name: "qrstash_test",
	})
	require.NoError(t, err)

	svc, err := NewQRCodeService(db)
	require.NoError(t, err)
	return svc
}

func TestNewQRCodeServiceRequiresDB(t *testing.T) {
	_, err := NewQRCodeService(nil)
	require.Error(t, err)
}

func TestInsertRejectsMissingFields(t *testing.T) {
	svc := newDisconnectedService(t)
	ctx := context.Background()

	_, err := svc.Insert(ctx, CreateQRCodeInput{QRCodeImage: "aGVsbG8="})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Insert(ctx, CreateQRCodeInput{ContactInfo: map[string]any{"name": "Bob"}})
	require.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Insert(ctx, CreateQRCodeInput{
		ContactInfo: map[string]any{"name": "Bob"},
		QRCodeImage: "   ",
	})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestInsertWithoutConnectionIsStoreUnavailable(t *testing.T) {
	svc := newDisconnectedService(t)

	_, err := svc.Insert(context.Background(), CreateQRCodeInput{
		ContactInfo: map[string]any{"name": "Bob"},
		QRCodeImage: "aGVsbG8=",
	})
	require.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
}

func TestGetByIDRejectsMalformedID(t *testing.T) {
	svc := newDisconnectedService(t)

	// Malformed ids fail before any I/O, even with no connection.
	for _, id := range []string{"", "nope", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := svc.GetByID(context.Background(), id)
		require.ErrorIs(t, err, appErrors.ErrInvalidID, "id %q", id)
	}
}

func TestGetByIDWithoutConnectionIsStoreUnavailable(t *testing.T) {
	svc := newDisconnectedService(t)

	_, err := svc.GetByID(context.Background(), "507f1f77bcf86cd799439011")
	require.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
}

func TestListAllWithoutConnectionIsStoreUnavailable(t *testing.T) {
	svc := newDisconnectedService(t)

	_, err := svc.ListAll(context.Background())
	require.ErrorIs(t, err, appErrors.ErrStoreUnavailable)
}
