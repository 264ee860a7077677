package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/qrstash/qrstash/internal/database"
	"github.com/qrstash/qrstash/internal/models"
	appErrors "github.com/qrstash/qrstash/pkg/errors"
	"github.com/qrstash/qrstash/pkg/logger"
)

// CollectionName is the single collection holding QR records.
const CollectionName = "qrcodes"

// CreateQRCodeInput captures the fields required to store a record.
type CreateQRCodeInput struct {
	ContactInfo any
	QRCodeImage string
}

// RecordStore describes the persistence operations the handlers rely on.
type RecordStore interface {
	// Insert stores a new record with a server-assigned creation time and
	// returns its identifier.
	Insert(ctx context.Context, input CreateQRCodeInput) (string, error)

	// ListAll returns every record without its image payload, in
	// store-native order.
	ListAll(ctx context.Context) ([]models.QRCodeSummary, error)

	// GetByID returns the full record, including the image payload.
	GetByID(ctx context.Context, id string) (*models.QRCode, error)
}

// QRCodeService is the MongoDB-backed RecordStore.
type QRCodeService struct {
	db  *database.Mongo
	log *zap.Logger
}

// NewQRCodeService constructs a QRCodeService using the provided connection handle.
func NewQRCodeService(db *database.Mongo) (*QRCodeService, error) {
	if db == nil {
		return nil, errors.New("qrcode service: db is required")
	}
	return &QRCodeService{
		db:  db,
		log: logger.WithModule("qrcodes"),
	}, nil
}

// Insert validates the input, stamps createdAt and writes the record.
func (s *QRCodeService) Insert(ctx context.Context, input CreateQRCodeInput) (string, error) {
	if input.ContactInfo == nil || strings.TrimSpace(input.QRCodeImage) == "" {
		return "", appErrors.ErrValidation
	}

	coll := s.db.Collection(CollectionName)
	if coll == nil {
		return "", appErrors.ErrStoreUnavailable
	}

	record := models.QRCode{
		ContactInfo: input.ContactInfo,
		QRCodeImage: input.QRCodeImage,
		CreatedAt:   time.Now().UTC(),
	}

	result, err := coll.InsertOne(ctx, record)
	if err != nil {
		s.log.Error("insert failed", zap.Error(err))
		return "", appErrors.ErrStore.WithInternal(err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", appErrors.ErrStore
	}

	return oid.Hex(), nil
}

// ListAll streams every record through a projection that strips the image
// payload. No sort stage is issued; order is whatever the store returns.
func (s *QRCodeService) ListAll(ctx context.Context) ([]models.QRCodeSummary, error) {
	coll := s.db.Collection(CollectionName)
	if coll == nil {
		return nil, appErrors.ErrStoreUnavailable
	}

	opts := options.Find().SetProjection(bson.M{"qrCodeImage": 0})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		s.log.Error("list failed", zap.Error(err))
		return nil, appErrors.ErrStore.WithInternal(err)
	}
	defer cursor.Close(ctx)

	records := make([]models.QRCodeSummary, 0)
	if err := cursor.All(ctx, &records); err != nil {
		s.log.Error("list decode failed", zap.Error(err))
		return nil, appErrors.ErrStore.WithInternal(err)
	}

	return records, nil
}

// GetByID returns the full record for a well-formed ObjectID hex string.
func (s *QRCodeService) GetByID(ctx context.Context, id string) (*models.QRCode, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, appErrors.ErrInvalidID
	}

	coll := s.db.Collection(CollectionName)
	if coll == nil {
		return nil, appErrors.ErrStoreUnavailable
	}

	var record models.QRCode
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrNotFound
		}
		s.log.Error("get failed", zap.String("id", id), zap.Error(err))
		return nil, appErrors.ErrStore.WithInternal(err)
	}

	return &record, nil
}
