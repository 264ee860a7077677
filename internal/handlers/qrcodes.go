package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/qrstash/qrstash/internal/services"
	appErrors "github.com/qrstash/qrstash/pkg/errors"
	"github.com/qrstash/qrstash/pkg/metrics"
	"github.com/qrstash/qrstash/pkg/qr"
	"github.com/qrstash/qrstash/pkg/response"
)

// StoreConn is the slice of the connection manager the handlers need:
// the guarded reconnect-on-demand call and the cached state for status
// reporting. *database.Mongo satisfies it.
type StoreConn interface {
	EnsureConnected(ctx context.Context) error
	State() string
}

// QRCodeHandler exposes the HTTP endpoints for QR records.
type QRCodeHandler struct {
	conn  StoreConn
	store services.RecordStore
}

// NewQRCodeHandler constructs a QR code handler.
func NewQRCodeHandler(conn StoreConn, store services.RecordStore) (*QRCodeHandler, error) {
	if conn == nil {
		return nil, errors.New("qrcode handler: connection is required")
	}
	if store == nil {
		return nil, errors.New("qrcode handler: store is required")
	}
	return &QRCodeHandler{conn: conn, store: store}, nil
}

type createQRCodeRequest struct {
	ContactInfo any    `json:"contactInfo" validate:"required"`
	QRCodeImage string `json:"qrCodeImage" validate:"required"`
}

type generateQRCodeRequest struct {
	ContactInfo any `json:"contactInfo" validate:"required"`
}

// Create stores a contact record with its client-supplied QR code image.
func (h *QRCodeHandler) Create(c *gin.Context) {
	var payload createQRCodeRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	if !h.ensureStore(c) {
		return
	}

	id, err := h.store.Insert(requestContext(c), services.CreateQRCodeInput{
		ContactInfo: payload.ContactInfo,
		QRCodeImage: payload.QRCodeImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.RecordsCreated.WithLabelValues("upload").Inc()
	response.Created(c, gin.H{
		"id":      id,
		"message": "QR code saved successfully",
	})
}

// Generate renders the QR code server-side from the contact payload, stores
// the record and returns the generated image alongside the id.
func (h *QRCodeHandler) Generate(c *gin.Context) {
	var payload generateQRCodeRequest
	if !bindAndValidate(c, &payload) {
		return
	}

	image, err := qr.EncodeContact(payload.ContactInfo, qr.DefaultSize)
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("contactInfo cannot be encoded as a QR code"))
		return
	}

	if !h.ensureStore(c) {
		return
	}

	id, err := h.store.Insert(requestContext(c), services.CreateQRCodeInput{
		ContactInfo: payload.ContactInfo,
		QRCodeImage: image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.RecordsCreated.WithLabelValues("generated").Inc()
	response.Created(c, gin.H{
		"id":          id,
		"qrCodeImage": image,
		"message":     "QR code generated and saved successfully",
	})
}

// List returns every stored record without image payloads.
func (h *QRCodeHandler) List(c *gin.Context) {
	if !h.ensureStore(c) {
		return
	}

	records, err := h.store.ListAll(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Get returns the full record, image payload included. Malformed ids are
// rejected before the connection is touched so they surface as 400 even
// when the store is down.
func (h *QRCodeHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !primitive.IsValidObjectID(id) {
		response.Error(c, appErrors.ErrInvalidID)
		return
	}

	if !h.ensureStore(c) {
		return
	}

	record, err := h.store.GetByID(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ensureStore makes the single per-request reconnect attempt. When it fails
// the 500 envelope is written and false returned.
func (h *QRCodeHandler) ensureStore(c *gin.Context) bool {
	if err := h.conn.EnsureConnected(requestContext(c)); err != nil {
		response.Error(c, appErrors.ErrStoreUnavailable.WithInternal(err).
			WithMessage("Database unavailable: reconnect attempt failed"))
		return false
	}
	return true
}
