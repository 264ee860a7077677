package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRCode is the persisted record: a contact payload plus its base64-encoded
// QR code image. Records are immutable once written; the service exposes no
// update or delete path.
type QRCode struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContactInfo any                `bson:"contactInfo" json:"contactInfo"`
	QRCodeImage string             `bson:"qrCodeImage" json:"qrCodeImage"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// QRCodeSummary is the sanitized list view: the image payload is never
// projected into it.
type QRCodeSummary struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContactInfo any                `bson:"contactInfo" json:"contactInfo"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
