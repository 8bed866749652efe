package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewObjectID returns a fresh 24-hex-character identifier. Documents keep
// the object id format the site's clients already use in URLs.
func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidObjectID reports whether id is a well formed 24-hex object id.
func IsValidObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
