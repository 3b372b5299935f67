package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for new users. Version 7 UUIDs sort by
// creation time, which keeps the primary key index append-mostly.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsUUID reports whether s parses as a UUID. Path parameters are checked with
// it before they reach the database.
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}
