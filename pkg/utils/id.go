package utils

import "github.com/google/uuid"

func NewID() string { return uuid.NewString() }

// ValidID reports whether s is a well-formed entity id.
func ValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
