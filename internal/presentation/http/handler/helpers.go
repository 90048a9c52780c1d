package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetOperatorID extracts the operator ID from the Gin context
func GetOperatorID(c *gin.Context) *uuid.UUID {
	operatorIDVal, exists := c.Get("operator_id")
	if !exists {
		return nil
	}
	operatorID, ok := operatorIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &operatorID
}

// GetOperatorEmail extracts the operator email from the Gin context
func GetOperatorEmail(c *gin.Context) string {
	email, exists := c.Get("operator_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// parseUUIDParam parses a UUID path parameter, returning uuid.Nil when
// the value is missing or malformed.
func parseUUIDParam(c *gin.Context, name string) uuid.UUID {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil
	}
	return id
}
