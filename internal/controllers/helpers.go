package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
)

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

var validCategories = map[string]bool{
	"microbiology": true,
	"vitamin":      true,
	"biochemistry": true,
	"hematology":   true,
	"immunology":   true,
}

var validOrderStatuses = map[string]bool{
	"pending":     true,
	"in-progress": true,
	"completed":   true,
	"cancelled":   true,
}

var validAppointmentStatuses = map[string]bool{
	"scheduled":   true,
	"in-progress": true,
	"completed":   true,
	"cancelled":   true,
}

// identity reads the caller set into the context by RequireAuth.
func identity(c *gin.Context) (uint, string) {
	return c.MustGet("user_id").(uint), c.MustGet("role").(string)
}

// forbidden is the uniform policy-denial response.
func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"message": "Insufficient permissions"})
}

// serverError logs the cause and answers with a generic message; the
// underlying error never reaches the client.
func serverError(c *gin.Context, err error, context string) {
	logrus.WithError(err).Error(context)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

// isUniqueViolation recognizes a duplicate-key insert: pq code 23505
// against postgres, the constraint message against the sqlite used in
// tests.
func isUniqueViolation(err error) bool {
	if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
