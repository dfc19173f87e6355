package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taxIDPayload struct {
	TaxID string `json:"tax_id" binding:"required,es_taxid"`
}

func newValidationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	require.NoError(t, SetupValidator())

	engine := gin.New()
	engine.POST("/check", func(c *gin.Context) {
		var payload taxIDPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"details": FormatValidationErrors(err)})
			return
		}
		c.Status(http.StatusOK)
	})
	return engine
}

func postTaxID(engine *gin.Engine, taxID string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"tax_id":"` + taxID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/check", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSpanishTaxIDValidator(t *testing.T) {
	engine := newValidationRouter(t)

	valid := []string{
		"12345678Z", // NIF with correct control letter
		"00000000T",
		"X1234567L", // NIE
		"B12345678", // CIF, company
		"H87654321", // CIF, comunidad de propietarios
		"b12345678", // lowercase accepted
		"12345678-Z",
	}
	for _, id := range valid {
		t.Run("valid "+id, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, postTaxID(engine, id).Code)
		})
	}

	invalid := []string{
		"12345678A", // wrong control letter
		"12345678",  // too short
		"123456789", // no control letter
		"I1234567A", // I is not a CIF entity letter
		"X1234567A", // wrong NIE control letter
		"1234567890",
		"ZZZZZZZZZ",
	}
	for _, id := range invalid {
		t.Run("invalid "+id, func(t *testing.T) {
			w := postTaxID(engine, id)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "NIF")
		})
	}
}

func TestFormatValidationErrors_UsesJSONFieldNames(t *testing.T) {
	engine := newValidationRouter(t)

	w := postTaxID(engine, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"tax_id"`)
	assert.Contains(t, w.Body.String(), "required")
}
