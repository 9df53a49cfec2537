package rest

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/domain"
)

func TestWriteServiceError(t *testing.T) {
	t.Run("FlatEnvelope", func(t *testing.T) {
		rp := &responder{}
		rec := httptest.NewRecorder()
		rp.writeServiceError(rec, &domain.EquipmentUnavailableError{Items: []string{"Drill (ID: 10)"}})

		assert.Equal(t, http.StatusConflict, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		// code, message and details sit at the top level.
		assert.Equal(t, "equipment_unavailable", body["code"])
		assert.NotEmpty(t, body["message"])
		assert.Equal(t, []interface{}{"Drill (ID: 10)"}, body["details"])
		assert.NotContains(t, body, "error")
	})

	t.Run("StatusMapping", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{domain.ErrAlreadyPaid, http.StatusConflict},
			{domain.NewValidationError("bad"), http.StatusBadRequest},
			{domain.ErrNotFound, http.StatusNotFound},
			{domain.ErrPermissionDenied, http.StatusForbidden},
		}
		for _, tc := range cases {
			rp := &responder{}
			rec := httptest.NewRecorder()
			rp.writeServiceError(rec, tc.err)
			assert.Equal(t, tc.code, rec.Code, "error %v", tc.err)
		}
	})
}

func TestPagination(t *testing.T) {
	s := &Server{cfg: &config.Config{API: config.APIConfig{PageSize: 50, MaxPageSize: 200}}}

	req := func(query string) *http.Request {
		return httptest.NewRequest(http.MethodGet, "/api/v1/equipment?"+query, nil)
	}

	t.Run("Defaults", func(t *testing.T) {
		page, pageSize := s.pagination(req(""))
		assert.Equal(t, int32(1), page)
		assert.Equal(t, int32(50), pageSize)
	})

	t.Run("ClampsPageSize", func(t *testing.T) {
		_, pageSize := s.pagination(req("page_size=100000"))
		assert.Equal(t, int32(200), pageSize)
	})

	t.Run("HugePageStaysInOffsetRange", func(t *testing.T) {
		page, pageSize := s.pagination(req("page=99999999999999"))
		offset := int64(page-1) * int64(pageSize)
		assert.Greater(t, page, int32(0))
		assert.LessOrEqual(t, offset, int64(math.MaxInt32))
	})

	t.Run("NegativeIgnored", func(t *testing.T) {
		page, pageSize := s.pagination(req("page=-4&page_size=-10"))
		assert.Equal(t, int32(1), page)
		assert.Equal(t, int32(50), pageSize)
	})
}
