package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldbooking/internal/delivery/http/helpers"
	"fieldbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportController_FieldUsage(t *testing.T) {
	rows := []*domain.FieldReport{{FieldID: fieldUUID, FieldName: "Court 1", ReservationCount: 3, BookedMinutes: 180, PaidCount: 1, Revenue: 4000}}

	tests := []struct {
		name       string
		query      string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{name: "ok", query: "?from=2026-05-01T00:00:00Z&to=2026-06-01T00:00:00Z", wantStatus: http.StatusOK},
		{name: "missing from", query: "?to=2026-06-01T00:00:00Z", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "bad to", query: "?from=2026-05-01T00:00:00Z&to=june", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "inverted range", query: "?from=2026-06-01T00:00:00Z&to=2026-05-01T00:00:00Z", svcErr: domain.ErrInvalidRange, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "store failure", query: "?from=2026-05-01T00:00:00Z&to=2026-06-01T00:00:00Z", svcErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeReportService{rows: rows, err: tt.svcErr}
			ctrl := NewReportController(testLogger, fake)

			req := httptest.NewRequest(http.MethodGet, "/admin/reports/fields"+tt.query, nil)
			rr := httptest.NewRecorder()
			ctrl.FieldUsage(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var got []*domain.FieldReport
			envelope := decodeEnvelope(t, rr, &got)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, int64(4000), got[0].Revenue)
			assert.True(t, fake.lastFrom.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
		})
	}
}
