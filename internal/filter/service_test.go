package filter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"daybound/internal/audit"
	"daybound/internal/filter/mocks"
	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
	"daybound/pkg/platform/sentinel"
)

type FilterServiceSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockTimezones      *mocks.MockTimezoneReader
	mockAuditPublisher *mocks.MockAuditPublisher
	service            *Service
	tenantID           id.TenantID
}

func TestFilterServiceSuite(t *testing.T) {
	suite.Run(t, new(FilterServiceSuite))
}

func (s *FilterServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTimezones = mocks.NewMockTimezoneReader(s.ctrl)
	s.mockAuditPublisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.tenantID = id.NewTenantID()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(s.mockTimezones,
		WithLogger(logger),
		WithAuditPublisher(s.mockAuditPublisher),
	)
}

func (s *FilterServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FilterServiceSuite) TestResolveDateRange() {
	s.mockTimezones.EXPECT().
		TimezoneByID(gomock.Any(), s.tenantID).
		Return("Australia/Brisbane", nil)
	s.mockAuditPublisher.EXPECT().
		Emit(gomock.Any(), gomock.AssignableToTypeOf(audit.Event{}))

	got, err := s.service.ResolveDateRange(context.Background(), s.tenantID, "2026-01-30", "2026-01-31")
	s.Require().NoError(err)
	s.Equal("Australia/Brisbane", got.Timezone)
	s.Equal("2026-01-29T14:00:00.000Z", got.CreatedFromUTC)
	s.Equal("2026-01-31T13:59:59.999Z", got.CreatedToUTC)
}

func (s *FilterServiceSuite) TestSingleDayRange() {
	s.mockTimezones.EXPECT().
		TimezoneByID(gomock.Any(), s.tenantID).
		Return("Asia/Kolkata", nil)
	s.mockAuditPublisher.EXPECT().
		Emit(gomock.Any(), gomock.Any())

	got, err := s.service.ResolveDateRange(context.Background(), s.tenantID, "2025-06-15", "2025-06-15")
	s.Require().NoError(err)
	s.Equal("2025-06-14T18:30:00.000Z", got.CreatedFromUTC)
	s.Equal("2025-06-15T18:29:59.999Z", got.CreatedToUTC)
}

func (s *FilterServiceSuite) TestMalformedDates() {
	for _, tc := range []struct{ from, to string }{
		{"2026/01/30", "2026-01-31"},
		{"2026-01-30", "31-01-2026"},
		{"", "2026-01-31"},
		{"2026-13-01", "2026-13-02"},
	} {
		_, err := s.service.ResolveDateRange(context.Background(), s.tenantID, tc.from, tc.to)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), "from=%q to=%q", tc.from, tc.to)
	}
}

func (s *FilterServiceSuite) TestReversedRangeRejected() {
	_, err := s.service.ResolveDateRange(context.Background(), s.tenantID, "2026-02-01", "2026-01-31")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *FilterServiceSuite) TestUnknownTenant() {
	s.mockTimezones.EXPECT().
		TimezoneByID(gomock.Any(), s.tenantID).
		Return("", sentinel.ErrNotFound)

	_, err := s.service.ResolveDateRange(context.Background(), s.tenantID, "2026-01-30", "2026-01-31")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *FilterServiceSuite) TestInactiveTenant() {
	s.mockTimezones.EXPECT().
		TimezoneByID(gomock.Any(), s.tenantID).
		Return("", sentinel.ErrInvalidState)

	_, err := s.service.ResolveDateRange(context.Background(), s.tenantID, "2026-01-30", "2026-01-31")
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *FilterServiceSuite) TestTimezoneLookupFailure() {
	s.mockTimezones.EXPECT().
		TimezoneByID(gomock.Any(), s.tenantID).
		Return("", errors.New("redis: connection refused"))

	_, err := s.service.ResolveDateRange(context.Background(), s.tenantID, "2026-01-30", "2026-01-31")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *FilterServiceSuite) TestCorruptStoredTimezone() {
	s.mockTimezones.EXPECT().
		TimezoneByID(gomock.Any(), s.tenantID).
		Return("Not/AZone", nil)

	_, err := s.service.ResolveDateRange(context.Background(), s.tenantID, "2026-01-30", "2026-01-31")
	s.Require().Error(err)
	// The timezone database error passes through untranslated.
	var de *dErrors.Error
	s.False(errors.As(err, &de))
	s.Contains(err.Error(), "Not/AZone")
}
