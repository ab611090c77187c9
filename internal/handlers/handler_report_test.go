package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/SscSPs/activity_tracker/internal/handlers"
	"github.com/SscSPs/activity_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) reportResult(args mock.Arguments) (*domain.ActivityReport, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityReport), args.Error(1)
}

func (m *MockReportService) GetReport(ctx context.Context, userID, reportID string) (*domain.ActivityReport, error) {
	return m.reportResult(m.Called(ctx, userID, reportID))
}
func (m *MockReportService) ListReports(ctx context.Context, userID string, filter domain.ReportFilter) ([]domain.ActivityReport, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityReport), args.Error(1)
}
func (m *MockReportService) CreateReport(ctx context.Context, req dto.CreateReportRequest, userID string) (*domain.ActivityReport, error) {
	return m.reportResult(m.Called(ctx, req, userID))
}
func (m *MockReportService) UpdateReport(ctx context.Context, reportID string, update domain.ReportUpdate, userID string) (*domain.ActivityReport, error) {
	return m.reportResult(m.Called(ctx, reportID, update, userID))
}
func (m *MockReportService) SetStatus(ctx context.Context, reportID string, status domain.ReportStatus, userID string) (*domain.ActivityReport, error) {
	return m.reportResult(m.Called(ctx, reportID, status, userID))
}
func (m *MockReportService) ApplyEntryUpdates(ctx context.Context, reportID string, updates []domain.EntryUpdate, userID string) (*domain.ActivityReport, error) {
	return m.reportResult(m.Called(ctx, reportID, updates, userID))
}
func (m *MockReportService) AutoFill(ctx context.Context, reportID, userID string) (*domain.ActivityReport, error) {
	return m.reportResult(m.Called(ctx, reportID, userID))
}
func (m *MockReportService) Clear(ctx context.Context, reportID, userID string) (*domain.ActivityReport, error) {
	return m.reportResult(m.Called(ctx, reportID, userID))
}
func (m *MockReportService) DeleteReport(ctx context.Context, reportID, userID string) error {
	return m.Called(ctx, reportID, userID).Error(0)
}
func (m *MockReportService) ExportReport(ctx context.Context, reportID, userID string, w io.Writer) (string, error) {
	args := m.Called(ctx, reportID, userID, w)
	if body := args.String(2); body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.String(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportSvcFacade = (*MockReportService)(nil)

type ReportHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockReportService *MockReportService
	jwtSecret         string
	userID            string
}

func (suite *ReportHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    "activity-tracker-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ReportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = "user-1"

	suite.mockReportService = new(MockReportService)
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, ""))
	handlers.RegisterReportRoutes(v1, suite.mockReportService)
}

func (suite *ReportHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			suite.Require().NoError(err)
			reader = bytes.NewReader(raw)
		}
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func draftReport(id string) *domain.ActivityReport {
	return &domain.ActivityReport{
		ReportID:  id,
		MissionID: "mission-1",
		Month:     2,
		Year:      2026,
		Status:    domain.ReportStatusDraft,
		TotalDays: decimal.Zero,
		Entries: []domain.ReportEntry{
			{EntryID: "e1", ReportID: id, Date: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), Value: decimal.Zero},
		},
	}
}

func (suite *ReportHandlerTestSuite) TestCreateReport_Success() {
	req := dto.CreateReportRequest{MissionID: "mission-1", Month: 2, Year: 2026}
	suite.mockReportService.On("CreateReport", mock.Anything, req, suite.userID).Return(draftReport("r1"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/reports", req)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.ReportResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("r1", res.ReportID)
	suite.Equal(domain.ReportStatusDraft, res.Status)
	suite.mockReportService.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestCreateReport_InvalidMonth() {
	w := suite.do(http.MethodPost, "/api/v1/reports", `{"missionID":"mission-1","month":13,"year":2026}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportService.AssertNotCalled(suite.T(), "CreateReport")
}

func (suite *ReportHandlerTestSuite) TestCreateReport_Duplicate() {
	req := dto.CreateReportRequest{MissionID: "mission-1", Month: 2, Year: 2026}
	suite.mockReportService.On("CreateReport", mock.Anything, req, suite.userID).
		Return(nil, fmt.Errorf("%w: already there", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/reports", req)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ReportHandlerTestSuite) TestUpdateEntries_PassesNullNoteAsClear() {
	half := decimal.RequireFromString("0.5")
	suite.mockReportService.On("ApplyEntryUpdates", mock.Anything, "r1",
		mock.MatchedBy(func(updates []domain.EntryUpdate) bool {
			return len(updates) == 2 &&
				updates[0].EntryID == "e1" && updates[0].Value != nil && updates[0].Value.Equal(half) && !updates[0].NoteSet &&
				updates[1].EntryID == "e2" && updates[1].Value == nil && updates[1].NoteSet && updates[1].Note == nil
		}), suite.userID).Return(draftReport("r1"), nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/reports/r1/entries",
		`{"entries":[{"id":"e1","value":0.5},{"id":"e2","note":null}]}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportService.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestUpdateEntries_RejectsInvalidValue() {
	w := suite.do(http.MethodPatch, "/api/v1/reports/r1/entries", `{"entries":[{"id":"e1","value":0.7}]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportService.AssertNotCalled(suite.T(), "ApplyEntryUpdates")
}

func (suite *ReportHandlerTestSuite) TestUpdateEntries_CompletedReportConflict() {
	suite.mockReportService.On("ApplyEntryUpdates", mock.Anything, "r1", mock.Anything, suite.userID).
		Return(nil, apperrors.ErrReportCompleted).Once()

	w := suite.do(http.MethodPatch, "/api/v1/reports/r1/entries", `{"entries":[{"id":"e1","value":1}]}`)

	suite.Equal(http.StatusConflict, w.Code)
	var body map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("report_completed", body["code"])
}

func (suite *ReportHandlerTestSuite) TestUpdateReport_StatusOnly() {
	completed := domain.ReportStatusCompleted
	expected := domain.ReportUpdate{Status: &completed}
	res := draftReport("r1")
	res.Status = domain.ReportStatusCompleted
	suite.mockReportService.On("UpdateReport", mock.Anything, "r1", expected, suite.userID).Return(res, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/reports/r1", `{"status":"COMPLETED"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportService.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestUpdateReport_UnknownStatus() {
	w := suite.do(http.MethodPatch, "/api/v1/reports/r1", `{"status":"ARCHIVED"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReportHandlerTestSuite) TestGetReport_NotFound() {
	suite.mockReportService.On("GetReport", mock.Anything, suite.userID, "missing").
		Return(nil, fmt.Errorf("%w: report missing", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ReportHandlerTestSuite) TestListReports_Filter() {
	filter := domain.ReportFilter{Year: 2026, Status: domain.ReportStatusCompleted}
	suite.mockReportService.On("ListReports", mock.Anything, suite.userID, filter).
		Return([]domain.ActivityReport{*draftReport("r1")}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports?year=2026&status=COMPLETED", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportService.AssertExpectations(suite.T())
}

func (suite *ReportHandlerTestSuite) TestExportReport_Draft() {
	suite.mockReportService.On("ExportReport", mock.Anything, "r1", suite.userID, mock.Anything).
		Return("", apperrors.ErrReportDraft, "").Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/r1/export", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "report_draft")
}

func (suite *ReportHandlerTestSuite) TestExportReport_Success() {
	suite.mockReportService.On("ExportReport", mock.Anything, "r1", suite.userID, mock.Anything).
		Return("activity-report-2026-02-r1.xlsx", nil, "PK-bytes").Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/r1/export", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "activity-report-2026-02-r1.xlsx")
	suite.Equal("PK-bytes", w.Body.String())
}

func (suite *ReportHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestReportHandler(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
