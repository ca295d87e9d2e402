package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/repositories/mocks"
)

// LogServiceTestSuite is a test suite for LogService
type LogServiceTestSuite struct {
	suite.Suite
	service     *logService
	mockLogRepo *mocks.MockLogRepository
	now         time.Time
	ctx         context.Context
}

// SetupTest sets up the test suite before each test
func (suite *LogServiceTestSuite) SetupTest() {
	suite.mockLogRepo = mocks.NewMockLogRepository(suite.T())
	suite.now = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	suite.ctx = context.Background()

	suite.service = NewLogService(suite.mockLogRepo, 1).(*logService)
	suite.service.now = func() time.Time { return suite.now }
}

// TestGetLog_UsesRetentionWindow tests that only the last month is requested
func (suite *LogServiceTestSuite) TestGetLog_UsesRetentionWindow() {
	entries := []models.LogEntry{{ID: 2, Message: "Logon"}, {ID: 1, Message: "Logon"}}
	since := suite.now.AddDate(0, -1, 0)
	suite.mockLogRepo.EXPECT().GetSince(suite.ctx, since).Return(entries, nil)

	// Act
	result, err := suite.service.GetLog(suite.ctx)

	// Assert
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), entries, result)
}

// TestGetLog_RepositoryError tests error wrapping
func (suite *LogServiceTestSuite) TestGetLog_RepositoryError() {
	expectedError := errors.New("database is locked")
	suite.mockLogRepo.EXPECT().GetSince(mock.Anything, mock.Anything).Return(nil, expectedError)

	result, err := suite.service.GetLog(suite.ctx)

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, expectedError)
	assert.Contains(suite.T(), err.Error(), "failed to get log")
}

// TestInsertLogData_StampsEntry tests that the entry carries IP, message and time
func (suite *LogServiceTestSuite) TestInsertLogData_StampsEntry() {
	suite.mockLogRepo.EXPECT().Insert(suite.ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
		return e.IP == "10.0.0.7" && e.Message == "Logon" && e.MessageDate.Equal(suite.now)
	})).Return(nil)

	err := suite.service.InsertLogData(suite.ctx, "Logon", "10.0.0.7")

	assert.NoError(suite.T(), err)
}

// TestDeleteLog_RecordsDeletion tests that a deletion leaves one entry behind
func (suite *LogServiceTestSuite) TestDeleteLog_RecordsDeletion() {
	suite.mockLogRepo.EXPECT().DeleteAll(suite.ctx).Return(int64(12), nil)
	suite.mockLogRepo.EXPECT().Insert(suite.ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
		return e.Message == MessageLogDeleted && e.IP == "::1"
	})).Return(nil)

	deleted, err := suite.service.DeleteLog(suite.ctx, "::1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(12), deleted)
}

// TestDeleteLog_DeleteFails tests that nothing is recorded when the delete fails
func (suite *LogServiceTestSuite) TestDeleteLog_DeleteFails() {
	suite.mockLogRepo.EXPECT().DeleteAll(suite.ctx).Return(int64(0), errors.New("disk I/O error"))

	_, err := suite.service.DeleteLog(suite.ctx, "::1")

	assert.Error(suite.T(), err)
	suite.mockLogRepo.AssertNotCalled(suite.T(), "Insert", mock.Anything, mock.Anything)
}

// TestLogServiceTestSuite runs the test suite
func TestLogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LogServiceTestSuite))
}

func TestNewLogServiceDefaultsRetention(t *testing.T) {
	s := NewLogService(mocks.NewMockLogRepository(t), 0).(*logService)
	assert.Equal(t, DefaultRetentionMonths, s.retentionMonths)
}
