package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/repositories/mocks"
)

// LogonServiceTestSuite walks the first-visit logon flow
type LogonServiceTestSuite struct {
	suite.Suite
	mockLogRepo *mocks.MockLogRepository
	sessions    SessionService
	dialogs     DialogService
	logService  LogService
	store       *memoryStore
	ctx         context.Context
}

// SetupTest sets up the test suite before each test
func (suite *LogonServiceTestSuite) SetupTest() {
	suite.mockLogRepo = mocks.NewMockLogRepository(suite.T())
	suite.logService = NewLogService(suite.mockLogRepo, 1)
	suite.sessions = NewSessionService()
	suite.dialogs = NewDialogService(suite.logService)
	suite.store = newMemoryStore()
	suite.ctx = context.Background()
}

func (suite *LogonServiceTestSuite) newService(hash string) LogonService {
	return NewLogonService(suite.sessions, suite.dialogs, suite.logService, hash)
}

func (suite *LogonServiceTestSuite) expectLog(message string) {
	suite.mockLogRepo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(e *models.LogEntry) bool {
		return e.Message == message && e.IP == "10.0.0.1"
	})).Return(nil).Once()
}

// answer submits value to the open dialog and returns the next one
func (suite *LogonServiceTestSuite) answer(svc LogonService, value string) *models.Dialog {
	open := suite.dialogs.Current(suite.store)
	suite.Require().NotNil(open)
	suite.Require().NoError(svc.Answer(suite.ctx, suite.store, models.DialogResult{DialogID: open.ID, Value: value}))
	return suite.dialogs.Current(suite.store)
}

// TestFlow_WithoutPassword tests the full flow when any password is accepted
func (suite *LogonServiceTestSuite) TestFlow_WithoutPassword() {
	svc := suite.newService("")

	sess, err := svc.Begin(suite.ctx, suite.store, "10.0.0.1", "Firefox")
	suite.Require().NoError(err)
	assert.False(suite.T(), sess.IsAuthenticated)

	first := suite.dialogs.Current(suite.store)
	suite.Require().NotNil(first)
	assert.Equal(suite.T(), "TEST", first.Title)
	assert.Equal(suite.T(), "Confirmation Dialog Test", first.Prompt)

	// reloading the page does not queue a second dialog
	_, err = svc.Begin(suite.ctx, suite.store, "10.0.0.1", "Firefox")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), first.ID, suite.dialogs.Current(suite.store).ID)

	password := suite.answer(svc, "")
	suite.Require().NotNil(password)
	assert.Equal(suite.T(), "Enter Password", password.Title)
	assert.Equal(suite.T(), "Password:", password.InputPrompt)
	assert.True(suite.T(), password.IsInput())
	assert.True(suite.T(), password.Masked)

	confirm := suite.answer(svc, "hunter2")
	suite.Require().NotNil(confirm)
	assert.Equal(suite.T(), "Password Test", confirm.Title)
	assert.Equal(suite.T(), "The password is hunter2 for IP 10.0.0.1", confirm.Prompt)

	suite.expectLog(MessageLogon)
	assert.Nil(suite.T(), suite.answer(svc, ""))
	assert.True(suite.T(), suite.sessions.Current(suite.store).IsAuthenticated)

	// an authenticated visitor is not prompted again
	_, err = svc.Begin(suite.ctx, suite.store, "10.0.0.1", "Firefox")
	suite.Require().NoError(err)
	assert.Nil(suite.T(), suite.dialogs.Current(suite.store))
}

// TestFlow_WrongPasswordReprompts tests the bcrypt check
func (suite *LogonServiceTestSuite) TestFlow_WrongPasswordReprompts() {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	suite.Require().NoError(err)
	svc := suite.newService(string(hash))

	_, err = svc.Begin(suite.ctx, suite.store, "10.0.0.1", "Firefox")
	suite.Require().NoError(err)
	suite.answer(svc, "")

	suite.expectLog(MessageLogonFailed)
	retry := suite.answer(svc, "wrong")
	suite.Require().NotNil(retry)
	assert.Equal(suite.T(), "Enter Password", retry.Title)
	assert.False(suite.T(), suite.sessions.Current(suite.store).IsAuthenticated)

	confirm := suite.answer(svc, "correct horse")
	suite.Require().NotNil(confirm)
	assert.Equal(suite.T(), "Password accepted for IP 10.0.0.1", confirm.Prompt)
	assert.NotContains(suite.T(), confirm.Prompt, "correct horse")

	suite.expectLog(MessageLogon)
	suite.answer(svc, "")
	assert.True(suite.T(), suite.sessions.Current(suite.store).IsAuthenticated)
}

// TestAnswer_UnknownDialog tests that stale answers are rejected
func (suite *LogonServiceTestSuite) TestAnswer_UnknownDialog() {
	svc := suite.newService("")
	_, err := svc.Begin(suite.ctx, suite.store, "10.0.0.1", "Firefox")
	suite.Require().NoError(err)

	err = svc.Answer(suite.ctx, suite.store, models.DialogResult{DialogID: "stale"})
	assert.ErrorIs(suite.T(), err, ErrDialogNotFound)
}

// TestLogout tests that a logout is recorded and the session dropped
func (suite *LogonServiceTestSuite) TestLogout() {
	svc := suite.newService("")
	_, err := suite.sessions.Init(suite.store, "10.0.0.1", "Firefox")
	suite.Require().NoError(err)
	_, err = suite.sessions.SetAuthenticated(suite.store, "a@example.com")
	suite.Require().NoError(err)

	suite.expectLog(MessageLogout)
	suite.Require().NoError(svc.Logout(suite.ctx, suite.store))
	assert.Nil(suite.T(), suite.sessions.Current(suite.store))
}

// TestLogonServiceTestSuite runs the test suite
func TestLogonServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LogonServiceTestSuite))
}
