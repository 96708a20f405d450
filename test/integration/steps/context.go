// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	testResendAPIKey = "re_test_key"
	// testMaxUploadBytes keeps oversize upload scenarios small.
	testMaxUploadBytes = 64 * 1024
)

// suite holds resources shared by every scenario.
type suite struct {
	server    *httptest.Server
	injector  *dependency.Injector
	db        *mock.Db
	redis     *mock.Redis
	extractor *mock.Extractor
	resendAPI *mock.EmailAPI
	clock     *mock.Time
}

var shared *suite

// TestContext holds the state of a single scenario.
type TestContext struct {
	*suite

	client       *http.Client
	headers      map[string]string
	accessToken  string
	ownerIDs     map[string]uuid.UUID
	currentOwner string
	response     *response

	lastTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
	raw    []byte
}

// InitializeTestSuite builds the application once against sqlite, miniredis and mocked services.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			db:        mock.NewDb(&model.TransactionModel{}),
			redis:     mock.NewRedis(),
			extractor: mock.NewExtractor(),
			resendAPI: mock.NewEmailAPI(),
			clock:     mock.NewTime(),
		}
		s.resendAPI.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.AccessTokenExpiry = 15 * time.Minute
		cfg.Upload.MaxBytes = testMaxUploadBytes
		cfg.Upload.RateLimit = 1000
		cfg.Upload.RateWindow = time.Minute
		cfg.Pagination.DefaultLimit = 10
		cfg.Pagination.MaxLimit = 100
		cfg.Analytics.BatchSize = 2
		cfg.Analytics.CacheTTL = time.Minute
		cfg.Email.ImportNotifications = true

		sender, err := email.NewResendClient(email.ResendConfig{
			APIKey:    testResendAPIKey,
			FromName:  "Expense Tracker",
			FromEmail: "noreply@example.com",
			BaseURL:   s.resendAPI.GetUrl(),
		})
		if err != nil {
			panic(err)
		}

		injector, err := dependency.NewInjector(cfg, dependency.Dependencies{
			Database:    db.NewDatabase(s.db.DbConn),
			Redis:       s.redis.Client,
			Extractor:   s.extractor,
			EmailSender: sender,
			Clock:       s.clock.Now,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to build application: %v", err))
		}

		s.injector = injector
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
		shared = s
	})

	ctx.AfterSuite(func() {
		if shared != nil && shared.server != nil {
			shared.server.Close()
			shared.resendAPI.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &TestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, tc.theAPIServerIsRunning)

	// Auth steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, tc.iAmAuthenticatedAs)
	ctx.Given(`^I am not authenticated$`, tc.iAmNotAuthenticated)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, tc.theHeaderContainsTheKeyWith)

	// Data setup steps
	ctx.Given(`^the following transactions exist for "([^"]*)":$`, tc.theFollowingTransactionsExistFor)
	ctx.Given(`^(\d+) "([^"]*)" transactions of "([^"]*)" exist for "([^"]*)" on "([^"]*)"$`, tc.nTransactionsExistFor)
	ctx.Given(`^the current time is "([^"]*)"$`, tc.theCurrentTimeIs)
	ctx.Given(`^the text extractor is failing$`, tc.theTextExtractorIsFailing)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	ctx.When(`^I upload "([^"]*)" as "([^"]*)" to "([^"]*)" with content:$`, tc.iUploadWithContent)
	ctx.When(`^I upload an empty file "([^"]*)" as "([^"]*)" to "([^"]*)"$`, tc.iUploadAnEmptyFile)
	ctx.When(`^I upload (\d+) bytes as "([^"]*)" to "([^"]*)"$`, tc.iUploadBytes)
	ctx.When(`^I send a multipart request without a file to "([^"]*)"$`, tc.iSendAMultipartRequestWithoutAFile)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, tc.theResponseShouldBeJSON)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, tc.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, tc.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response field "([^"]*)" should be close to the current time$`, tc.theResponseFieldShouldBeCloseToTheCurrentTime)

	// Database and cache assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, tc.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, tc.theDbShouldContainObjectsInWithTheValues)
	ctx.Step(`^the analytics cache should contain an entry for "([^"]*)"$`, tc.theAnalyticsCacheShouldContainAnEntryFor)
	ctx.Then(`^the analytics cache should not contain an entry for "([^"]*)"$`, tc.theAnalyticsCacheShouldNotContainAnEntryFor)

	// Email assertion steps
	ctx.Then(`^the email API should have received (\d+) requests?$`, tc.theEmailAPIShouldHaveReceivedRequests)
	ctx.Then(`^the last email should be sent to "([^"]*)"$`, tc.theLastEmailShouldBeSentTo)
}

func (t *TestContext) before() error {
	t.suite = shared
	t.client = &http.Client{Timeout: 10 * time.Second}
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.ownerIDs = make(map[string]uuid.UUID)
	t.currentOwner = ""
	t.response = nil
	t.lastTransactionID = uuid.Nil

	if t.suite == nil {
		return fmt.Errorf("test suite was not initialized")
	}

	t.clock.Reset()
	t.extractor.SetFailing(false)
	t.injector.RateLimiter.Reset()
	t.resendAPI.Reset()
	t.resendAPI.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": uuid.NewString()})

	t.redis.Flush()
	return t.db.ClearDB()
}

func (t *TestContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// ownerID returns a stable owner id for the email within the scenario.
func (t *TestContext) ownerID(email string) uuid.UUID {
	if id, ok := t.ownerIDs[email]; ok {
		return id
	}
	id := uuid.New()
	t.ownerIDs[email] = id
	return id
}

func (t *TestContext) iAmAuthenticatedAs(email string) error {
	token, err := t.injector.TokenService.IssueOwnerToken(context.Background(), t.ownerID(email), email)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	t.currentOwner = email
	return nil
}

func (t *TestContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	t.currentOwner = ""
	return nil
}

func (t *TestContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *TestContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.clock.SetCurrentTime(now)
	return nil
}

func (t *TestContext) theTextExtractorIsFailing() error {
	t.extractor.SetFailing(true)
	return nil
}
