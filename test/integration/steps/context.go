// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/expense-claims/backend/config"
	"github.com/expense-claims/backend/internal/application/usecase/audit"
	"github.com/expense-claims/backend/internal/application/usecase/auth"
	"github.com/expense-claims/backend/internal/application/usecase/category"
	"github.com/expense-claims/backend/internal/application/usecase/dashboard"
	"github.com/expense-claims/backend/internal/application/usecase/expense"
	"github.com/expense-claims/backend/internal/application/usecase/settings"
	"github.com/expense-claims/backend/internal/infra/server/router"
	"github.com/expense-claims/backend/internal/integration/adapters"
	"github.com/expense-claims/backend/internal/integration/entrypoint/controller"
	"github.com/expense-claims/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-claims/backend/internal/integration/persistence/memory"
	"github.com/expense-claims/backend/internal/integration/persistence/seed"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string

	// Domain state captured across steps
	categoryIDs   map[string]string
	lastExpenseID string

	// Config
	cfg *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		_ = os.Setenv("ENV", "test")
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerExpenseSteps(ctx)
	registerResponseSteps(ctx)
}

// newTestContext assembles the full application over fresh in-memory stores
// and starts an HTTP test server for it. Each scenario gets its own server
// and its own data so scenarios cannot observe each other.
func newTestContext() (*TestContext, error) {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = "test-jwt-secret-key-for-testing-purposes"

	seedCtx := context.Background()
	users := seed.Users()
	expenseRepo := memory.NewExpenseRepository()
	categoryRepo := memory.NewCategoryRepository()
	userRepo := memory.NewUserRepository(users...)
	auditLogRepo := memory.NewAuditLogRepository()

	if err := seed.Categories(seedCtx, categoryRepo); err != nil {
		return nil, fmt.Errorf("failed to seed categories: %w", err)
	}

	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	settingsService := adapters.NewSettingsService(&cfg.Expense)

	validateUseCase := expense.NewValidateExpenseUseCase(expenseRepo, categoryRepo, settingsService)
	expenseController := controller.NewExpenseController(
		expense.NewListExpensesUseCase(expenseRepo, categoryRepo, userRepo),
		expense.NewGetExpenseUseCase(expenseRepo, categoryRepo, userRepo, auditLogRepo),
		expense.NewCreateExpenseUseCase(expenseRepo, auditLogRepo, validateUseCase),
		expense.NewUpdateExpenseUseCase(expenseRepo, auditLogRepo, validateUseCase),
		expense.NewDeleteExpenseUseCase(expenseRepo, auditLogRepo),
		expense.NewSubmitExpenseUseCase(expenseRepo, auditLogRepo, settingsService),
		expense.NewApproveExpenseUseCase(expenseRepo, auditLogRepo),
		expense.NewRejectExpenseUseCase(expenseRepo, auditLogRepo),
		expense.NewMarkPaidUseCase(expenseRepo, auditLogRepo),
		validateUseCase,
		&cfg.Expense,
	)

	healthController := controller.NewHealthController(nil)
	authController := controller.NewAuthController(
		auth.NewSwitchUserUseCase(userRepo, tokenService),
		auth.NewListUsersUseCase(userRepo),
	)
	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo),
	)
	dashboardController := controller.NewDashboardController(
		dashboard.NewGetDashboardUseCase(expenseRepo, categoryRepo, userRepo),
	)
	settingsController := controller.NewSettingsController(
		settings.NewGetSettingsUseCase(settingsService),
		settings.NewUpdateSettingsUseCase(settingsService),
		audit.NewListAuditLogsUseCase(auditLogRepo),
	)

	r := router.NewRouter(
		healthController,
		authController,
		expenseController,
		categoryController,
		dashboardController,
		settingsController,
		middleware.NewRateLimiter(),
		middleware.NewAuthMiddleware(tokenService),
	)

	tc := &TestContext{
		requestHeaders: make(map[string]string),
		categoryIDs:    make(map[string]string),
		cfg:            cfg,
	}
	tc.engine = r.Setup("test")
	tc.server = httptest.NewServer(tc.engine)

	categories, err := categoryRepo.FindAll(seedCtx)
	if err != nil {
		tc.server.Close()
		return nil, fmt.Errorf("failed to list seeded categories: %w", err)
	}
	for _, c := range categories {
		tc.categoryIDs[c.Name] = c.ID.String()
	}

	return tc, nil
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am signed in as "([^"]*)"$`, iAmSignedInAs)
	ctx.Step(`^I am not signed in$`, iAmNotSignedIn)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should not exist$`, theResponseFieldShouldNotExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response should match json:$`, theResponseShouldMatchJSON)
}

var categoryPlaceholder = regexp.MustCompile(`\{category_id:([^}]+)\}`)

// expandPlaceholders substitutes IDs captured in earlier steps into endpoint
// paths and request bodies. Supported placeholders are {last_expense_id} and
// {category_id:<Name>}.
func (tc *TestContext) expandPlaceholders(s string) string {
	s = strings.ReplaceAll(s, "{last_expense_id}", tc.lastExpenseID)
	return categoryPlaceholder.ReplaceAllStringFunc(s, func(match string) string {
		name := categoryPlaceholder.FindStringSubmatch(match)[1]
		if id, ok := tc.categoryIDs[name]; ok {
			return id
		}
		return match
	})
}

// doRequest sends a request with the scenario's headers and token and
// captures the response for later assertion steps.
func (tc *TestContext) doRequest(method, endpoint string, body []byte) error {
	url := tc.server.URL + tc.expandPlaceholders(endpoint)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader([]byte(tc.expandPlaceholders(string(body))))
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, []byte(body.Content))
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return nil
}

func iAmSignedInAs(ctx context.Context, username string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	token, err := tc.signIn(username)
	if err != nil {
		return err
	}
	tc.accessToken = token
	return nil
}

func iAmNotSignedIn(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	return nil
}

// signIn exchanges a username for a session token through the switch-user
// endpoint, without touching the scenario's current token.
func (tc *TestContext) signIn(username string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"username": username})
	resp, err := tc.server.Client().Post(
		tc.server.URL+"/api/v1/auth/switch-user",
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to switch user: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read switch-user response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("switch-user for %q returned status %d: %s", username, resp.StatusCode, string(body))
	}

	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("failed to parse switch-user response: %w", err)
	}
	if session.Token == "" {
		return "", fmt.Errorf("switch-user for %q returned an empty token", username)
	}
	return session.Token, nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	expected = tc.expandPlaceholders(expected)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}
	actual := fmt.Sprintf("%v", value)
	expected = tc.expandPlaceholders(expected)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := tc.lookupField(field)
	return err
}

func theResponseFieldShouldNotExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if _, err := tc.lookupField(field); err == nil {
		return fmt.Errorf("field '%s' should not exist. Body: %s", field, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field '%s' is not an array. Body: %s", field, string(tc.responseBody))
	}
	if len(items) != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d. Body: %s", field, expected, len(items), string(tc.responseBody))
	}
	return nil
}

func theResponseShouldMatchJSON(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var expected, actual interface{}
	if err := json.Unmarshal([]byte(tc.expandPlaceholders(body.Content)), &expected); err != nil {
		return fmt.Errorf("failed to parse expected JSON: %w", err)
	}
	if err := json.Unmarshal(tc.responseBody, &actual); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	expectedJSON, _ := json.Marshal(expected)
	actualJSON, _ := json.Marshal(actual)
	if string(expectedJSON) != string(actualJSON) {
		return fmt.Errorf("expected JSON:\n%s\nactual JSON:\n%s", string(expectedJSON), string(actualJSON))
	}
	return nil
}

// lookupField resolves a dot-separated path in the response JSON. Numeric
// segments index into arrays, so "history.0.action" reads the action of the
// newest history entry.
func (tc *TestContext) lookupField(path string) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response. Body: %s", path, string(tc.responseBody))
			}
			current = value
		case []interface{}:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field '%s' not found in response. Body: %s", path, string(tc.responseBody))
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response. Body: %s", path, string(tc.responseBody))
		}
	}
	return current, nil
}
