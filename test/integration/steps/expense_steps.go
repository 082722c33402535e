package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cucumber/godog"
)

// registerExpenseSteps registers the domain setup steps. These drive the API
// the same way a client would, so a scenario's Given lines exercise the real
// endpoints rather than reaching into the stores.
func registerExpenseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I have created an expense:$`, iHaveCreatedAnExpense)
	ctx.Step(`^the expense has been submitted$`, theExpenseHasBeenSubmitted)
	ctx.Step(`^"([^"]*)" has approved the expense$`, userHasApprovedTheExpense)
	ctx.Step(`^"([^"]*)" has rejected the expense with reason "([^"]*)"$`, userHasRejectedTheExpense)
	ctx.Step(`^the auto-approval threshold is "([^"]*)"$`, theAutoApprovalThresholdIs)
}

// apiCall sends a request with an explicit token and returns the raw result.
// Unlike doRequest it leaves the scenario's captured response untouched, so
// setup steps do not interfere with later assertions.
func (tc *TestContext) apiCall(token, method, endpoint string, body []byte) (int, []byte, error) {
	url := tc.server.URL + tc.expandPlaceholders(endpoint)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader([]byte(tc.expandPlaceholders(string(body))))
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func iHaveCreatedAnExpense(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.accessToken == "" {
		return fmt.Errorf("no user is signed in")
	}

	status, respBody, err := tc.apiCall(tc.accessToken, http.MethodPost, "/api/v1/expenses", []byte(body.Content))
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("expected status 201 creating expense, got %d: %s", status, string(respBody))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return fmt.Errorf("failed to parse created expense: %w", err)
	}
	if created.ID == "" {
		return fmt.Errorf("created expense has no id: %s", string(respBody))
	}
	tc.lastExpenseID = created.ID
	return nil
}

func theExpenseHasBeenSubmitted(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	status, respBody, err := tc.apiCall(tc.accessToken, http.MethodPost, "/api/v1/expenses/{last_expense_id}/submit", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("expected status 200 submitting expense, got %d: %s", status, string(respBody))
	}
	return nil
}

func userHasApprovedTheExpense(ctx context.Context, username string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	token, err := tc.signIn(username)
	if err != nil {
		return err
	}
	status, respBody, err := tc.apiCall(token, http.MethodPost, "/api/v1/expenses/{last_expense_id}/approve", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("expected status 200 approving expense, got %d: %s", status, string(respBody))
	}
	return nil
}

func userHasRejectedTheExpense(ctx context.Context, username, reason string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	token, err := tc.signIn(username)
	if err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]string{"reason": reason})
	status, respBody, err := tc.apiCall(token, http.MethodPost, "/api/v1/expenses/{last_expense_id}/reject", payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("expected status 200 rejecting expense, got %d: %s", status, string(respBody))
	}
	return nil
}

func theAutoApprovalThresholdIs(ctx context.Context, threshold string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	amount, err := strconv.ParseFloat(threshold, 64)
	if err != nil {
		return fmt.Errorf("invalid threshold %q: %w", threshold, err)
	}

	token, err := tc.signIn("alice.manager")
	if err != nil {
		return err
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"auto_approval_threshold": amount,
		"allowed_currencies":      tc.cfg.Expense.AllowedCurrencies,
		"default_currency":        tc.cfg.Expense.DefaultCurrency,
	})
	status, respBody, err := tc.apiCall(token, http.MethodPut, "/api/v1/settings", payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("expected status 200 updating settings, got %d: %s", status, string(respBody))
	}
	return nil
}
