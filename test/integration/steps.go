package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the categorization server is running$`, s.theServerIsRunning)
	sc.Step(`^I am authenticated as the test client$`, s.iAmAuthenticatedAsTheTestClient)

	// Request steps
	sc.Step(`^I request the status endpoint$`, s.iRequestTheStatusEndpoint)
	sc.Step(`^I categorize the SMS "([^"]*)"$`, s.iCategorizeTheSMS)
	sc.Step(`^I authenticate with the correct API key$`, s.iAuthenticateWithCorrectAPIKey)
	sc.Step(`^I authenticate with API key "([^"]*)"$`, s.iAuthenticateWithAPIKey)
	sc.Step(`^I list the categorized messages$`, s.iListTheCategorizedMessages)
	sc.Step(`^I add the training sample "([^"]*)" with category "([^"]*)"$`, s.iAddTheTrainingSample)
	sc.Step(`^I retrain the model$`, s.iRetrainTheModel)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^I should receive a service token$`, s.iShouldReceiveAServiceToken)
}

func (s *StepsContext) theServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) doRequest(method, path string, body []byte, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// An empty token sends the request unauthenticated, which lets
	// scenarios assert the 401 behavior.
	if authenticated && s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) iAmAuthenticatedAsTheTestClient() error {
	if err := s.iAuthenticateWithCorrectAPIKey(); err != nil {
		return err
	}
	return s.iShouldReceiveAServiceToken()
}

func (s *StepsContext) iRequestTheStatusEndpoint() error {
	return s.doRequest("GET", "/", nil, false)
}

func (s *StepsContext) iCategorizeTheSMS(smsText string) error {
	body, _ := json.Marshal(map[string]string{"sms_text": smsText})
	return s.doRequest("POST", "/categorize", body, false)
}

func (s *StepsContext) iAuthenticateWithCorrectAPIKey() error {
	return s.iAuthenticateWithAPIKey(TestAPIKey)
}

func (s *StepsContext) iAuthenticateWithAPIKey(apiKey string) error {
	body, _ := json.Marshal(map[string]string{
		"client_id": TestClientID,
		"api_key":   apiKey,
	})
	return s.doRequest("POST", "/authenticate", body, false)
}

func (s *StepsContext) iListTheCategorizedMessages() error {
	return s.doRequest("GET", "/messages", nil, true)
}

func (s *StepsContext) iAddTheTrainingSample(smsText, category string) error {
	body, _ := json.Marshal(map[string]string{
		"sms_text": smsText,
		"category": category,
	})
	return s.doRequest("POST", "/training/samples", body, true)
}

func (s *StepsContext) iRetrainTheModel() error {
	return s.doRequest("POST", "/model/train", nil, true)
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &payload); err != nil {
		return fmt.Errorf("response is not JSON: %w", err)
	}

	value, ok := payload[field]
	if !ok {
		return fmt.Errorf("response has no field %q: %s", field, string(s.responseBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("expected %q to be %q, got %q", field, expected, actual)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(substr string) error {
	if !strings.Contains(string(s.responseBody), substr) {
		return fmt.Errorf("response does not contain %q: %s", substr, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iShouldReceiveAServiceToken() error {
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(s.responseBody, &payload); err != nil {
		return fmt.Errorf("response is not JSON: %w", err)
	}
	if payload.Token == "" {
		return fmt.Errorf("no token in response: %s", string(s.responseBody))
	}
	s.authToken = payload.Token
	return nil
}
