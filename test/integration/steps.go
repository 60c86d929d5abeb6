package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/cucumber/godog"
)

// scenarioCounter keeps accounts unique across scenarios sharing a database
var scenarioCounter int32

type testAccount struct {
	Email    string
	Password string
	Token    string
}

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	suffix       string
	accounts     map[string]*testAccount
	projects     map[string]uint
	requirements map[string]uint
	response     *http.Response
	responseBody []byte
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:           tc,
		suffix:       fmt.Sprintf("%d", atomic.AddInt32(&scenarioCounter, 1)),
		accounts:     make(map[string]*testAccount),
		projects:     make(map[string]uint),
		requirements: make(map[string]uint),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a registered owner "([^"]*)"$`, s.aRegisteredOwner)
	sc.Step(`^a registered customer "([^"]*)"$`, s.aRegisteredCustomer)

	sc.Step(`^"([^"]*)" creates a project named "([^"]*)"$`, s.createsProject)
	sc.Step(`^"([^"]*)" lists the project catalog$`, s.listsCatalog)
	sc.Step(`^"([^"]*)" lists their own projects$`, s.listsOwnProjects)
	sc.Step(`^an anonymous request lists the project catalog$`, s.anonymousListsCatalog)

	sc.Step(`^"([^"]*)" adds a requirement "([^"]*)" to "([^"]*)"$`, s.addsRequirement)
	sc.Step(`^"([^"]*)" lists requirements of "([^"]*)"$`, s.listsRequirements)
	sc.Step(`^"([^"]*)" updates the description of requirement "([^"]*)" to "([^"]*)"$`, s.updatesRequirement)
	sc.Step(`^"([^"]*)" marks requirement "([^"]*)" as "([^"]*)"$`, s.marksRequirement)
	sc.Step(`^"([^"]*)" deletes requirement "([^"]*)"$`, s.deletesRequirement)

	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the response should not contain "([^"]*)"$`, s.theResponseShouldNotContain)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, s.theResponseHeaderShouldBe)
}

// register creates an account via the public API and logs it in.
func (s *StepsContext) register(alias, role string) error {
	account := &testAccount{
		Email:    fmt.Sprintf("%s-%s@example.com", alias, s.suffix),
		Password: "password-" + alias,
	}

	body := map[string]string{
		"username": fmt.Sprintf("%s-%s", alias, s.suffix),
		"email":    account.Email,
		"password": account.Password,
		"role":     role,
	}
	if err := s.doJSON("POST", "/users/register", "", body); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration of %s failed with status %d: %s", alias, s.response.StatusCode, s.responseBody)
	}

	form := url.Values{}
	form.Set("username", account.Email)
	form.Set("password", account.Password)

	resp, err := s.tc.HTTPClient.Post(
		s.tc.ServerURL+"/users/token",
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login of %s failed with status %d", alias, resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return err
	}
	account.Token = token.AccessToken

	s.accounts[alias] = account
	return nil
}

func (s *StepsContext) aRegisteredOwner(alias string) error {
	return s.register(alias, "owner")
}

func (s *StepsContext) aRegisteredCustomer(alias string) error {
	return s.register(alias, "customer")
}

func (s *StepsContext) tokenOf(alias string) (string, error) {
	account, ok := s.accounts[alias]
	if !ok {
		return "", fmt.Errorf("no registered account %q in this scenario", alias)
	}
	return account.Token, nil
}

// doJSON performs a request with an optional JSON body and captures the
// response for later assertion steps.
func (s *StepsContext) doJSON(method, path, token string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) createsProject(alias, name string) error {
	token, err := s.tokenOf(alias)
	if err != nil {
		return err
	}

	if err := s.doJSON("POST", "/projects", token, map[string]string{"name": name}); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusCreated {
		var project struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &project); err != nil {
			return err
		}
		s.projects[name] = project.ID
	}
	return nil
}

func (s *StepsContext) listsCatalog(alias string) error {
	token, err := s.tokenOf(alias)
	if err != nil {
		return err
	}
	return s.doJSON("GET", "/projects", token, nil)
}

func (s *StepsContext) listsOwnProjects(alias string) error {
	token, err := s.tokenOf(alias)
	if err != nil {
		return err
	}
	return s.doJSON("GET", "/projects/owner", token, nil)
}

func (s *StepsContext) anonymousListsCatalog() error {
	return s.doJSON("GET", "/projects", "", nil)
}

func (s *StepsContext) addsRequirement(alias, description, projectName string) error {
	token, err := s.tokenOf(alias)
	if err != nil {
		return err
	}

	projectID, ok := s.projects[projectName]
	if !ok {
		return fmt.Errorf("no project %q recorded in this scenario", projectName)
	}

	path := fmt.Sprintf("/projects/%d/requirements", projectID)
	if err := s.doJSON("POST", path, token, map[string]string{"description": description}); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusCreated {
		var requirement struct {
			ID uint `json:"id"`
		}
		if err := json.Unmarshal(s.responseBody, &requirement); err != nil {
			return err
		}
		s.requirements[description] = requirement.ID
	}
	return nil
}

func (s *StepsContext) listsRequirements(alias, projectName string) error {
	token, err := s.tokenOf(alias)
	if err != nil {
		return err
	}

	projectID, ok := s.projects[projectName]
	if !ok {
		return fmt.Errorf("no project %q recorded in this scenario", projectName)
	}

	return s.doJSON("GET", fmt.Sprintf("/projects/%d/requirements", projectID), token, nil)
}

func (s *StepsContext) updatesRequirement(alias, description, newDescription string) error {
	token, err := s.tokenOf(alias)
	if err != nil {
		return err
	}

	id, ok := s.requirements[description]
	if !ok {
		return fmt.Errorf("no requirement %q recorded in this scenario", description)
	}

	return s.doJSON("PUT", fmt.Sprintf("/requirements/%d", id), token, map[string]string{
		"description": newDescription,
	})
}

func (s *StepsContext) marksRequirement(alias, description, status string) error {
	token, err := s.tokenOf(alias)
	if err != nil {
		return err
	}

	id, ok := s.requirements[description]
	if !ok {
		return fmt.Errorf("no requirement %q recorded in this scenario", description)
	}

	return s.doJSON("PATCH", fmt.Sprintf("/requirements/%d/status", id), token, map[string]string{
		"status": status,
	})
}

func (s *StepsContext) deletesRequirement(alias, description string) error {
	token, err := s.tokenOf(alias)
	if err != nil {
		return err
	}

	id, ok := s.requirements[description]
	if !ok {
		return fmt.Errorf("no requirement %q recorded in this scenario", description)
	}

	return s.doJSON("DELETE", fmt.Sprintf("/requirements/%d", id), token, nil)
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(substr string) error {
	if !strings.Contains(string(s.responseBody), substr) {
		return fmt.Errorf("expected response to contain %q, got: %s", substr, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldNotContain(substr string) error {
	if strings.Contains(string(s.responseBody), substr) {
		return fmt.Errorf("expected response to not contain %q, got: %s", substr, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseHeaderShouldBe(name, value string) error {
	if got := s.response.Header.Get(name); got != value {
		return fmt.Errorf("expected header %s to be %q, got %q", name, value, got)
	}
	return nil
}
