package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/clement-dufour/maraude-cli/rema"
)

const authTicketFile = "auth-ticket.json"

// ErrDataUnavailable is returned when both the REMA API and the static
// fallback snapshot failed. It is the only hard failure FetchHouseholds
// can produce.
var ErrDataUnavailable = errors.New("ménage data unavailable: API and fallback both failed")

// RateLimitError rejects a login attempt locally, before the server is
// contacted, until the lockout window has drained.
type RateLimitError struct {
	Remaining time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many login attempts, retry in %s", e.Remaining.Round(time.Second))
}

// HouseholdResponse reports which source supplied the records alongside
// the records themselves.
type HouseholdResponse struct {
	Households      []rema.Household
	IsUsingFallback bool
	Source          string // "api" or "fallback"
}

type RemaClient struct {
	apiBaseURL      string
	fallbackBaseURL string
	cookieJar       *cookiejar.Jar
	guard           *LoginGuard
	ticketPath      string
	userID          string
}

func NewRemaClient(configData Config, guard *LoginGuard) *RemaClient {
	return &RemaClient{
		apiBaseURL:      configData.APIBaseURL,
		fallbackBaseURL: configData.FallbackBaseURL,
		guard:           guard,
		ticketPath:      authTicketFile,
	}
}

func (remaClient *RemaClient) httpClient() http.Client {
	if remaClient.cookieJar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			// cookiejar.New(nil) cannot fail with a nil options struct
			log.Fatal("Failed to create cookie jar: ", err)
		}
		remaClient.cookieJar = jar
	}
	return http.Client{Jar: remaClient.cookieJar}
}

// Login authenticates against the REMA API. The attempt is rejected
// locally with a RateLimitError once the identifier has exhausted its
// attempts within the lockout window; a successful login clears the
// attempt history and persists the session cookie to the ticket file.
func (remaClient *RemaClient) Login(username string, password string) (rema.LoginResponse, error) {
	if !ValidateEmail(username) {
		return rema.LoginResponse{}, fmt.Errorf("invalid email format: '%s'", username)
	}

	canAttempt, remaining, err := remaClient.guard.Check(username)
	if err != nil {
		return rema.LoginResponse{}, fmt.Errorf("failed to check login attempts: %w", err)
	}
	if !canAttempt {
		return rema.LoginResponse{}, &RateLimitError{Remaining: remaining}
	}
	if err := remaClient.guard.Record(username); err != nil {
		return rema.LoginResponse{}, fmt.Errorf("failed to record login attempt: %w", err)
	}

	body, err := json.Marshal(rema.LoginRequest{Username: username, Password: password})
	if err != nil {
		return rema.LoginResponse{}, err
	}

	client := remaClient.httpClient()
	request, err := http.NewRequest(http.MethodPost, remaClient.apiBaseURL+"/auth/login/", bytes.NewReader(body))
	if err != nil {
		return rema.LoginResponse{}, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Requested-With", "XMLHttpRequest")

	response, err := client.Do(request)
	if err != nil {
		return rema.LoginResponse{}, fmt.Errorf("failed to reach the REMA login endpoint: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var errorResponse rema.LoginResponse
		if err := json.NewDecoder(response.Body).Decode(&errorResponse); err == nil && errorResponse.Message != "" {
			return rema.LoginResponse{}, fmt.Errorf("login refused: %s", errorResponse.Message)
		}
		return rema.LoginResponse{}, fmt.Errorf("login refused: HTTP %d", response.StatusCode)
	}

	var loginResponse rema.LoginResponse
	if err := json.NewDecoder(response.Body).Decode(&loginResponse); err != nil {
		return rema.LoginResponse{}, fmt.Errorf("invalid login response: %w", err)
	}

	if loginResponse.Succeeded() {
		remaClient.userID = string(loginResponse.UserID)
		if err := remaClient.guard.Reset(username); err != nil {
			log.Warnf("failed to reset login attempts for '%s': %s", username, err)
		}
		if err := remaClient.saveTicket(); err != nil {
			log.Warnf("failed to save authentication ticket: %s", err)
		}
		log.Info("Authentication succeeded.")
	}
	return loginResponse, nil
}

// Logout attempts a server-side logout and then unconditionally discards
// every piece of local session state. It never fails from the caller's
// point of view; internal errors are logged and swallowed.
func (remaClient *RemaClient) Logout() {
	client := remaClient.httpClient()
	request, err := http.NewRequest(http.MethodPost, remaClient.apiBaseURL+"/auth/logout/", nil)
	if err == nil {
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set("X-Requested-With", "XMLHttpRequest")
		response, err := client.Do(request)
		if err != nil {
			log.Warnf("server logout failed, proceeding with local logout: %s", err)
		} else {
			response.Body.Close()
			if response.StatusCode < 200 || response.StatusCode > 299 {
				log.Warnf("server logout returned HTTP %d, proceeding with local logout", response.StatusCode)
			}
		}
	}

	remaClient.userID = ""
	remaClient.cookieJar = nil
	if err := os.Remove(remaClient.ticketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to remove authentication ticket: %s", err)
	}
	log.Info("Local session cleared.")
}

// CheckAuth probes the protected ménage endpoint. Anything but a 2xx,
// including transport errors, counts as unauthenticated.
func (remaClient *RemaClient) CheckAuth() bool {
	client := remaClient.httpClient()
	request, err := http.NewRequest(http.MethodGet, remaClient.apiBaseURL+"/", nil)
	if err != nil {
		return false
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return false
	}
	defer response.Body.Close()
	return response.StatusCode >= 200 && response.StatusCode <= 299
}

// FetchHouseholds loads the ménage list from the REMA API, falling back
// to the static snapshot when the session has lapsed (403) or the API is
// unreachable. Only a failure of the fallback itself is surfaced as an
// error.
func (remaClient *RemaClient) FetchHouseholds() (HouseholdResponse, error) {
	client := remaClient.httpClient()
	request, err := http.NewRequest(http.MethodGet, remaClient.apiBaseURL+"/", nil)
	if err != nil {
		return HouseholdResponse{}, err
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.Do(request)
	if err != nil {
		log.Warnf("REMA API unreachable, using local fallback: %s", err)
		return remaClient.fallbackResponse()
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusForbidden {
		log.Warn("Not authenticated against REMA (403), using local fallback")
		return remaClient.fallbackResponse()
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		log.Warnf("REMA API returned HTTP %d, using local fallback", response.StatusCode)
		return remaClient.fallbackResponse()
	}

	var apiHouseholds []rema.HouseholdAPI
	if err := json.NewDecoder(response.Body).Decode(&apiHouseholds); err != nil {
		log.Warnf("Failed to parse REMA response, using local fallback: %s", err)
		return remaClient.fallbackResponse()
	}
	log.Debugf("Loaded %d ménages from the REMA API", len(apiHouseholds))

	households := make([]rema.Household, 0, len(apiHouseholds))
	for _, apiHousehold := range apiHouseholds {
		households = append(households, rema.MapAPIToLocal(apiHousehold))
	}
	return HouseholdResponse{Households: households, IsUsingFallback: false, Source: "api"}, nil
}

func (remaClient *RemaClient) fallbackResponse() (HouseholdResponse, error) {
	households, err := remaClient.fetchFallback()
	if err != nil {
		return HouseholdResponse{}, err
	}
	return HouseholdResponse{Households: households, IsUsingFallback: true, Source: "fallback"}, nil
}

func (remaClient *RemaClient) fetchFallback() ([]rema.Household, error) {
	response, err := http.Get(remaClient.fallbackBaseURL + "/households.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDataUnavailable, err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fallback returned HTTP %d", ErrDataUnavailable, response.StatusCode)
	}

	var households []rema.Household
	if err := json.NewDecoder(response.Body).Decode(&households); err != nil {
		return nil, fmt.Errorf("%w: invalid fallback snapshot: %s", ErrDataUnavailable, err)
	}

	for _, household := range households {
		if err := household.ValidateMembers(); err != nil {
			log.Warnf("fallback snapshot: %s", err)
		}
	}
	log.Debugf("Loaded %d ménages from the fallback snapshot", len(households))
	return households, nil
}

// FetchHouseholdDetails loads the detail record of a single ménage; it
// requires a live session and does not fall back.
func (remaClient *RemaClient) FetchHouseholdDetails(id string) (rema.HouseholdDetailsAPI, error) {
	client := remaClient.httpClient()
	request, err := http.NewRequest(http.MethodGet, remaClient.apiBaseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return rema.HouseholdDetailsAPI{}, err
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return rema.HouseholdDetailsAPI{}, fmt.Errorf("failed to reach the REMA API: %w", err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusForbidden:
		return rema.HouseholdDetailsAPI{}, fmt.Errorf("session expired, please log in again")
	case response.StatusCode == http.StatusNotFound:
		return rema.HouseholdDetailsAPI{}, fmt.Errorf("ménage '%s' not found", id)
	case response.StatusCode < 200 || response.StatusCode > 299:
		return rema.HouseholdDetailsAPI{}, fmt.Errorf("REMA API returned HTTP %d", response.StatusCode)
	}

	var details rema.HouseholdDetailsAPI
	if err := json.NewDecoder(response.Body).Decode(&details); err != nil {
		return rema.HouseholdDetailsAPI{}, fmt.Errorf("invalid detail response: %w", err)
	}
	return details, nil
}

// PushHouseholdUpdate sends a partial update to the server. Callers treat
// it as best-effort: the console state is updated optimistically whether
// or not the server accepted the change.
func (remaClient *RemaClient) PushHouseholdUpdate(id string, updates map[string]any) error {
	body, err := json.Marshal(updates)
	if err != nil {
		return err
	}

	client := remaClient.httpClient()
	request, err := http.NewRequest(http.MethodPut, remaClient.apiBaseURL+"/"+url.PathEscape(id), bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to reach the REMA API: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("REMA API refused the update: HTTP %d", response.StatusCode)
	}
	return nil
}

// CurrentUserID returns the user id recorded at login time. It is a UI
// convenience flag only; the server-side cookie remains the trust anchor.
func (remaClient *RemaClient) CurrentUserID() string {
	return remaClient.userID
}

func (remaClient *RemaClient) saveTicket() error {
	apiURL, err := url.Parse(remaClient.apiBaseURL)
	if err != nil {
		return err
	}

	ticket := AuthTicket{UserID: remaClient.userID}
	if remaClient.cookieJar != nil {
		for _, cookie := range remaClient.cookieJar.Cookies(apiURL) {
			ticket.Cookies = append(ticket.Cookies, AuthCookie{Name: cookie.Name, Value: cookie.Value})
		}
	}

	fileContent, err := json.MarshalIndent(ticket, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(remaClient.ticketPath, fileContent, 0600)
}

// ReAuthenticate restores the session cookie saved by a previous login.
func (remaClient *RemaClient) ReAuthenticate() error {
	file, err := os.Open(remaClient.ticketPath)
	if err != nil {
		return fmt.Errorf("failed to read authentication ticket file: %w", err)
	}
	defer file.Close()

	var authTicket AuthTicket
	if err := json.NewDecoder(file).Decode(&authTicket); err != nil {
		return fmt.Errorf("failed to deserialize authentication data: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	apiURL, err := url.Parse(remaClient.apiBaseURL)
	if err != nil {
		return err
	}

	cookies := make([]*http.Cookie, 0, len(authTicket.Cookies))
	for _, cookie := range authTicket.Cookies {
		cookies = append(cookies, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	jar.SetCookies(apiURL, cookies)

	remaClient.cookieJar = jar
	remaClient.userID = authTicket.UserID
	return nil
}
