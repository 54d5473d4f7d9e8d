package arrapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates a lookup produced no result
var ErrNotFound = errors.New("not found")

// HTTPError is a non-2xx response with its raw body preserved
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// AlreadyExistsError is returned when an add is rejected because the item
// is already in the library
type AlreadyExistsError struct {
	Title string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s is already in your library", e.Title)
}

// vendorError is one entry of the JSON error array the *arr APIs return
// on a rejected POST
type vendorError struct {
	PropertyName string `json:"propertyName"`
	ErrorMessage string `json:"errorMessage"`
}

// parseVendorError extracts the first errorMessage from a response body,
// or "" when the body is not a vendor error array
func parseVendorError(body string) string {
	if !strings.HasPrefix(strings.TrimSpace(body), "[") {
		return ""
	}
	var entries []vendorError
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return ""
	}
	if len(entries) == 0 {
		return ""
	}
	return entries[0].ErrorMessage
}

// classifyAddError rewrites a failed add into a user-facing error. An
// "already exists" rejection becomes AlreadyExistsError and is logged at
// info level; every other vendor message is surfaced verbatim and logged
// as an error.
func (c *Client) classifyAddError(err error, title string) error {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		c.logger.Error("add failed", "title", title, "error", err)
		return err
	}

	msg := parseVendorError(httpErr.Body)
	if msg == "" {
		c.logger.Error("add failed", "title", title, "status", httpErr.StatusCode)
		return httpErr
	}

	if strings.Contains(strings.ToLower(msg), "already") {
		c.logger.Info("item already in library", "title", title)
		return &AlreadyExistsError{Title: title}
	}

	c.logger.Error("add rejected", "title", title, "error", msg)
	return errors.New(msg)
}
