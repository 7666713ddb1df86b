package roblox

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/treeforge/merchant/internal/transport"
	"github.com/treeforge/merchant/pkg/errors"
)

// The platform answers in three unrelated shapes depending on endpoint
// vintage: a JSON error envelope, a validity envelope, or a legacy HTML
// fragment with a status element. Everything in this file normalizes those
// shapes at the adapter boundary so nothing raw leaks past this package.

// errorEnvelope is the JSON error shape of the newer APIs:
//
//	{"errors":[{"code":4,"message":"..."}]}
type errorEnvelope struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// validityEnvelope is the JSON shape of the update endpoints:
//
//	{"isValid":true,"data":{...},"error":""}
type validityEnvelope struct {
	IsValid bool            `json:"isValid"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// statusElement matches the status div of the legacy HTML create endpoint.
// Group 1 is the status class (confirm or error), group 2 the inner text.
var statusElement = regexp.MustCompile(`(?s)<div[^>]*class="[^"]*status-(confirm|error)[^"]*"[^>]*>(.*?)</div>`)

// firstInteger pulls the first run of digits out of a confirmation text.
var firstInteger = regexp.MustCompile(`\d+`)

// tagStripper removes nested markup from extracted status text.
var tagStripper = regexp.MustCompile(`<[^>]+>`)

// decodeErrorEnvelope attempts to read the response as a JSON error
// envelope. It returns nil when the body is not that shape.
func decodeErrorEnvelope(body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		return nil
	}

	first := envelope.Errors[0]
	if isDuplicateNameMessage(first.Message) {
		return duplicateNameError(first.Message)
	}
	return errors.NewPlatformError(first.Code, first.Message)
}

// decodeValidity normalizes an update response: an empty body is a
// missing-result failure, a validity envelope decides success, and any
// other shape is the unknown-response diagnostic.
func decodeValidity(resp *transport.Response) error {
	if len(strings.TrimSpace(string(resp.Body))) == 0 {
		return errors.ErrMissingResult
	}
	if err := decodeErrorEnvelope(resp.Body); err != nil {
		return err
	}

	var envelope validityEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return unknownResponse(resp)
	}
	if envelope.IsValid {
		return nil
	}
	if envelope.Error != "" {
		return errors.NewPlatformError(0, envelope.Error)
	}
	return errors.NewPlatformError(0, "the platform reported the update invalid")
}

// decodeCreated normalizes a create response into the new remote id.
func decodeCreated(resp *transport.Response) (int64, error) {
	if err := decodeErrorEnvelope(resp.Body); err != nil {
		return 0, err
	}

	match := statusElement.FindSubmatch(resp.Body)
	if match == nil {
		return 0, unknownResponse(resp)
	}

	text := strings.TrimSpace(tagStripper.ReplaceAllString(string(match[2]), " "))
	if string(match[1]) == "error" {
		if isDuplicateNameMessage(text) {
			return 0, duplicateNameError(text)
		}
		return 0, errors.NewPlatformError(0, text)
	}

	digits := firstInteger.FindString(text)
	if digits == "" {
		return 0, unknownResponse(resp)
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, unknownResponse(resp)
	}
	return id, nil
}

// decodeInfo reads a verification fetch into the endpoint's info shape.
func decodeInfo(resp *transport.Response, v any) error {
	if err := decodeErrorEnvelope(resp.Body); err != nil {
		return err
	}
	if !resp.OK() {
		return &errors.APIError{StatusCode: resp.StatusCode, Message: "unexpected status"}
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return unknownResponse(resp)
	}
	return nil
}

// isDuplicateNameMessage recognizes the platform's wording for a name
// collision, across both the HTML and JSON surfaces.
func isDuplicateNameMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "already exists") ||
		strings.Contains(lower, "name is already in use")
}

// duplicateNameError re-labels the platform's duplicate-name rejection.
// Name uniqueness is a declared catalogue invariant, so the user gets a
// message that points at the fix instead of the platform's default.
func duplicateNameError(platformMessage string) error {
	return &errors.PlatformError{
		Message: "an entry with this name already exists on the platform; names must be unique within their kind (platform said: " + platformMessage + ")",
		Err:     errors.ErrDuplicateName,
	}
}

// unknownResponse builds the distinct diagnostic for a response in no
// recognized shape. The commonest cause is an expired or invalid session,
// which the platform reports by serving a login page.
func unknownResponse(resp *transport.Response) error {
	return &errors.APIError{
		StatusCode: resp.StatusCode,
		Message:    "response in no recognized shape; your session cookie may be expired or invalid",
		Err:        errors.ErrUnknownResponse,
	}
}
