package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// currentTimeTolerance bounds the drift between the mocked clock and a server timestamp.
const currentTimeTolerance = 5 * time.Second

func (t *TestContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *TestContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(string); ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *TestContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case []any:
		if len(v) != count {
			return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(v))
		}
	case map[string]any:
		if len(v) != count {
			return fmt.Errorf("field '%s' expected %d entries, got %d", field, count, len(v))
		}
	default:
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldBeCloseToTheCurrentTime(field string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("field '%s' is not a timestamp: %v", field, value)
	}
	actual, err := parseRFC3339(str)
	if err != nil {
		return fmt.Errorf("field '%s' is not RFC 3339: %w", field, err)
	}

	drift := t.clock.Now().Sub(actual)
	if drift < 0 {
		drift = -drift
	}
	if drift > currentTimeTolerance {
		return fmt.Errorf("field '%s' is %s away from the current time", field, drift)
	}
	return nil
}

func (t *TestContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}
	return value, nil
}

func (t *TestContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *TestContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *TestContext) countRows(quantity int, table string, criteria map[string]any) error {
	where := make(map[string]any, len(criteria))
	for key, value := range criteria {
		if key == "owner" {
			where["owner_id"] = t.ownerID(fmt.Sprintf("%v", value))
			continue
		}
		where[key] = value
	}

	count, err := t.db.Count(table, where)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func analyticsCacheKey(ownerID fmt.Stringer) string {
	return "analytics:summary:" + ownerID.String()
}

func (t *TestContext) theAnalyticsCacheShouldContainAnEntryFor(email string) error {
	key := analyticsCacheKey(t.ownerID(email))
	if !t.redis.Has(key) {
		return fmt.Errorf("expected a cached analytics summary for %s", email)
	}
	if t.redis.TTL(key) <= 0 {
		return fmt.Errorf("cached analytics summary for %s has no expiry", email)
	}
	return nil
}

func (t *TestContext) theAnalyticsCacheShouldNotContainAnEntryFor(email string) error {
	if t.redis.Has(analyticsCacheKey(t.ownerID(email))) {
		return fmt.Errorf("expected no cached analytics summary for %s", email)
	}
	return nil
}

func (t *TestContext) theEmailAPIShouldHaveReceivedRequests(count int) error {
	received := len(t.resendAPI.Requests(http.MethodPost, "/emails"))
	if received != count {
		return fmt.Errorf("expected %d email requests, got %d", count, received)
	}
	return nil
}

func (t *TestContext) theLastEmailShouldBeSentTo(address string) error {
	requests := t.resendAPI.Requests(http.MethodPost, "/emails")
	if len(requests) == 0 {
		return errors.New("no email requests received")
	}

	body := requests[len(requests)-1]
	to, ok := body["to"].([]any)
	if !ok || len(to) == 0 {
		return fmt.Errorf("email request has no recipients: %v", body)
	}
	if to[0] != address {
		return fmt.Errorf("expected email to %s, got %v", address, to[0])
	}

	if auth := t.resendAPI.LastHeaders(http.MethodPost, "/emails").Get("Authorization"); auth != "Bearer "+testResendAPIKey {
		return fmt.Errorf("unexpected email API authorization header %q", auth)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
