package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/farm-manager/backend/internal/integration/persistence/model"
	"github.com/farm-manager/backend/test/integration/mock"
)

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	if t.server == nil {
		return errors.New("test server is not running")
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(raw string) error {
	current, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", raw, err)
	}
	t.clock.SetCurrentTime(current)
	return nil
}

func (t *testContext) aFarmUserIsLoggedIn() error {
	t.currentUserID = uuid.New()
	token, err := t.signAccessToken(time.Now().UTC().Add(15 * time.Minute))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theAccessTokenHasExpired() error {
	if t.currentUserID == uuid.Nil {
		t.currentUserID = uuid.New()
	}
	token, err := t.signAccessToken(time.Now().UTC().Add(-time.Minute))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) signAccessToken(expiresAt time.Time) (string, error) {
	issuedAt := expiresAt.Add(-15 * time.Minute)
	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      "farmer@example.com",
		"token_type": "access",
		"exp":        jwt.NewNumericDate(expiresAt),
		"iat":        jwt.NewNumericDate(issuedAt),
		"nbf":        jwt.NewNumericDate(issuedAt),
		"iss":        "farm-manager",
		"sub":        t.currentUserID.String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return signed, nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theFarmProfileListsTheSubTypes(farmName, subTypes string) error {
	profile := &model.FarmProfileModel{
		UserID:    t.currentUserID,
		FarmName:  farmName,
		SubTypes:  pq.StringArray(splitList(subTypes, ",")),
		UpdatedAt: t.clock.Now().UTC(),
	}
	return t.db.DbConn.Create(profile).Error
}

// theFollowingSalesExist reads rows of date, sub_type, items, quantities and prices.
// Line values are separated by ";" and an empty price means none was recorded.
func (t *testContext) theFollowingSalesExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		sale := &model.SaleModel{
			ID:            uuid.New(),
			UserID:        t.currentUserID,
			Date:          row["date"],
			SubType:       row["sub_type"],
			Items:         pq.StringArray(splitLines(row["items"])),
			Quantities:    pq.StringArray(splitLines(row["quantities"])),
			PricesPerUnit: pq.StringArray(splitLines(row["prices"])),
			CreatedAt:     t.clock.Now().UTC(),
		}
		if err := t.db.DbConn.Create(sale).Error; err != nil {
			return err
		}
	}
	return nil
}

// theFollowingExpensesExist reads rows of date, sub_type, category and amount.
func (t *testContext) theFollowingExpensesExist(table *godog.Table) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		expense := &model.ExpenseModel{
			ID:         uuid.New(),
			UserID:     t.currentUserID,
			Title:      row["category"],
			SubType:    row["sub_type"],
			Category:   row["category"],
			RecordedAt: row["date"],
		}
		if raw := strings.TrimSpace(row["amount"]); raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", raw, err)
			}
			expense.Amount = decimal.NewNullDecimal(amount)
		}
		if err := t.db.DbConn.Create(expense).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	req, err := http.NewRequest(method, t.server.URL+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}
	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.responseObject()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseListShouldHaveItems(field string, expected int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	list, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, getFieldValue(body, field))
	}
	if len(list) != expected {
		return fmt.Errorf("expected %d items in '%s', got %d", expected, field, len(list))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))
	if err := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theSeriesCacheShouldHoldEntries(expected int) error {
	count, err := mock.CountKeys(t.redis, "finance:series:"+t.currentUserID.String()+":*")
	if err != nil {
		return err
	}
	if count != expected {
		return fmt.Errorf("expected %d cached series, got %d", expected, count)
	}
	return nil
}

func (t *testContext) theSeriesCacheExpires() error {
	t.miniRedis.FastForward(time.Hour)
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func tableRows(table *godog.Table) ([]map[string]string, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, errors.New("table has no header row")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			if i < len(header) {
				values[header[i].Value] = cell.Value
			}
		}
		rows = append(rows, values)
	}
	return rows, nil
}

func splitList(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitLines keeps empty values so parallel line arrays stay aligned.
func splitLines(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}
		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}
		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
