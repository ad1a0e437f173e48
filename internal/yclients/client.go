// Файл: internal/yclients/client.go
package yclients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"yplanner/pkg/config"
)

const acceptHeader = "application/vnd.yclients.v2+json"

// Auth — составные учётные данные yClients. Partner Token обязателен
// всегда; User Token требуется только эндпоинту записей.
type Auth struct {
	PartnerToken string
	UserToken    string
}

// Header собирает заголовок Authorization в формате платформы:
// "Bearer P" либо "Bearer P, User U".
func (a Auth) Header() string {
	if a.UserToken == "" {
		return fmt.Sprintf("Bearer %s", a.PartnerToken)
	}
	return fmt.Sprintf("Bearer %s, User %s", a.PartnerToken, a.UserToken)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.YClientsConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger.Named("yclients_client"),
	}
}

// FetchStaff возвращает всех сотрудников компании.
func (c *Client) FetchStaff(ctx context.Context, companyID int64, auth Auth) ([]StaffRecord, error) {
	reqURL := fmt.Sprintf("%s/api/v1/company/%d/staff", c.baseURL, companyID)

	rawList, err := c.get(ctx, "staff", reqURL, auth)
	if err != nil {
		return nil, err
	}

	staff := make([]StaffRecord, 0, len(rawList))
	for _, raw := range rawList {
		var rec StaffRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			c.logger.Warn("Не удалось разобрать запись сотрудника, пропускаем", zap.Error(err))
			continue
		}
		staff = append(staff, rec)
	}

	c.logger.Debug("Получен список сотрудников", zap.Int("count", len(staff)))
	return staff, nil
}

// FetchServices возвращает все услуги компании.
func (c *Client) FetchServices(ctx context.Context, companyID int64, auth Auth) ([]ServiceRecord, error) {
	reqURL := fmt.Sprintf("%s/api/v1/company/%d/services", c.baseURL, companyID)

	rawList, err := c.get(ctx, "services", reqURL, auth)
	if err != nil {
		return nil, err
	}

	services := make([]ServiceRecord, 0, len(rawList))
	for _, raw := range rawList {
		var rec ServiceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			c.logger.Warn("Не удалось разобрать запись услуги, пропускаем", zap.Error(err))
			continue
		}
		services = append(services, rec)
	}

	c.logger.Debug("Получен список услуг", zap.Int("count", len(services)))
	return services, nil
}

// FetchRecords возвращает записи компании в окне [from, to].
// Даты передаются платформе в формате YYYY-MM-DD.
func (c *Client) FetchRecords(ctx context.Context, companyID int64, auth Auth, from, to time.Time) ([]BookingRecord, error) {
	params := url.Values{}
	params.Set("start_date", from.Format("2006-01-02"))
	params.Set("end_date", to.Format("2006-01-02"))
	reqURL := fmt.Sprintf("%s/api/v1/records/%d?%s", c.baseURL, companyID, params.Encode())

	rawList, err := c.get(ctx, "records", reqURL, auth)
	if err != nil {
		return nil, err
	}

	records := make([]BookingRecord, 0, len(rawList))
	for _, raw := range rawList {
		var rec BookingRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			c.logger.Warn("Не удалось разобрать запись клиента, пропускаем", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	c.logger.Debug("Получен список записей", zap.Int("count", len(records)))
	return records, nil
}

// get выполняет один GET к платформе и нормализует ответ в список
// сырых записей. Повторов нет: упавший вызов проваливает синхронизацию
// своего класса сущностей, следующий вызов оркестратора — и есть retry.
func (c *Client) get(ctx context.Context, endpoint, reqURL string, auth Auth) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("создание запроса %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", auth.Header())
	req.Header.Set("Accept", acceptHeader)
	if endpoint == "records" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("вызов yClients %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение ответа yClients %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("yClients вернул ошибку",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		if endpoint == "records" && resp.StatusCode == http.StatusForbidden {
			return nil, &PermissionDeniedError{StatusCode: resp.StatusCode, Body: string(body)}
		}
		return nil, &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		// Ответ без конверта — сразу список.
		return normalizeList(trimmed)
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("разбор ответа yClients %s: %w", endpoint, err)
	}

	if env.Success != nil && !*env.Success {
		msg := env.Meta.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, &RejectedError{Endpoint: endpoint, Message: msg}
	}

	list, err := normalizeList(env.Data)
	if err != nil {
		return nil, fmt.Errorf("нормализация ответа yClients %s: %w", endpoint, err)
	}
	return list, nil
}
