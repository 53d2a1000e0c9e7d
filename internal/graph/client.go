package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/partyklinest/cleaning-backend/internal/models"
)

// Client — HTTP клиент внешнего каталога пользователей.
// Каталог хранит отображаемые данные учётных записей по их OID.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт клиента каталога.
func NewClient(baseURL string, timeout time.Duration) *Client {
	apiKey := os.Getenv("GRAPH_API_KEY")

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetUserInfo возвращает отображаемые профили для списка OID.
// Пустой список разрешается локально, без похода в каталог.
func (c *Client) GetUserInfo(ctx context.Context, ids []string) ([]models.UserInfo, error) {
	if len(ids) == 0 {
		return []models.UserInfo{}, nil
	}
	if c.baseURL == "" {
		return nil, fmt.Errorf("graph: baseURL не задан")
	}

	payload := map[string]any{"ids": ids}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/lookup", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph: запрос каталога: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errorBody)
		return nil, fmt.Errorf("graph: код ответа %d: %v", resp.StatusCode, errorBody)
	}

	var result struct {
		Users []models.UserInfo `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("graph: декодирование ответа: %w", err)
	}

	return result.Users, nil
}
