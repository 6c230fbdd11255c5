package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"vincowealth/internal/logger"
	"vincowealth/internal/models"
	"vincowealth/internal/pagination"
	"vincowealth/internal/services"
	"vincowealth/internal/validator"
)

// --- mock services ---

type mockClientService struct {
	createClientFn   func(ctx context.Context, client *models.Client) (*models.Client, error)
	getClientByIDFn  func(ctx context.Context, id string) (*models.Client, error)
	listClientsFn    func(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error)
	searchClientsFn  func(ctx context.Context, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error)
	updateClientFn   func(ctx context.Context, id string, update services.ClientUpdate) (*models.Client, error)
	deleteClientFn   func(ctx context.Context, id string) error
	replaceClientsFn func(ctx context.Context, clients []models.Client) (int, error)
}

func (m *mockClientService) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	if m.createClientFn != nil {
		return m.createClientFn(ctx, client)
	}
	return client, nil
}

func (m *mockClientService) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	if m.getClientByIDFn != nil {
		return m.getClientByIDFn(ctx, id)
	}
	return &models.Client{ID: id}, nil
}

func (m *mockClientService) ListClients(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error) {
	if m.listClientsFn != nil {
		return m.listClientsFn(ctx, page)
	}
	resp := pagination.NewPageResponse([]models.Client{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockClientService) SearchClients(ctx context.Context, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error) {
	if m.searchClientsFn != nil {
		return m.searchClientsFn(ctx, query, page)
	}
	resp := pagination.NewPageResponse([]models.Client{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockClientService) UpdateClient(ctx context.Context, id string, update services.ClientUpdate) (*models.Client, error) {
	if m.updateClientFn != nil {
		return m.updateClientFn(ctx, id, update)
	}
	return &models.Client{ID: id}, nil
}

func (m *mockClientService) DeleteClient(ctx context.Context, id string) error {
	if m.deleteClientFn != nil {
		return m.deleteClientFn(ctx, id)
	}
	return nil
}

func (m *mockClientService) ReplaceClients(ctx context.Context, clients []models.Client) (int, error) {
	if m.replaceClientsFn != nil {
		return m.replaceClientsFn(ctx, clients)
	}
	return len(clients), nil
}

type mockTradeService struct {
	createTradeFn      func(ctx context.Context, trade *models.Trade) (*models.Trade, error)
	getTradeByIDFn     func(ctx context.Context, id uint) (*models.Trade, error)
	listClientTradesFn func(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
	updateTradeFn      func(ctx context.Context, id uint, update services.TradeUpdate) (*models.Trade, error)
	deleteTradeFn      func(ctx context.Context, id uint) error
}

func (m *mockTradeService) CreateTrade(ctx context.Context, trade *models.Trade) (*models.Trade, error) {
	if m.createTradeFn != nil {
		return m.createTradeFn(ctx, trade)
	}
	trade.ID = 1
	return trade, nil
}

func (m *mockTradeService) GetTradeByID(ctx context.Context, id uint) (*models.Trade, error) {
	if m.getTradeByIDFn != nil {
		return m.getTradeByIDFn(ctx, id)
	}
	return &models.Trade{ID: id}, nil
}

func (m *mockTradeService) ListClientTrades(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	if m.listClientTradesFn != nil {
		return m.listClientTradesFn(ctx, clientID, page)
	}
	resp := pagination.NewPageResponse([]models.Trade{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockTradeService) UpdateTrade(ctx context.Context, id uint, update services.TradeUpdate) (*models.Trade, error) {
	if m.updateTradeFn != nil {
		return m.updateTradeFn(ctx, id, update)
	}
	return &models.Trade{ID: id}, nil
}

func (m *mockTradeService) DeleteTrade(ctx context.Context, id uint) error {
	if m.deleteTradeFn != nil {
		return m.deleteTradeFn(ctx, id)
	}
	return nil
}

type mockLetterService struct {
	createLetterFn      func(ctx context.Context, letter *models.SuitabilityLetter) (*models.SuitabilityLetter, error)
	getLetterByIDFn     func(ctx context.Context, id uint) (*models.SuitabilityLetter, error)
	listClientLettersFn func(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.SuitabilityLetter], error)
	updateLetterFn      func(ctx context.Context, id uint, update services.LetterUpdate) (*models.SuitabilityLetter, error)
	deleteLetterFn      func(ctx context.Context, id uint) error
}

func (m *mockLetterService) CreateLetter(ctx context.Context, letter *models.SuitabilityLetter) (*models.SuitabilityLetter, error) {
	if m.createLetterFn != nil {
		return m.createLetterFn(ctx, letter)
	}
	letter.ID = 1
	letter.Status = letter.Status.OrDefault()
	return letter, nil
}

func (m *mockLetterService) GetLetterByID(ctx context.Context, id uint) (*models.SuitabilityLetter, error) {
	if m.getLetterByIDFn != nil {
		return m.getLetterByIDFn(ctx, id)
	}
	return &models.SuitabilityLetter{ID: id}, nil
}

func (m *mockLetterService) ListClientLetters(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.SuitabilityLetter], error) {
	if m.listClientLettersFn != nil {
		return m.listClientLettersFn(ctx, clientID, page)
	}
	resp := pagination.NewPageResponse([]models.SuitabilityLetter{}, 1, pagination.DefaultPageSize, 0)
	return &resp, nil
}

func (m *mockLetterService) UpdateLetter(ctx context.Context, id uint, update services.LetterUpdate) (*models.SuitabilityLetter, error) {
	if m.updateLetterFn != nil {
		return m.updateLetterFn(ctx, id, update)
	}
	return &models.SuitabilityLetter{ID: id}, nil
}

func (m *mockLetterService) DeleteLetter(ctx context.Context, id uint) error {
	if m.deleteLetterFn != nil {
		return m.deleteLetterFn(ctx, id)
	}
	return nil
}

// verify interface compliance
var (
	_ services.ClientServicer            = (*mockClientService)(nil)
	_ services.TradeServicer             = (*mockTradeService)(nil)
	_ services.SuitabilityLetterServicer = (*mockLetterService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
