package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/models"
	"vincowealth/internal/pagination"
	"vincowealth/internal/services"
)

func setupClientRouter(handler *ClientHandler) *gin.Engine {
	r := gin.New()
	r.GET("/clients", handler.ListClients)
	r.POST("/clients", handler.CreateClient)
	r.PUT("/clients", handler.ReplaceClients)
	r.GET("/clients/:id", handler.GetClient)
	r.PATCH("/clients/:id", handler.UpdateClient)
	r.DELETE("/clients/:id", handler.DeleteClient)
	r.GET("/clients/:id/trades", handler.ListClientTrades)
	r.GET("/clients/:id/letters", handler.ListClientLetters)
	return r
}

const validClientBody = `{"id":"c1","firstName":"Ada","lastName":"Lovelace","accountNumber":"A1","typeAccount":"ISA","lossPct":20}`

func TestClientHandler_CreateClient(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var got *models.Client
		svc := &mockClientService{
			createClientFn: func(_ context.Context, c *models.Client) (*models.Client, error) {
				got = c
				c.ApplyDefaults()
				return c, nil
			},
		}
		r := setupClientRouter(NewClientHandler(svc, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "POST", "/clients", validClientBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.ID != "c1" || got.LossPct != 20 {
			t.Errorf("unexpected client passed to service: %+v", got)
		}
		client := parseJSON(t, rec)["client"].(map[string]interface{})
		if client["firstName"] != "Ada" || client["risk"] != "Medium" {
			t.Errorf("unexpected response client: %v", client)
		}
	})

	t.Run("returns 400 for missing first name", func(t *testing.T) {
		r := setupClientRouter(NewClientHandler(&mockClientService{}, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "POST", "/clients", `{"lastName":"Lovelace","accountNumber":"A1","typeAccount":"ISA"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 for unknown objective", func(t *testing.T) {
		r := setupClientRouter(NewClientHandler(&mockClientService{}, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "POST", "/clients",
			`{"firstName":"Ada","lastName":"Lovelace","accountNumber":"A1","typeAccount":"ISA","objective":"Speculation"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 for duplicate client", func(t *testing.T) {
		svc := &mockClientService{
			createClientFn: func(_ context.Context, _ *models.Client) (*models.Client, error) {
				return nil, apperrors.ErrDuplicateClient
			},
		}
		r := setupClientRouter(NewClientHandler(svc, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "POST", "/clients", validClientBody)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "DUPLICATE_CLIENT")
		if result["error"].(map[string]interface{})["constraint"] != "pk_clients_id" {
			t.Errorf("expected constraint in error body, got %v", result["error"])
		}
	})
}

func TestClientHandler_ListClients(t *testing.T) {
	t.Run("lists without query", func(t *testing.T) {
		svc := &mockClientService{
			listClientsFn: func(_ context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error) {
				if page.Page != 2 || page.PageSize != 10 {
					t.Errorf("unexpected page request %+v", page)
				}
				resp := pagination.NewPageResponse([]models.Client{{ID: "c1"}}, 2, 10, 11)
				return &resp, nil
			},
		}
		r := setupClientRouter(NewClientHandler(svc, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "GET", "/clients?page=2&page_size=10", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["total"] != float64(11) {
			t.Errorf("expected total 11, got %v", result["total"])
		}
		if len(result["items"].([]interface{})) != 1 {
			t.Errorf("expected 1 item, got %v", result["items"])
		}
	})

	t.Run("searches with query", func(t *testing.T) {
		searched := ""
		svc := &mockClientService{
			searchClientsFn: func(_ context.Context, q string, _ pagination.PageRequest) (*pagination.PageResponse[models.Client], error) {
				searched = q
				resp := pagination.NewPageResponse([]models.Client{}, 1, 50, 0)
				return &resp, nil
			},
		}
		r := setupClientRouter(NewClientHandler(svc, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "GET", "/clients?q=love", "")
		if rec.Code != http.StatusOK || searched != "love" {
			t.Fatalf("expected search for love, got status %d query %q", rec.Code, searched)
		}
	})

	t.Run("returns 400 for invalid page size", func(t *testing.T) {
		r := setupClientRouter(NewClientHandler(&mockClientService{}, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "GET", "/clients?page_size=0", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected zero page size to fall back to default, got %d", rec.Code)
		}
		rec = doRequest(r, "GET", "/clients?page_size=100000", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestClientHandler_GetClient(t *testing.T) {
	svc := &mockClientService{
		getClientByIDFn: func(_ context.Context, id string) (*models.Client, error) {
			if id == "missing" {
				return nil, apperrors.ErrClientNotFound
			}
			return &models.Client{ID: id, FirstName: "Ada"}, nil
		},
	}
	r := setupClientRouter(NewClientHandler(svc, &mockTradeService{}, &mockLetterService{}))

	rec := doRequest(r, "GET", "/clients/c1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(r, "GET", "/clients/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "CLIENT_NOT_FOUND")
}

func TestClientHandler_UpdateClient(t *testing.T) {
	t.Run("passes only provided fields", func(t *testing.T) {
		var got services.ClientUpdate
		svc := &mockClientService{
			updateClientFn: func(_ context.Context, id string, u services.ClientUpdate) (*models.Client, error) {
				got = u
				return &models.Client{ID: id}, nil
			},
		}
		r := setupClientRouter(NewClientHandler(svc, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "PATCH", "/clients/c1", `{"risk":"High","email":"ada@example.com"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Risk == nil || *got.Risk != models.RiskHigh {
			t.Errorf("expected risk High, got %v", got.Risk)
		}
		if got.FirstName != nil {
			t.Errorf("expected first name to be untouched, got %q", *got.FirstName)
		}
	})

	t.Run("rejects id change", func(t *testing.T) {
		r := setupClientRouter(NewClientHandler(&mockClientService{}, &mockTradeService{}, &mockLetterService{}))

		rec := doRequest(r, "PATCH", "/clients/c1", `{"id":"c2"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestClientHandler_DeleteClient(t *testing.T) {
	svc := &mockClientService{
		deleteClientFn: func(_ context.Context, id string) error {
			if id == "busy" {
				return apperrors.ErrClientHasDependents
			}
			return nil
		},
	}
	r := setupClientRouter(NewClientHandler(svc, &mockTradeService{}, &mockLetterService{}))

	if rec := doRequest(r, "DELETE", "/clients/c1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec := doRequest(r, "DELETE", "/clients/busy", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "CLIENT_HAS_DEPENDENTS")
}

func TestClientHandler_ReplaceClients(t *testing.T) {
	var got []models.Client
	svc := &mockClientService{
		replaceClientsFn: func(_ context.Context, clients []models.Client) (int, error) {
			got = clients
			return len(clients), nil
		},
	}
	r := setupClientRouter(NewClientHandler(svc, &mockTradeService{}, &mockLetterService{}))

	rec := doRequest(r, "PUT", "/clients", `{"clients":[`+validClientBody+`]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("unexpected clients passed to service: %+v", got)
	}
	if parseJSON(t, rec)["count"] != float64(1) {
		t.Errorf("expected count 1, got %s", rec.Body.String())
	}

	rec = doRequest(r, "PUT", "/clients", `{"clients":[{"id":"c2"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete client, got %d", rec.Code)
	}
}

func TestClientHandler_ListClientTrades(t *testing.T) {
	trades := &mockTradeService{
		listClientTradesFn: func(_ context.Context, clientID string, _ pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
			if clientID == "missing" {
				return nil, apperrors.ErrClientNotFound
			}
			resp := pagination.NewPageResponse([]models.Trade{{ID: 1, ClientID: clientID}}, 1, 50, 1)
			return &resp, nil
		},
	}
	r := setupClientRouter(NewClientHandler(&mockClientService{}, trades, &mockLetterService{}))

	rec := doRequest(r, "GET", "/clients/c1/trades", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["total"] != float64(1) {
		t.Errorf("expected total 1, got %s", rec.Body.String())
	}

	rec = doRequest(r, "GET", "/clients/missing/trades", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClientHandler_ListClientLetters(t *testing.T) {
	r := setupClientRouter(NewClientHandler(&mockClientService{}, &mockTradeService{}, &mockLetterService{}))

	rec := doRequest(r, "GET", "/clients/c1/letters", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if items := parseJSON(t, rec)["items"].([]interface{}); len(items) != 0 {
		t.Errorf("expected empty list, got %v", items)
	}
}
