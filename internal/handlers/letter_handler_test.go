package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/models"
	"vincowealth/internal/services"
)

func setupLetterRouter(handler *LetterHandler) *gin.Engine {
	r := gin.New()
	r.POST("/letters", handler.CreateLetter)
	r.GET("/letters/:id", handler.GetLetter)
	r.PATCH("/letters/:id", handler.UpdateLetter)
	r.DELETE("/letters/:id", handler.DeleteLetter)
	return r
}

func TestLetterHandler_CreateLetter(t *testing.T) {
	t.Run("defaults status to draft", func(t *testing.T) {
		r := setupLetterRouter(NewLetterHandler(&mockLetterService{}))

		rec := doRequest(r, "POST", "/letters", `{"clientId":"c1","content":"Dear Ada"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		letter := parseJSON(t, rec)["letter"].(map[string]interface{})
		if letter["status"] != "draft" {
			t.Errorf("expected draft status, got %v", letter["status"])
		}
	})

	t.Run("returns 400 for unknown status", func(t *testing.T) {
		r := setupLetterRouter(NewLetterHandler(&mockLetterService{}))

		rec := doRequest(r, "POST", "/letters", `{"clientId":"c1","status":"Sent"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 without client", func(t *testing.T) {
		r := setupLetterRouter(NewLetterHandler(&mockLetterService{}))

		if rec := doRequest(r, "POST", "/letters", `{"content":"x"}`); rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestLetterHandler_GetLetter(t *testing.T) {
	svc := &mockLetterService{
		getLetterByIDFn: func(_ context.Context, id uint) (*models.SuitabilityLetter, error) {
			return nil, apperrors.ErrLetterNotFound
		},
	}
	r := setupLetterRouter(NewLetterHandler(svc))

	rec := doRequest(r, "GET", "/letters/5", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "LETTER_NOT_FOUND")
}

func TestLetterHandler_UpdateLetter(t *testing.T) {
	var got services.LetterUpdate
	svc := &mockLetterService{
		updateLetterFn: func(_ context.Context, id uint, u services.LetterUpdate) (*models.SuitabilityLetter, error) {
			got = u
			return &models.SuitabilityLetter{ID: id, Status: *u.Status}, nil
		},
	}
	r := setupLetterRouter(NewLetterHandler(svc))

	rec := doRequest(r, "PATCH", "/letters/2", `{"status":"final","pdfPath":"/tmp/letter.pdf"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Status == nil || *got.Status != models.LetterStatusFinal {
		t.Errorf("expected final status, got %v", got.Status)
	}
	if got.PDFPath == nil || *got.PDFPath != "/tmp/letter.pdf" {
		t.Errorf("expected pdf path, got %v", got.PDFPath)
	}
	if got.Content != nil {
		t.Errorf("expected content untouched, got %q", *got.Content)
	}

	if rec := doRequest(r, "PATCH", "/letters/2", `{"status":"Archived"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLetterHandler_DeleteLetter(t *testing.T) {
	svc := &mockLetterService{
		deleteLetterFn: func(_ context.Context, id uint) error {
			if id == 404 {
				return apperrors.ErrLetterNotFound
			}
			return nil
		},
	}
	r := setupLetterRouter(NewLetterHandler(svc))

	if rec := doRequest(r, "DELETE", "/letters/1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := doRequest(r, "DELETE", "/letters/404", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
