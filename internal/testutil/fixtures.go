package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"vincowealth/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// CreateTestClient creates a client with a unique id and account number.
func CreateTestClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	n := nextID()
	return CreateTestClientWithName(t, db, fmt.Sprintf("First%d", n), fmt.Sprintf("Last%d", n))
}

// CreateTestClientWithName creates a client with the given names.
func CreateTestClientWithName(t *testing.T, db *gorm.DB, firstName, lastName string) *models.Client {
	t.Helper()

	n := nextID()
	client := &models.Client{
		ID:            fmt.Sprintf("c%d", n),
		FirstName:     firstName,
		LastName:      lastName,
		AccountNumber: fmt.Sprintf("ACC%06d", n),
		TypeAccount:   "ISA",
		LossPct:       10,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestTrade creates a buy trade for the given client.
func CreateTestTrade(t *testing.T, db *gorm.DB, clientID string) *models.Trade {
	t.Helper()

	trade := &models.Trade{
		ClientID:  clientID,
		AssetName: fmt.Sprintf("Asset %d", nextID()),
		Quantity:  StrPtr("100"),
	}
	if err := db.Create(trade).Error; err != nil {
		t.Fatalf("failed to create test trade: %v", err)
	}
	return trade
}

// CreateTestLetter creates a draft suitability letter for the given client.
func CreateTestLetter(t *testing.T, db *gorm.DB, clientID string) *models.SuitabilityLetter {
	t.Helper()

	letter := &models.SuitabilityLetter{
		ClientID: clientID,
		Content:  StrPtr(fmt.Sprintf("Dear client %d", nextID())),
	}
	if err := db.Create(letter).Error; err != nil {
		t.Fatalf("failed to create test letter: %v", err)
	}
	return letter
}
