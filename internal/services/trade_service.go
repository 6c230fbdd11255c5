package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/models"
	"vincowealth/internal/pagination"
)

const newestFirst = "created_at DESC, id DESC"

// tradeService handles trade-related business logic.
type tradeService struct {
	store Store
	audit AuditServicer
}

// NewTradeService creates a new TradeServicer.
func NewTradeService(store Store, audit AuditServicer) TradeServicer {
	return &tradeService{store: store, audit: auditOrNop(audit)}
}

// CreateTrade stores a trade for an existing client.
func (s *tradeService) CreateTrade(ctx context.Context, trade *models.Trade) (*models.Trade, error) {
	if trade == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "trade is required")
	}
	trade.ID = 0
	trade.ClientID = strings.TrimSpace(trade.ClientID)
	trade.AssetName = strings.TrimSpace(trade.AssetName)
	trade.ApplyDefaults()
	if err := validateTrade(trade); err != nil {
		return nil, err
	}

	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		exists, err := clientExists(tx, trade.ClientID)
		if err != nil {
			return translateDBError(err, "trades")
		}
		if !exists {
			return missingClient("trades", trade.ClientID)
		}
		return translateDBError(tx.Create(trade).Error, "trades")
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, "create", "trade", strconv.FormatUint(uint64(trade.ID), 10),
		map[string]any{"client_id": trade.ClientID, "side": trade.Side})
	return trade, nil
}

// GetTradeByID retrieves a trade by id.
func (s *tradeService) GetTradeByID(ctx context.Context, id uint) (*models.Trade, error) {
	var trade models.Trade
	if err := s.store.DB().WithContext(ctx).First(&trade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTradeNotFound
		}
		return nil, translateDBError(err, "trades")
	}
	return &trade, nil
}

// ListClientTrades retrieves a page of a client's trades, newest first.
func (s *tradeService) ListClientTrades(ctx context.Context, clientID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	db := s.store.DB().WithContext(ctx)
	exists, err := clientExists(db, clientID)
	if err != nil {
		return nil, translateDBError(err, "trades")
	}
	if !exists {
		return nil, apperrors.ErrClientNotFound
	}

	query := db.Model(&models.Trade{}).Where("client_id = ?", clientID)
	resp, err := pagination.Find[models.Trade](query, page, newestFirst)
	if err != nil {
		return nil, translateDBError(err, "trades")
	}
	return &resp, nil
}

// UpdateTrade writes the fields set in update to the trade with the given id.
// Supplied fields get the same checks as on create; moving a trade to
// another client requires that client to exist.
func (s *tradeService) UpdateTrade(ctx context.Context, id uint, update TradeUpdate) (*models.Trade, error) {
	columns, err := update.columns()
	if err != nil {
		return nil, err
	}

	var trade models.Trade
	err = s.store.Write(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&trade, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTradeNotFound
			}
			return translateDBError(err, "trades")
		}

		if clientID, ok := columns["client_id"].(string); ok && clientID != trade.ClientID {
			exists, err := clientExists(tx, clientID)
			if err != nil {
				return translateDBError(err, "trades")
			}
			if !exists {
				return missingClient("trades", clientID)
			}
		}
		if len(columns) == 0 {
			return nil
		}

		if err := tx.Model(&models.Trade{}).Where("id = ?", id).Updates(columns).Error; err != nil {
			return translateDBError(err, "trades")
		}
		return translateDBError(tx.First(&trade, id).Error, "trades")
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, "update", "trade", strconv.FormatUint(uint64(id), 10), update.changes())
	return &trade, nil
}

// DeleteTrade removes a trade.
func (s *tradeService) DeleteTrade(ctx context.Context, id uint) error {
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		result := tx.Delete(&models.Trade{}, id)
		if result.Error != nil {
			return translateDBError(result.Error, "trades")
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrTradeNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Log(ctx, "delete", "trade", strconv.FormatUint(uint64(id), 10), nil)
	return nil
}

func validateTrade(t *models.Trade) error {
	switch {
	case t.ClientID == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "client id is required")
	case t.AssetName == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	case !t.AccountType.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown account type %q", t.AccountType))
	case !t.AssetType.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown asset type %q", t.AssetType))
	case !t.AssetRisk.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown asset risk %q", t.AssetRisk))
	case !t.Side.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown side %q", t.Side))
	}
	if t.Quantity != nil {
		q := strings.TrimSpace(*t.Quantity)
		if q == "" {
			t.Quantity = nil
			return nil
		}
		parsed, err := ParseQuantity(q)
		if err != nil {
			return err
		}
		if parsed.All {
			q = models.SellAll
		}
		t.Quantity = &q
	}
	return nil
}

// columns validates the fields set in u and returns them keyed by column.
func (u TradeUpdate) columns() (map[string]any, error) {
	cols := make(map[string]any)

	if u.ClientID != nil {
		v := strings.TrimSpace(*u.ClientID)
		if v == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client id is required")
		}
		cols["client_id"] = v
	}
	if u.AssetName != nil {
		v := strings.TrimSpace(*u.AssetName)
		if v == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
		}
		cols["asset_name"] = v
	}
	if u.AccountType != nil {
		v := u.AccountType.OrDefault()
		if !v.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown account type %q", v))
		}
		cols["account_type"] = string(v)
	}
	if u.AssetType != nil {
		v := u.AssetType.OrDefault()
		if !v.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown asset type %q", v))
		}
		cols["asset_type"] = string(v)
	}
	if u.AssetRisk != nil {
		v := u.AssetRisk.OrDefault()
		if !v.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown asset risk %q", v))
		}
		cols["asset_risk"] = string(v)
	}
	if u.Side != nil {
		v := u.Side.OrDefault()
		if !v.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown side %q", v))
		}
		cols["side"] = string(v)
	}
	if u.Quantity != nil {
		q := strings.TrimSpace(*u.Quantity)
		if q == "" {
			cols["quantity"] = nil
		} else {
			parsed, err := ParseQuantity(q)
			if err != nil {
				return nil, err
			}
			if parsed.All {
				q = models.SellAll
			}
			cols["quantity"] = q
		}
	}

	optional := map[string]*string{
		"time_of_trade": u.TimeOfTrade,
		"date_of_trade": u.DateOfTrade,
		"reason_1":      u.Reason1,
		"reason_2":      u.Reason2,
		"reason_3":      u.Reason3,
	}
	for column, v := range optional {
		if v == nil {
			continue
		}
		if *v == "" {
			cols[column] = nil
			continue
		}
		cols[column] = *v
	}
	return cols, nil
}

// changes lists the columns an update sets.
func (u TradeUpdate) changes() map[string]any {
	cols, _ := u.columns()
	fields := make([]string, 0, len(cols))
	for name := range cols {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return map[string]any{"fields": fields}
}

// ParseQuantity parses a trade quantity. It accepts a positive decimal
// amount, optionally with a leading currency symbol and thousands
// separators, or the literal "Sell All", which yields a zero amount and
// all set to true.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, models.SellAll) {
		return Quantity{All: true}, nil
	}

	cleaned := strings.TrimLeft(s, "£$€")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	amount, err := decimal.NewFromString(cleaned)
	if err != nil || cleaned == "" {
		return Quantity{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("quantity %q must be an amount or %q", s, models.SellAll))
	}
	if !amount.IsPositive() {
		return Quantity{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("quantity %q must be greater than zero", s))
	}
	return Quantity{Amount: amount}, nil
}

// Quantity is a parsed trade quantity.
type Quantity struct {
	Amount decimal.Decimal
	All    bool
}

// String formats the quantity as stored.
func (q Quantity) String() string {
	if q.All {
		return models.SellAll
	}
	return q.Amount.String()
}
