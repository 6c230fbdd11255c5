package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "vincowealth/internal/errors"
	"vincowealth/internal/models"
	"vincowealth/internal/pagination"
)

const clientOrder = "last_name ASC, first_name ASC"

// clientService handles client-related business logic.
type clientService struct {
	store Store
	audit AuditServicer
}

// NewClientService creates a new ClientServicer.
func NewClientService(store Store, audit AuditServicer) ClientServicer {
	return &clientService{store: store, audit: auditOrNop(audit)}
}

// CreateClient stores a new client. An empty id is replaced by a generated
// one; empty enum fields take their defaults.
func (s *clientService) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	if client == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "client is required")
	}
	client.ID = strings.TrimSpace(client.ID)
	normalizeClient(client)
	if err := validateClient(client); err != nil {
		return nil, err
	}

	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		if client.ID != "" {
			exists, err := clientExists(tx, client.ID)
			if err != nil {
				return translateDBError(err, "clients")
			}
			if exists {
				return apperrors.WithMessage(apperrors.ErrDuplicateClient,
					fmt.Sprintf("client %q already exists", client.ID))
			}
		}
		return translateDBError(tx.Create(client).Error, "clients")
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, "create", "client", client.ID, nil)
	return client, nil
}

// GetClientByID retrieves a client by id.
func (s *clientService) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := s.store.DB().WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, translateDBError(err, "clients")
	}
	return &client, nil
}

// ListClients retrieves a page of clients ordered by last name, then first name.
func (s *clientService) ListClients(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error) {
	query := s.store.DB().WithContext(ctx).Model(&models.Client{})
	resp, err := pagination.Find[models.Client](query, page, clientOrder)
	if err != nil {
		return nil, translateDBError(err, "clients")
	}
	return &resp, nil
}

// SearchClients retrieves a page of clients whose first or last name
// contains query. An empty query lists every client.
func (s *clientService) SearchClients(ctx context.Context, query string, page pagination.PageRequest) (*pagination.PageResponse[models.Client], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListClients(ctx, page)
	}

	term := "%" + query + "%"
	q := s.store.DB().WithContext(ctx).Model(&models.Client{}).
		Where("first_name LIKE ? OR last_name LIKE ?", term, term)
	resp, err := pagination.Find[models.Client](q, page, clientOrder)
	if err != nil {
		return nil, translateDBError(err, "clients")
	}
	return &resp, nil
}

// UpdateClient writes the fields set in update to the client with the given
// id and refreshes its updated_at timestamp. Only supplied fields are
// validated and written, so rows from older schema versions keep whatever
// the update leaves alone.
func (s *clientService) UpdateClient(ctx context.Context, id string, update ClientUpdate) (*models.Client, error) {
	columns, err := update.columns()
	if err != nil {
		return nil, err
	}

	var client models.Client
	err = s.store.Write(ctx, func(tx *gorm.DB) error {
		exists, err := clientExists(tx, id)
		if err != nil {
			return translateDBError(err, "clients")
		}
		if !exists {
			return apperrors.ErrClientNotFound
		}

		columns["updated_at"] = time.Now()
		if err := tx.Model(&models.Client{}).Where("id = ?", id).Updates(columns).Error; err != nil {
			return translateDBError(err, "clients")
		}
		return translateDBError(tx.Where("id = ?", id).First(&client).Error, "clients")
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, "update", "client", client.ID, update.changes())
	return &client, nil
}

// DeleteClient removes a client. A client that still has trades or
// suitability letters is not deleted.
func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		exists, err := clientExists(tx, id)
		if err != nil {
			return translateDBError(err, "clients")
		}
		if !exists {
			return apperrors.ErrClientNotFound
		}
		if err := checkNoDependents(tx, []string{id}); err != nil {
			return err
		}
		return translateDBError(tx.Where("id = ?", id).Delete(&models.Client{}).Error, "clients")
	})
	if err != nil {
		return err
	}

	s.audit.Log(ctx, "delete", "client", id, nil)
	return nil
}

// ReplaceClients makes the stored client list equal to clients in a single
// transaction. Clients absent from the list are removed, existing ones are
// overwritten, and new ones inserted. Either every change commits or none.
func (s *clientService) ReplaceClients(ctx context.Context, clients []models.Client) (int, error) {
	seen := make(map[string]struct{}, len(clients))
	for i := range clients {
		c := &clients[i]
		c.ID = strings.TrimSpace(c.ID)
		if c.ID == "" {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("client %d: id is required", i+1))
		}
		if _, dup := seen[c.ID]; dup {
			return 0, apperrors.WithMessage(apperrors.ErrDuplicateClient,
				fmt.Sprintf("client %q appears more than once", c.ID))
		}
		seen[c.ID] = struct{}{}

		normalizeClient(c)
		if err := validateClient(c); err != nil {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("client %q: %s", c.ID, err.Error()))
		}
	}

	err := s.store.Write(ctx, func(tx *gorm.DB) error {
		var existing []models.Client
		if err := tx.Select("id", "created_at").Find(&existing).Error; err != nil {
			return translateDBError(err, "clients")
		}

		var removed []string
		createdAt := make(map[string]models.Timestamps, len(existing))
		for _, e := range existing {
			if _, keep := seen[e.ID]; !keep {
				removed = append(removed, e.ID)
				continue
			}
			createdAt[e.ID] = e.Timestamps
		}

		if len(removed) > 0 {
			if err := checkNoDependents(tx, removed); err != nil {
				return err
			}
			if err := tx.Where("id IN ?", removed).Delete(&models.Client{}).Error; err != nil {
				return translateDBError(err, "clients")
			}
		}

		for i := range clients {
			c := &clients[i]
			if ts, ok := createdAt[c.ID]; ok {
				c.CreatedAt = ts.CreatedAt
				if err := tx.Save(c).Error; err != nil {
					return translateDBError(err, "clients")
				}
				continue
			}
			if err := tx.Create(c).Error; err != nil {
				return translateDBError(err, "clients")
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.audit.Log(ctx, "replace", "client", "*", map[string]any{"count": len(clients)})
	return len(clients), nil
}

// checkNoDependents fails with CLIENT_HAS_DEPENDENTS when any of ids is
// referenced by a trade or suitability letter.
func checkNoDependents(tx *gorm.DB, ids []string) error {
	for _, table := range []string{"trades", "suitability_letters"} {
		var n int64
		if err := tx.Table(table).Where("client_id IN ?", ids).Count(&n).Error; err != nil {
			return translateDBError(err, table)
		}
		if n > 0 {
			return apperrors.Integrity(apperrors.ErrClientHasDependents, "clients", foreignKeyFor(table),
				fmt.Sprintf("client is referenced by %d %s row(s)", n, table), nil)
		}
	}
	return nil
}

func normalizeClient(c *models.Client) {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.AccountNumber = strings.TrimSpace(c.AccountNumber)
	c.TypeAccount = strings.TrimSpace(c.TypeAccount)
	c.ApplyDefaults()
}

func validateClient(c *models.Client) error {
	switch {
	case c.FirstName == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "first name is required")
	case c.LastName == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "last name is required")
	case c.AccountNumber == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account number is required")
	case c.TypeAccount == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account type is required")
	case c.LossPct < 0 || c.LossPct > 100:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "capacity for loss must be between 0 and 100")
	case !c.KnowledgeExperience.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("unknown knowledge and experience %q", c.KnowledgeExperience))
	case !c.Objective.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown objective %q", c.Objective))
	case !c.Risk.Valid():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown risk %q", c.Risk))
	}
	return nil
}

// columns validates the fields set in u and returns them keyed by column.
func (u ClientUpdate) columns() (map[string]any, error) {
	cols := make(map[string]any)

	required := []struct {
		column, label string
		v             *string
	}{
		{"first_name", "first name", u.FirstName},
		{"last_name", "last name", u.LastName},
		{"account_number", "account number", u.AccountNumber},
		{"type_account", "account type", u.TypeAccount},
	}
	for _, f := range required {
		if f.v == nil {
			continue
		}
		v := strings.TrimSpace(*f.v)
		if v == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, f.label+" is required")
		}
		cols[f.column] = v
	}

	if u.AnnualReviewDate != nil {
		cols["annual_review_date"] = stringOr(*u.AnnualReviewDate, models.NotApplicable)
	}
	if u.FeesCommissionRate != nil {
		cols["fees_commission_rate"] = stringOr(*u.FeesCommissionRate, models.NotApplicable)
	}

	optional := map[string]*string{
		"investment_manager": u.InvestmentManager,
		"salutation":         u.Salutation,
		"email":              u.Email,
		"phone":              u.Phone,
		"address":            u.Address,
		"power_of_attorney":  u.PowerOfAttorney,
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

	if u.LossPct != nil {
		if *u.LossPct < 0 || *u.LossPct > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "capacity for loss must be between 0 and 100")
		}
		cols["loss_pct"] = *u.LossPct
	}
	if u.KnowledgeExperience != nil {
		k := u.KnowledgeExperience.OrDefault()
		if !k.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("unknown knowledge and experience %q", k))
		}
		cols["knowledge_experience"] = string(k)
	}
	if u.Objective != nil {
		o := u.Objective.OrDefault()
		if !o.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown objective %q", o))
		}
		cols["objective"] = string(o)
	}
	if u.Risk != nil {
		r := u.Risk.OrDefault()
		if !r.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown risk %q", r))
		}
		cols["risk"] = string(r)
	}
	return cols, nil
}

// changes lists the names of the fields an update sets.
func (u ClientUpdate) changes() map[string]any {
	set := map[string]bool{
		"firstName":           u.FirstName != nil,
		"lastName":            u.LastName != nil,
		"investmentManager":   u.InvestmentManager != nil,
		"knowledgeExperience": u.KnowledgeExperience != nil,
		"lossPct":             u.LossPct != nil,
		"accountNumber":       u.AccountNumber != nil,
		"typeAccount":         u.TypeAccount != nil,
		"salutation":          u.Salutation != nil,
		"objective":           u.Objective != nil,
		"risk":                u.Risk != nil,
		"email":               u.Email != nil,
		"phone":               u.Phone != nil,
		"address":             u.Address != nil,
		"powerOfAttorney":     u.PowerOfAttorney != nil,
		"annualReviewDate":    u.AnnualReviewDate != nil,
		"feesCommissionRate":  u.FeesCommissionRate != nil,
	}
	fields := make([]string, 0, len(set))
	for name, ok := range set {
		if ok {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return map[string]any{"fields": fields}
}

func stringOr(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// setOptional stores v, clearing the column when v is empty.
func setOptional(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	s := *v
	*dst = &s
}
