package customers

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/victorlai/deliverydesk/constants"
	"github.com/victorlai/deliverydesk/internal/entity"
	"github.com/victorlai/deliverydesk/internal/repository"
)

// Service handles customer directory business logic.
type Service struct {
	repo   repository.CustomerRepository
	logger *slog.Logger
}

// NewService creates a new customer service.
func NewService(repo repository.CustomerRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Search finds customers whose recipient or address contains the query,
// newest first. Queries shorter than two characters are rejected so the
// search box can fire on every keystroke without flooding the store.
func (s *Service) Search(ctx context.Context, query string) ([]*entity.Customer, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < constants.SearchMinQueryLength {
		return nil, status.Errorf(codes.InvalidArgument, "query must be at least %d characters", constants.SearchMinQueryLength)
	}
	out, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "search customers: %v", err)
	}
	return out, nil
}

// ListAll returns every customer, newest first.
func (s *Service) ListAll(ctx context.Context) ([]*entity.Customer, error) {
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list customers: %v", err)
	}
	return out, nil
}

// AddCustomerRequest represents customer creation parameters.
type AddCustomerRequest struct {
	CustomerCode string
	Recipient    string
	Address      string
	TaxID        string
	Notes        string
}

// Add creates one customer from the add form. Recipient and address are
// required, and at least one of customer code / tax ID must be supplied; a
// missing code is backfilled from the tax ID before persisting. A supplied
// code is pre-checked against the store for early feedback, though the store
// keeps the unique key as the final arbiter.
func (s *Service) Add(ctx context.Context, req AddCustomerRequest) (*entity.Customer, error) {
	code := strings.TrimSpace(req.CustomerCode)
	taxID := strings.TrimSpace(req.TaxID)
	recipient := strings.TrimSpace(req.Recipient)
	address := strings.TrimSpace(req.Address)

	if recipient == "" || address == "" {
		return nil, status.Error(codes.InvalidArgument, "recipient and address are required")
	}
	if code == "" && taxID == "" {
		return nil, status.Error(codes.InvalidArgument, "customer code or tax ID is required")
	}

	if code != "" {
		exists, err := s.repo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, status.Errorf(codes.Internal, "check customer code: %v", err)
		}
		if exists {
			return nil, status.Errorf(codes.AlreadyExists, "customer code %q already exists", code)
		}
	}
	if code == "" {
		code = taxID
	}

	c, err := s.repo.Insert(ctx, &entity.Customer{
		CustomerCode: code,
		Recipient:    recipient,
		Address:      address,
		TaxID:        taxID,
		Notes:        strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "insert customer: %v", err)
	}

	s.logger.Info("customer created", "id", c.ID, "code", c.CustomerCode)
	return c, nil
}

// Delete removes one customer by store id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return status.Error(codes.InvalidArgument, "id must be positive")
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return status.Errorf(codes.Internal, "delete customer: %v", err)
	}
	s.logger.Info("customer deleted", "id", id)
	return nil
}

// Update rewrites a customer's own fields. No flow in the UI drives this
// today; it exists for parity with the store's contract.
func (s *Service) Update(ctx context.Context, c *entity.Customer) error {
	if c.ID <= 0 {
		return status.Error(codes.InvalidArgument, "id must be positive")
	}
	if strings.TrimSpace(c.Recipient) == "" || strings.TrimSpace(c.Address) == "" {
		return status.Error(codes.InvalidArgument, "recipient and address are required")
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return status.Errorf(codes.Internal, "update customer: %v", err)
	}
	return nil
}
