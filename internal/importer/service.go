package importer

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/victorlai/deliverydesk/internal/entity"
	"github.com/victorlai/deliverydesk/internal/repository"
)

// Service runs the bulk customer import pipeline: workbook parse →
// normalization → validation → in-batch duplicate gate → persisted-conflict
// gate → one atomic bulk insert. Any stage failure aborts the whole import;
// nothing is written until both gates have passed.
type Service struct {
	repo    repository.CustomerRepository
	mapping FieldMapping
	logger  *slog.Logger
}

func NewService(repo repository.CustomerRepository, mapping FieldMapping, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if len(mapping.Recipient) == 0 {
		mapping = DefaultMapping()
	}
	return &Service{repo: repo, mapping: mapping, logger: logger}
}

// ImportResult reports the outcome of one import attempt. On gate failures
// the offending codes are carried here alongside the returned status error.
type ImportResult struct {
	Inserted       int      `json:"inserted"`
	RowsRead       int      `json:"rows_read"`
	DuplicateCodes []string `json:"duplicate_codes,omitempty"`
	ConflictCodes  []string `json:"conflict_codes,omitempty"`
}

// Import executes the pipeline against one uploaded workbook.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	rows, err := ParseWorkbook(r)
	if err != nil {
		s.logger.Error("workbook parse failed", "error", err)
		return ImportResult{}, status.Error(codes.InvalidArgument, "file is not a readable workbook")
	}
	result := ImportResult{RowsRead: len(rows)}
	if len(rows) == 0 {
		return result, status.Error(codes.InvalidArgument, "file is empty or has no data rows")
	}

	candidates := make([]*entity.Customer, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, s.mapping.Normalize(row))
	}
	candidates = Validate(candidates)
	if len(candidates) == 0 {
		return result, status.Error(codes.InvalidArgument, "no valid rows: recipient, address and a customer code or tax ID are required")
	}

	// Gate 1: duplicates within the file itself. Runs before any store access.
	if dups := DuplicateCodes(candidates); len(dups) > 0 {
		result.DuplicateCodes = dups
		s.logger.Warn("import rejected: duplicate codes in file", "codes", dups)
		return result, status.Errorf(codes.AlreadyExists, "duplicate customer codes in file: %s", strings.Join(dups, ", "))
	}

	// Gate 2: codes already persisted. One read, no writes yet.
	codesList := make([]string, len(candidates))
	for i, c := range candidates {
		codesList[i] = c.CustomerCode
	}
	existing, err := s.repo.ExistingCodes(ctx, codesList)
	if err != nil {
		return result, status.Error(codes.Internal, "checking existing customer codes failed")
	}
	if len(existing) > 0 {
		result.ConflictCodes = existing
		s.logger.Warn("import rejected: codes already on file", "codes", existing)
		return result, status.Errorf(codes.AlreadyExists, "customer codes already exist: %s", strings.Join(existing, ", "))
	}

	n, err := s.repo.InsertMany(ctx, candidates)
	if err != nil {
		s.logger.Error("bulk insert failed", "rows", len(candidates), "error", err)
		return result, status.Error(codes.Internal, "bulk insert failed; no rows were imported")
	}

	result.Inserted = n
	s.logger.Info("import succeeded", "rows_read", result.RowsRead, "inserted", n)
	return result, nil
}
