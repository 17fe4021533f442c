package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/victorlai/deliverydesk/internal/entity"
	"github.com/victorlai/deliverydesk/internal/repository"
)

// -------- test fakes --------

type fakeCustomerRepo struct {
	repository.CustomerRepository

	existing    []string
	existingErr error
	insertErr   error

	existingCalls int
	insertCalls   int
	inserted      []*entity.Customer
}

func (f *fakeCustomerRepo) ExistingCodes(ctx context.Context, codes []string) ([]string, error) {
	f.existingCalls++
	return f.existing, f.existingErr
}

func (f *fakeCustomerRepo) InsertMany(ctx context.Context, cs []*entity.Customer) (int, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, cs...)
	return len(cs), nil
}

// workbook builds an in-memory XLSX file from a header row plus data rows.
func workbook(t *testing.T, rows [][]string) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func newTestService(repo repository.CustomerRepository) *Service {
	return NewService(repo, DefaultMapping(), slog.New(slog.DiscardHandler))
}

func statusCode(t *testing.T, err error) codes.Code {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok)
	return st.Code()
}

// -------- tests --------

func TestImportHappyPath(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := newTestService(repo)

	r := workbook(t, [][]string{
		{"客戶代碼", "收貨人", "地址", "統編"},
		{"C1", "王", "台北", ""},
		{"", "陳", "台中", "T9"},
	})
	res, err := svc.Import(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 2, res.RowsRead)
	assert.Equal(t, 1, repo.insertCalls)
	require.Len(t, repo.inserted, 2)
	assert.Equal(t, "C1", repo.inserted[0].CustomerCode)
	// Code backfilled from tax ID for the second row.
	assert.Equal(t, "T9", repo.inserted[1].CustomerCode)
	assert.Equal(t, "T9", repo.inserted[1].TaxID)
}

func TestImportRejectsEmptyWorkbook(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := newTestService(repo)

	res, err := svc.Import(context.Background(), workbook(t, [][]string{
		{"客戶代碼", "收貨人", "地址"},
	}))
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))
	assert.Zero(t, res.Inserted)
	assert.Zero(t, repo.existingCalls)
	assert.Zero(t, repo.insertCalls)
}

func TestImportRejectsUnreadableFile(t *testing.T) {
	svc := newTestService(&fakeCustomerRepo{})

	_, err := svc.Import(context.Background(), bytes.NewReader([]byte("not an xlsx")))
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))
}

func TestImportRejectsWhenAllRowsInvalid(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := newTestService(repo)

	res, err := svc.Import(context.Background(), workbook(t, [][]string{
		{"收貨人", "地址"},
		{"王", "台北"}, // neither code nor tax id
	}))
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, statusCode(t, err))
	assert.Equal(t, 1, res.RowsRead)
	assert.Zero(t, repo.existingCalls)
}

func TestImportDuplicateGateRunsBeforeStoreAccess(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := newTestService(repo)

	res, err := svc.Import(context.Background(), workbook(t, [][]string{
		{"客戶代碼", "收貨人", "地址"},
		{"A", "王", "台北"},
		{"B", "陳", "台中"},
		{"A", "李", "高雄"},
	}))
	require.Error(t, err)
	assert.Equal(t, codes.AlreadyExists, statusCode(t, err))
	assert.Equal(t, []string{"A"}, res.DuplicateCodes)
	// The whole import aborts before any store call.
	assert.Zero(t, repo.existingCalls)
	assert.Zero(t, repo.insertCalls)
}

func TestImportConflictGateRejectsWholeBatch(t *testing.T) {
	repo := &fakeCustomerRepo{existing: []string{"X"}}
	svc := newTestService(repo)

	res, err := svc.Import(context.Background(), workbook(t, [][]string{
		{"客戶代碼", "收貨人", "地址"},
		{"X", "王", "台北"},
		{"Y", "陳", "台中"},
	}))
	require.Error(t, err)
	assert.Equal(t, codes.AlreadyExists, statusCode(t, err))
	assert.Equal(t, []string{"X"}, res.ConflictCodes)
	assert.Equal(t, 1, repo.existingCalls)
	// One read, zero writes.
	assert.Zero(t, repo.insertCalls)
	assert.Zero(t, res.Inserted)
}

func TestImportConflictCheckFailure(t *testing.T) {
	repo := &fakeCustomerRepo{existingErr: errors.New("store down")}
	svc := newTestService(repo)

	_, err := svc.Import(context.Background(), workbook(t, [][]string{
		{"客戶代碼", "收貨人", "地址"},
		{"A", "王", "台北"},
	}))
	require.Error(t, err)
	assert.Equal(t, codes.Internal, statusCode(t, err))
	assert.Zero(t, repo.insertCalls)
}

func TestImportInsertFailure(t *testing.T) {
	repo := &fakeCustomerRepo{insertErr: errors.New("write rejected")}
	svc := newTestService(repo)

	res, err := svc.Import(context.Background(), workbook(t, [][]string{
		{"客戶代碼", "收貨人", "地址"},
		{"A", "王", "台北"},
	}))
	require.Error(t, err)
	assert.Equal(t, codes.Internal, statusCode(t, err))
	assert.Zero(t, res.Inserted)
}

func TestImportCallsInsertManyOnceWithAllSurvivors(t *testing.T) {
	repo := &fakeCustomerRepo{}
	svc := newTestService(repo)

	res, err := svc.Import(context.Background(), workbook(t, [][]string{
		{"客戶代碼", "收貨人", "地址"},
		{"A", "r1", "a1"},
		{"B", "r2", "a2"},
		{"C", "r3", "a3"},
		{"", "dropped", ""}, // invalid row is filtered, not fatal
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 1, repo.insertCalls)
	assert.Len(t, repo.inserted, 3)
}
