package report

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gymhub/backend/internal/domain/report"
	"github.com/gymhub/backend/internal/domain/shared"
	"github.com/gymhub/backend/internal/infrastructure/pdf"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) FindByID(ctx context.Context, id int64) (*report.HealthReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.HealthReport), args.Error(1)
}

func (m *MockReportRepository) FindByMemberDocument(ctx context.Context, document string, filter shared.Filter) ([]report.HealthReport, int64, error) {
	args := m.Called(ctx, document, filter)
	return args.Get(0).([]report.HealthReport), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]report.HealthReport, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]report.HealthReport), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportRepository) Save(ctx context.Context, r *report.HealthReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// fakeRenderer returns the HTML bytes untouched so assertions can look
// inside the "PDF".
type fakeRenderer struct {
	fail bool
}

func (f *fakeRenderer) Render(_ context.Context, html string) ([]byte, error) {
	if f.fail {
		return nil, context.DeadlineExceeded
	}
	return []byte(html), nil
}

func (f *fakeRenderer) Close() error { return nil }

type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	f.objects[key] = data
	return nil
}

func (f *fakeStorage) Download(_ context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return data, nil
}

func (f *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func testReport(t *testing.T) *report.HealthReport {
	t.Helper()
	r, err := report.NewHealthReport("Carla Díaz", "30123456", "sede centro", "Luis Pérez", report.Measurements{
		WeightKg: decimal.RequireFromString("82.5"),
		HeightCm: decimal.RequireFromString("180.0"),
	})
	require.NoError(t, err)
	r.ID = 7
	return r
}

func newReportService(t *testing.T, reports *MockReportRepository, renderer pdf.Renderer, storage ObjectStorage) *Service {
	t.Helper()
	engine, err := pdf.NewTemplateEngine()
	require.NoError(t, err)
	return NewService(reports, engine, renderer, storage, zap.NewNop())
}

func TestServiceRender(t *testing.T) {
	ctx := context.Background()

	t.Run("archives the pdf and records the key", func(t *testing.T) {
		reports := new(MockReportRepository)
		r := testReport(t)
		reports.On("FindByID", ctx, int64(7)).Return(r, nil)
		reports.On("Save", ctx, r).Return(nil)
		storage := newFakeStorage()
		svc := newReportService(t, reports, &fakeRenderer{}, storage)

		resp, err := svc.Render(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "GENERADO", resp.Estado)
		assert.True(t, r.IsRendered())
		assert.True(t, strings.HasPrefix(r.ObjectKey, "hammerx/"))
		assert.True(t, strings.HasSuffix(r.ObjectKey, ".pdf"))

		stored, ok := storage.objects[r.ObjectKey]
		require.True(t, ok)
		assert.Contains(t, string(stored), "Carla Díaz")
	})

	t.Run("re-render keeps the object key", func(t *testing.T) {
		reports := new(MockReportRepository)
		r := testReport(t)
		require.NoError(t, r.MarkRendered("hammerx/fixed-key.pdf"))
		reports.On("FindByID", ctx, int64(7)).Return(r, nil)
		reports.On("Save", ctx, r).Return(nil)
		storage := newFakeStorage()
		svc := newReportService(t, reports, &fakeRenderer{}, storage)

		_, err := svc.Render(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "hammerx/fixed-key.pdf", r.ObjectKey)
		assert.Len(t, storage.objects, 1)
	})

	t.Run("renderer failure surfaces as internal error", func(t *testing.T) {
		reports := new(MockReportRepository)
		reports.On("FindByID", ctx, int64(7)).Return(testReport(t), nil)
		svc := newReportService(t, reports, &fakeRenderer{fail: true}, newFakeStorage())

		_, err := svc.Render(ctx, 7)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INTERNAL", domainErr.Code)
	})
}

func TestServiceDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("draft reports have no pdf", func(t *testing.T) {
		reports := new(MockReportRepository)
		reports.On("FindByID", ctx, int64(7)).Return(testReport(t), nil)
		svc := newReportService(t, reports, &fakeRenderer{}, newFakeStorage())

		_, err := svc.Download(ctx, 7)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("streams the archived file", func(t *testing.T) {
		reports := new(MockReportRepository)
		r := testReport(t)
		require.NoError(t, r.MarkRendered("hammerx/fixed-key.pdf"))
		reports.On("FindByID", ctx, int64(7)).Return(r, nil)
		storage := newFakeStorage()
		storage.objects["hammerx/fixed-key.pdf"] = []byte("%PDF-1.7")
		svc := newReportService(t, reports, &fakeRenderer{}, storage)

		doc, err := svc.Download(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "informe-7.pdf", doc.FileName)
		assert.Equal(t, []byte("%PDF-1.7"), doc.Content)
	})
}
