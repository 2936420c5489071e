package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testAPI(url string, apiType apiscout.APIType, confidence float64) *apiscout.API {
	return &apiscout.API{
		Name:         "bank.example - " + string(apiType),
		Type:         apiType,
		URL:          url,
		SourcePage:   url + "/developer",
		Confidence:   confidence,
		Keywords:     []string{"general:psd2", "ais:balance"},
		DiscoveredAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestInventoryService_MergeAPIs(t *testing.T) {
	t.Parallel()

	t.Run("inserts new records", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewInventoryService(mustOpenDB(t))
		ctx := context.Background()

		updated, err := s.MergeAPIs(ctx, []*apiscout.API{
			testAPI("https://bank.example", apiscout.APITypeAIS, 0.6),
			testAPI("https://bank.example", apiscout.APITypePIS, 0.4),
		})

		require.NoError(t, err)
		assert.Equal(t, 2, updated)

		apis, err := s.FindAPIs(ctx, apiscout.APIFilter{})
		require.NoError(t, err)
		require.Len(t, apis, 2)
		assert.Equal(t, []string{"general:psd2", "ais:balance"}, apis[0].Keywords)
	})

	t.Run("higher confidence replaces stored record", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewInventoryService(mustOpenDB(t))
		ctx := context.Background()

		_, err := s.MergeAPIs(ctx, []*apiscout.API{testAPI("https://bank.example", apiscout.APITypeAIS, 0.4)})
		require.NoError(t, err)

		better := testAPI("https://bank.example", apiscout.APITypeAIS, 0.8)
		better.Description = "richer page"
		updated, err := s.MergeAPIs(ctx, []*apiscout.API{better})
		require.NoError(t, err)
		assert.Equal(t, 1, updated)

		apis, err := s.FindAPIs(ctx, apiscout.APIFilter{})
		require.NoError(t, err)
		require.Len(t, apis, 1)
		assert.Equal(t, 0.8, apis[0].Confidence)
		assert.Equal(t, "richer page", apis[0].Description)
	})

	t.Run("lower confidence does not overwrite", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewInventoryService(mustOpenDB(t))
		ctx := context.Background()

		_, err := s.MergeAPIs(ctx, []*apiscout.API{testAPI("https://bank.example", apiscout.APITypeAIS, 0.8)})
		require.NoError(t, err)

		updated, err := s.MergeAPIs(ctx, []*apiscout.API{testAPI("https://bank.example", apiscout.APITypeAIS, 0.3)})
		require.NoError(t, err)
		assert.Equal(t, 0, updated)

		apis, err := s.FindAPIs(ctx, apiscout.APIFilter{})
		require.NoError(t, err)
		require.Len(t, apis, 1)
		assert.Equal(t, 0.8, apis[0].Confidence)
	})

	t.Run("equal confidence takes the newer record", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewInventoryService(mustOpenDB(t))
		ctx := context.Background()

		_, err := s.MergeAPIs(ctx, []*apiscout.API{testAPI("https://bank.example", apiscout.APITypeAIS, 0.5)})
		require.NoError(t, err)

		newer := testAPI("https://bank.example", apiscout.APITypeAIS, 0.5)
		newer.SourcePage = "https://bank.example/apis/accounts"
		updated, err := s.MergeAPIs(ctx, []*apiscout.API{newer})
		require.NoError(t, err)
		assert.Equal(t, 1, updated)

		apis, err := s.FindAPIs(ctx, apiscout.APIFilter{})
		require.NoError(t, err)
		require.Len(t, apis, 1)
		assert.Equal(t, "https://bank.example/apis/accounts", apis[0].SourcePage)
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewInventoryService(mustOpenDB(t))

		_, err := s.MergeAPIs(context.Background(), []*apiscout.API{{Name: "no url"}})

		assert.Equal(t, apiscout.EINVALID, apiscout.ErrorCode(err))
	})
}

func TestInventoryService_FindAPIs(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.InventoryService {
		t.Helper()
		s := sqlite.NewInventoryService(mustOpenDB(t))
		_, err := s.MergeAPIs(context.Background(), []*apiscout.API{
			testAPI("https://bank.example", apiscout.APITypeAIS, 0.9),
			testAPI("https://bank.example", apiscout.APITypePIS, 0.5),
			testAPI("https://other.example", apiscout.APITypeAIS, 0.7),
		})
		require.NoError(t, err)
		return s
	}

	t.Run("sorts by confidence descending", func(t *testing.T) {
		t.Parallel()

		apis, err := seed(t).FindAPIs(context.Background(), apiscout.APIFilter{})

		require.NoError(t, err)
		require.Len(t, apis, 3)
		assert.Equal(t, 0.9, apis[0].Confidence)
		assert.Equal(t, 0.7, apis[1].Confidence)
		assert.Equal(t, 0.5, apis[2].Confidence)
	})

	t.Run("filters by type", func(t *testing.T) {
		t.Parallel()

		apiType := apiscout.APITypePIS
		apis, err := seed(t).FindAPIs(context.Background(), apiscout.APIFilter{Type: &apiType})

		require.NoError(t, err)
		require.Len(t, apis, 1)
		assert.Equal(t, apiscout.APITypePIS, apis[0].Type)
	})

	t.Run("filters by site URL", func(t *testing.T) {
		t.Parallel()

		site := "https://other.example"
		apis, err := seed(t).FindAPIs(context.Background(), apiscout.APIFilter{SiteURL: &site})

		require.NoError(t, err)
		require.Len(t, apis, 1)
		assert.Equal(t, site, apis[0].URL)
	})

	t.Run("filters by minimum confidence", func(t *testing.T) {
		t.Parallel()

		apis, err := seed(t).FindAPIs(context.Background(), apiscout.APIFilter{MinConfidence: 0.6})

		require.NoError(t, err)
		assert.Len(t, apis, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		apis, err := seed(t).FindAPIs(context.Background(), apiscout.APIFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, apis, 1)
		assert.Equal(t, 0.7, apis[0].Confidence)
	})
}

func TestInventoryService_BuildReport(t *testing.T) {
	t.Parallel()

	s := sqlite.NewInventoryService(mustOpenDB(t))
	ctx := context.Background()

	_, err := s.MergeAPIs(ctx, []*apiscout.API{
		testAPI("https://bank.example", apiscout.APITypeAIS, 0.9),
		testAPI("https://other.example", apiscout.APITypeCAF, 0.3),
	})
	require.NoError(t, err)

	require.NoError(t, s.SaveScanResult(ctx, &apiscout.SiteResult{
		URL:          "https://bank.example/",
		Status:       apiscout.ScanStatusSuccess,
		PagesScanned: 12,
		APIPages: []apiscout.PageMatch{
			{URL: "https://bank.example/developer", Relevance: 0.9, Keywords: []string{"general:psd2"}},
		},
	}))
	require.NoError(t, s.SaveScanResult(ctx, &apiscout.SiteResult{
		URL:    "https://down.example",
		Status: apiscout.ScanStatusError,
		Error:  "HTTP 503",
	}))

	report, err := s.BuildReport(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalAPIs)
	assert.False(t, report.LastUpdated.IsZero())
	require.Len(t, report.ScanResults, 2)

	bank := report.ScanResults[0]
	assert.Equal(t, "https://bank.example/", bank.URL)
	assert.Equal(t, 12, bank.PagesScanned)
	require.Len(t, bank.APIPages, 1)
	require.Len(t, bank.APIs, 1)
	assert.Equal(t, apiscout.APITypeAIS, bank.APIs[0].Type)

	down := report.ScanResults[1]
	assert.Equal(t, apiscout.ScanStatusError, down.Status)
	assert.Empty(t, down.APIs)
}

func TestInventoryService_BuildReport_keeps_latest_scan_per_site(t *testing.T) {
	t.Parallel()

	s := sqlite.NewInventoryService(mustOpenDB(t))
	ctx := context.Background()

	require.NoError(t, s.SaveScanResult(ctx, &apiscout.SiteResult{
		URL: "https://bank.example", Status: apiscout.ScanStatusError, Error: "HTTP 500",
	}))
	require.NoError(t, s.SaveScanResult(ctx, &apiscout.SiteResult{
		URL: "https://bank.example", Status: apiscout.ScanStatusSuccess, PagesScanned: 4,
	}))

	report, err := s.BuildReport(ctx)

	require.NoError(t, err)
	require.Len(t, report.ScanResults, 1)
	assert.Equal(t, apiscout.ScanStatusSuccess, report.ScanResults[0].Status)
	assert.Equal(t, 4, report.ScanResults[0].PagesScanned)
}
