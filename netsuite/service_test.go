package netsuite

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsheet/dimension-engine/cache"
	"github.com/finsheet/dimension-engine/dimension"
	"github.com/finsheet/dimension-engine/suiteql"
)

// =============================================================================
// FAKE TRANSPORT
// =============================================================================

// fakeClient dispatches queries by table name and records every query text.
type fakeClient struct {
	queries []string
	rows    map[string][]suiteql.Row // matched by "FROM <table>" substring
	err     error
}

func (f *fakeClient) dispatch(query string) ([]suiteql.Row, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	for table, rows := range f.rows {
		if strings.Contains(query, "FROM "+table) {
			return rows, nil
		}
	}
	return []suiteql.Row{}, nil
}

func (f *fakeClient) QueryRows(_ context.Context, query string) ([]suiteql.Row, error) {
	return f.dispatch(query)
}

func (f *fakeClient) QueryPaginated(_ context.Context, query, orderBy string) ([]suiteql.Row, error) {
	return f.dispatch(query + " ORDER BY " + orderBy)
}

func (f *fakeClient) queryCount(table string) int {
	n := 0
	for _, q := range f.queries {
		if strings.Contains(q, "FROM "+table) {
			n++
		}
	}
	return n
}

// subsidiaryRows: root(1, USD) <- childA(2, EUR) <- childB(3, EUR)
func subsidiaryRows() []suiteql.Row {
	return []suiteql.Row{
		{"id": "1", "name": "Acme Inc", "fullname": "Acme Inc", "parent": nil, "currencycode": "USD", "currencysymbol": "$"},
		{"id": "2", "name": "Acme Europe", "fullname": "Acme Inc : Acme Europe", "parent": "1", "currencycode": "EUR", "currencysymbol": "€"},
		{"id": "3", "name": "Acme France", "fullname": "Acme Inc : Acme Europe : Acme France", "parent": "2", "currencycode": "EUR", "currencysymbol": "€"},
	}
}

func newTestService(t *testing.T, client *fakeClient) *LookupService {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewLookupService(client, cache.New(cache.NewMemory(), time.Minute), log)
}

// =============================================================================
// CACHE-BACKED FETCHERS
// =============================================================================

func TestGetSubsidiaries_BuildsHierarchyAndCaches(t *testing.T) {
	// GIVEN: three subsidiary rows in a chain
	client := &fakeClient{rows: map[string][]suiteql.Row{"subsidiary s": subsidiaryRows()}}
	svc := newTestService(t, client)
	ctx := context.Background()

	// WHEN: fetching twice
	first, err := svc.GetSubsidiaries(ctx)
	require.NoError(t, err)
	second, err := svc.GetSubsidiaries(ctx)
	require.NoError(t, err)

	// THEN: depths and consolidated views are computed, and the second read
	// is a cache hit returning the value unchanged
	assert.Len(t, first, 5, "3 primaries + 2 consolidated views")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.queryCount("subsidiary s"), "one backing query total")

	byName := map[string]dimension.SubsidiaryItem{}
	for _, s := range first {
		byName[s.Name] = s
	}
	assert.Equal(t, 0, byName["Acme Inc"].Depth)
	assert.Equal(t, 2, byName["Acme France"].Depth)
	view, ok := byName["Acme Inc (Consolidated)"]
	require.True(t, ok)
	assert.Equal(t, "1", view.ID)
	assert.True(t, view.IsConsolidated())
}

func TestGetSubsidiaries_EmptySnapshotIsValidAndCached(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{}}
	svc := newTestService(t, client)
	ctx := context.Background()

	got, err := svc.GetSubsidiaries(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = svc.GetSubsidiaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, client.queryCount("subsidiary s"), "empty list is cached, not an error")
}

func TestGetSubsidiaries_QueryFailurePropagatesAndIsNotCached(t *testing.T) {
	// GIVEN: a failing backend
	client := &fakeClient{err: &suiteql.QueryError{Code: suiteql.CodeHTTPStatus, Message: "boom"}}
	svc := newTestService(t, client)
	ctx := context.Background()

	// WHEN/THEN: the failure surfaces, and a later read retries the query
	_, err := svc.GetSubsidiaries(ctx)
	require.Error(t, err)
	assert.NotNil(t, suiteql.AsQueryError(err), "transport code stays visible to callers")

	client.err = nil
	client.rows = map[string][]suiteql.Row{"subsidiary s": subsidiaryRows()}
	got, err := svc.GetSubsidiaries(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestGetDepartments_OrderedByFullName(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{
		"department": {{"id": "10", "name": "Eng", "fullname": "Acme : Eng", "parent": nil}},
	}}
	svc := newTestService(t, client)

	got, err := svc.GetDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme : Eng", got[0].FullName)
	assert.Contains(t, client.queries[0], "ORDER BY fullname")
}

func TestGetAccountingBookSubsidiaries_RejectsNonNumericBook(t *testing.T) {
	svc := newTestService(t, &fakeClient{})

	_, err := svc.GetAccountingBookSubsidiaries(context.Background(), "2; DROP TABLE")
	assert.Error(t, err)
}

func TestGetAccountingBookSubsidiaries_QueriesSublist(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{
		"accountingbooksubsidiaries": {{"id": "2", "name": "Acme Europe", "fullname": "Acme Inc : Acme Europe", "parent": "1", "currencycode": "EUR"}},
	}}
	svc := newTestService(t, client)

	got, err := svc.GetAccountingBookSubsidiaries(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	assert.Contains(t, client.queries[0], "abs.accountingbook = 2")
}

// =============================================================================
// AGGREGATE FETCH
// =============================================================================

func TestGetAllLookups_JoinsEveryDimension(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{
		"subsidiary s":   subsidiaryRows(),
		"department":     {{"id": "10", "name": "Eng"}},
		"classification": {{"id": "20", "name": "Retail"}},
		"location":       {{"id": "30", "name": "Paris"}},
		"accountingbook": {{"id": "1", "name": "Primary Book", "isprimary": "T"}},
		"budgetcategory": {{"id": "40", "name": "Operating"}},
		"currency":       {{"id": "1", "name": "USD", "symbol": "$"}},
	}}
	svc := newTestService(t, client)

	got, err := svc.GetAllLookups(context.Background())
	require.NoError(t, err)

	assert.Len(t, got.Subsidiaries, 5)
	assert.Len(t, got.Departments, 1)
	assert.Len(t, got.Classes, 1)
	assert.Len(t, got.Locations, 1)
	assert.Len(t, got.AccountingBooks, 1)
	assert.True(t, got.AccountingBooks[0].IsPrimary)
	assert.Len(t, got.BudgetCategories, 1)
	assert.Len(t, got.Currencies, 1)
}

func TestGetAllLookups_AllOrNothing(t *testing.T) {
	// GIVEN: every fetch fails at the transport
	client := &fakeClient{err: &suiteql.QueryError{Code: suiteql.CodeNetwork, Message: "down"}}
	svc := newTestService(t, client)

	// THEN: no partial aggregate is returned
	got, err := svc.GetAllLookups(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)
}

// =============================================================================
// RESOLUTION
// =============================================================================

func TestResolveDimensionID_ConsolidatedRoundTrip(t *testing.T) {
	// GIVEN: "Acme Inc" is a parent subsidiary
	client := &fakeClient{rows: map[string][]suiteql.Row{"subsidiary s": subsidiaryRows()}}
	svc := newTestService(t, client)
	ctx := context.Background()

	// THEN: decorated and undecorated names resolve to the same id
	plain, ok, err := svc.ResolveDimensionID(ctx, dimension.TypeSubsidiary, "Acme Inc")
	require.NoError(t, err)
	require.True(t, ok)

	decorated, ok, err := svc.ResolveDimensionID(ctx, dimension.TypeSubsidiary, "Acme Inc (Consolidated)")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, plain, decorated)
	assert.Equal(t, "1", plain)
}

func TestResolveDimensionID_MissIsAbsentNotError(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{"subsidiary s": subsidiaryRows()}}
	svc := newTestService(t, client)

	_, ok, err := svc.ResolveDimensionID(context.Background(), dimension.TypeSubsidiary, "Nonexistent Corp")
	require.NoError(t, err)
	assert.False(t, ok)
}

// =============================================================================
// WALKS AND CONSOLIDATION
// =============================================================================

func TestGetSubsidiaryAncestors_AcceptsNamesAndIDs(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{"subsidiary s": subsidiaryRows()}}
	svc := newTestService(t, client)
	ctx := context.Background()

	byID, err := svc.GetSubsidiaryAncestors(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, byID)

	byName, err := svc.GetSubsidiaryAncestors(ctx, "Acme France")
	require.NoError(t, err)
	assert.Equal(t, byID, byName)
}

func TestGetSubsidiaryAncestors_UnresolvedFallsBackToRawInput(t *testing.T) {
	// An unknown name falls back to being treated as an id; the walk then
	// yields an empty chain instead of erroring.
	client := &fakeClient{rows: map[string][]suiteql.Row{"subsidiary s": subsidiaryRows()}}
	svc := newTestService(t, client)

	got, err := svc.GetSubsidiaryAncestors(context.Background(), "Ghost Corp")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetSubsidiaryDescendants_IncludesSelf(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{"subsidiary s": subsidiaryRows()}}
	svc := newTestService(t, client)

	got, err := svc.GetSubsidiaryDescendants(context.Background(), "1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, got)
}

func TestResolveCurrencyToConsolidationRoot_PerCurrencyRoots(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{"subsidiary s": subsidiaryRows()}}
	svc := newTestService(t, client)
	ctx := context.Background()

	usd, ok, err := svc.ResolveCurrencyToConsolidationRoot(ctx, "USD", "3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1", usd)

	eur, ok, err := svc.ResolveCurrencyToConsolidationRoot(ctx, "EUR", "3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", eur, "nearer EUR ancestor preferred")

	_, ok, err = svc.ResolveCurrencyToConsolidationRoot(ctx, "GBP", "3")
	require.NoError(t, err)
	assert.False(t, ok, "no root is absent, not an error")
}

func TestGetCurrencies_FilteredBySubsidiaryAncestry(t *testing.T) {
	client := &fakeClient{rows: map[string][]suiteql.Row{
		"subsidiary s": subsidiaryRows(),
		"currency": {
			{"id": "1", "name": "USD", "symbol": "$"},
			{"id": "2", "name": "EUR", "symbol": "€"},
			{"id": "3", "name": "GBP", "symbol": "£"},
		},
	}}
	svc := newTestService(t, client)
	ctx := context.Background()

	// Ancestors of 3 are {2:EUR, 1:USD}; GBP consolidates nowhere above it.
	got, err := svc.GetCurrencies(ctx, "3")
	require.NoError(t, err)
	codes := currencyCodes(got)
	assert.ElementsMatch(t, []string{"USD", "EUR"}, codes)

	// Without a filter: every currency valid somewhere in the snapshot.
	all, err := svc.GetCurrencies(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"USD", "EUR"}, currencyCodes(all))
}

func currencyCodes(items []dimension.CurrencyItem) []string {
	codes := make([]string, len(items))
	for i, c := range items {
		codes[i] = c.Name
	}
	return codes
}
