/*
service.go - Cache-backed lookup service

PURPOSE:
  The service API over the dimension snapshots. Each lookup asks the cache
  for a named key and, on miss, runs the backing query, maps rows to typed
  entities, and stores the result. Everything downstream (resolution,
  ancestor walks, consolidation roots) recomputes from the cached snapshot
  on each call, so results are only as fresh as the last successful fetch.

FAILURE POLICY:
  A backing-query failure surfaces from the fetch that triggered it, logged
  with the error code and the lookup being resolved. Failures are never
  cached. Zero rows is a valid organizational state: the empty list is
  cached and returned.

SUBSIDIARY SPECIAL CASE:
  After mapping, the subsidiary fetch runs dimension.BuildHierarchy: depth
  for every node, then one synthesized "(Consolidated)" view per parent.

SEE ALSO:
  - dimension/: Pure algorithms this service feeds
  - cache/cache.go: Get-or-populate primitive
  - api/handlers.go: HTTP surface
*/
package netsuite

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/finsheet/dimension-engine/cache"
	"github.com/finsheet/dimension-engine/dimension"
	"github.com/finsheet/dimension-engine/suiteql"
)

// =============================================================================
// CACHE KEYS
// =============================================================================

const (
	keySubsidiaries     = "lookups:subsidiaries"
	keyDepartments      = "lookups:departments"
	keyClasses          = "lookups:classifications"
	keyLocations        = "lookups:locations"
	keyAccountingBooks  = "lookups:accountingbooks"
	keyBudgetCategories = "lookups:budgetcategories"
	keyCurrencies       = "lookups:currencies"
	keyBookSubsidiaries = "lookups:booksubsidiaries:" // + book id
)

// =============================================================================
// LOOKUP SERVICE
// =============================================================================

// LookupService resolves and caches organizational reference data.
type LookupService struct {
	client suiteql.Client
	cache  *cache.Cache
	log    *logrus.Logger
}

// NewLookupService wires the service to its collaborators.
func NewLookupService(client suiteql.Client, c *cache.Cache, log *logrus.Logger) *LookupService {
	if log == nil {
		log = logrus.New()
	}
	return &LookupService{client: client, cache: c, log: log}
}

// fetchList is the one fetch pipeline: cache read by key, on miss query +
// map + store. mapFn must return a non-nil slice.
func fetchList[T any](ctx context.Context, s *LookupService, key, query, orderBy string, mapFn func([]suiteql.Row) []T) ([]T, error) {
	return cache.GetOrSet(ctx, s.cache, key, func(ctx context.Context) ([]T, error) {
		rows, err := s.client.QueryPaginated(ctx, query, orderBy)
		if err != nil {
			fields := logrus.Fields{"lookup": key}
			if qe := suiteql.AsQueryError(err); qe != nil {
				fields["error_code"] = qe.Code
			}
			s.log.WithFields(fields).WithError(err).Error("lookup query failed")
			return nil, fmt.Errorf("fetch %s: %w", key, err)
		}
		return mapFn(rows), nil
	})
}

// =============================================================================
// CACHE-BACKED FETCHERS
// =============================================================================

// GetSubsidiaries returns the subsidiary snapshot with depths computed and
// consolidated views synthesized.
func (s *LookupService) GetSubsidiaries(ctx context.Context) ([]dimension.SubsidiaryItem, error) {
	return fetchList(ctx, s, keySubsidiaries, querySubsidiaries, "s.fullname",
		func(rows []suiteql.Row) []dimension.SubsidiaryItem {
			return dimension.BuildHierarchy(mapSubsidiaryRows(rows))
		})
}

func (s *LookupService) GetDepartments(ctx context.Context) ([]dimension.DimensionItem, error) {
	return fetchList(ctx, s, keyDepartments, queryDepartments, "fullname", mapDimensionRows)
}

func (s *LookupService) GetClasses(ctx context.Context) ([]dimension.DimensionItem, error) {
	return fetchList(ctx, s, keyClasses, queryClasses, "fullname", mapDimensionRows)
}

func (s *LookupService) GetLocations(ctx context.Context) ([]dimension.DimensionItem, error) {
	return fetchList(ctx, s, keyLocations, queryLocations, "fullname", mapDimensionRows)
}

func (s *LookupService) GetAccountingBooks(ctx context.Context) ([]dimension.AccountingBookItem, error) {
	return fetchList(ctx, s, keyAccountingBooks, queryAccountingBooks, "name", mapAccountingBookRows)
}

func (s *LookupService) GetBudgetCategories(ctx context.Context) ([]dimension.BudgetCategoryItem, error) {
	return fetchList(ctx, s, keyBudgetCategories, queryBudgetCategories, "name", mapBudgetCategoryRows)
}

func (s *LookupService) getCurrencyList(ctx context.Context) ([]dimension.CurrencyItem, error) {
	return fetchList(ctx, s, keyCurrencies, queryCurrencies, "name", mapCurrencyRows)
}

// GetAccountingBookSubsidiaries lists the subsidiaries configured on one
// accounting book. Depths are not computed: the sublist is a filter over the
// tree, not a tree of its own.
func (s *LookupService) GetAccountingBookSubsidiaries(ctx context.Context, bookID string) ([]dimension.SubsidiaryItem, error) {
	if !dimension.IsNumericID(bookID) {
		return nil, fmt.Errorf("invalid accounting book id %q", bookID)
	}
	key := keyBookSubsidiaries + bookID
	return fetchList(ctx, s, key, queryBookSubsidiaries+escapeSQL(bookID), "s.fullname", mapSubsidiaryRows)
}

// =============================================================================
// AGGREGATE FETCH
// =============================================================================

// Lookups is the aggregate of every dimension snapshot.
type Lookups struct {
	Subsidiaries     []dimension.SubsidiaryItem
	Departments      []dimension.DimensionItem
	Classes          []dimension.DimensionItem
	Locations        []dimension.DimensionItem
	AccountingBooks  []dimension.AccountingBookItem
	BudgetCategories []dimension.BudgetCategoryItem
	Currencies       []dimension.CurrencyItem
}

// GetAllLookups fetches every dimension concurrently and joins at the end.
// All-or-nothing: if any one fetch fails, the whole aggregate fails.
func (s *LookupService) GetAllLookups(ctx context.Context) (*Lookups, error) {
	var out Lookups
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { out.Subsidiaries, err = s.GetSubsidiaries(ctx); return })
	g.Go(func() (err error) { out.Departments, err = s.GetDepartments(ctx); return })
	g.Go(func() (err error) { out.Classes, err = s.GetClasses(ctx); return })
	g.Go(func() (err error) { out.Locations, err = s.GetLocations(ctx); return })
	g.Go(func() (err error) { out.AccountingBooks, err = s.GetAccountingBooks(ctx); return })
	g.Go(func() (err error) { out.BudgetCategories, err = s.GetBudgetCategories(ctx); return })
	g.Go(func() (err error) { out.Currencies, err = s.getCurrencyList(ctx); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// NAME/ID RESOLUTION
// =============================================================================

// ResolveDimensionID resolves a free-form name or numeric id to a canonical
// identifier. The boolean is false for a resolution miss, which is not an
// error; only collaborator failures set err.
func (s *LookupService) ResolveDimensionID(ctx context.Context, typ dimension.Type, nameOrID string) (string, bool, error) {
	trimmed := strings.TrimSpace(nameOrID)
	if trimmed == "" {
		return "", false, nil
	}
	// Numeric ids pass through before any fetch happens.
	if dimension.IsNumericID(trimmed) {
		return trimmed, true, nil
	}

	entries, err := s.entriesFor(ctx, typ)
	if err != nil {
		return "", false, err
	}
	id, ok := dimension.ResolveEntry(entries, typ, trimmed)
	return id, ok, nil
}

func (s *LookupService) entriesFor(ctx context.Context, typ dimension.Type) ([]dimension.Entry, error) {
	switch typ {
	case dimension.TypeSubsidiary:
		subs, err := s.GetSubsidiaries(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]dimension.Entry, 0, len(subs))
		for _, it := range subs {
			if it.IsConsolidated() {
				continue
			}
			entries = append(entries, dimension.Entry{ID: it.ID, Name: it.Name, FullName: it.FullName})
		}
		return entries, nil
	case dimension.TypeDepartment, dimension.TypeClass, dimension.TypeLocation:
		var (
			items []dimension.DimensionItem
			err   error
		)
		switch typ {
		case dimension.TypeDepartment:
			items, err = s.GetDepartments(ctx)
		case dimension.TypeClass:
			items, err = s.GetClasses(ctx)
		default:
			items, err = s.GetLocations(ctx)
		}
		if err != nil {
			return nil, err
		}
		entries := make([]dimension.Entry, 0, len(items))
		for _, it := range items {
			entries = append(entries, dimension.Entry{ID: it.ID, Name: it.Name, FullName: it.FullName})
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unknown dimension type %q", typ)
	}
}

// resolveSubsidiary resolves nameOrID, falling back to the raw input when
// resolution misses (callers may pass ids the snapshot has never seen).
func (s *LookupService) resolveSubsidiary(ctx context.Context, nameOrID string) (string, error) {
	id, ok, err := s.ResolveDimensionID(ctx, dimension.TypeSubsidiary, nameOrID)
	if err != nil {
		return "", err
	}
	if !ok {
		s.log.WithField("input", nameOrID).Warn("subsidiary did not resolve; using raw input as id")
		return nameOrID, nil
	}
	return id, nil
}

// =============================================================================
// HIERARCHY WALKS
// =============================================================================

// GetSubsidiaryAncestors returns the ancestor chain of a subsidiary,
// immediate parent first, root last.
func (s *LookupService) GetSubsidiaryAncestors(ctx context.Context, subsidiaryID string) ([]string, error) {
	id, err := s.resolveSubsidiary(ctx, subsidiaryID)
	if err != nil {
		return nil, err
	}
	subs, err := s.GetSubsidiaries(ctx)
	if err != nil {
		return nil, err
	}
	return dimension.Ancestors(subs, id), nil
}

// GetSubsidiaryDescendants returns the subsidiary plus everything below it.
func (s *LookupService) GetSubsidiaryDescendants(ctx context.Context, subsidiaryID string) ([]string, error) {
	id, err := s.resolveSubsidiary(ctx, subsidiaryID)
	if err != nil {
		return nil, err
	}
	subs, err := s.GetSubsidiaries(ctx)
	if err != nil {
		return nil, err
	}
	return dimension.Descendants(subs, id), nil
}

// =============================================================================
// CONSOLIDATION
// =============================================================================

// ResolveCurrencyToConsolidationRoot picks the nearest non-elimination
// ancestor denominated in currencyCode. A miss is absent-not-error and is
// logged for diagnosis: it is an expected occurrence for misconfigured
// currency/subsidiary combinations.
func (s *LookupService) ResolveCurrencyToConsolidationRoot(ctx context.Context, currencyCode, subsidiaryID string) (string, bool, error) {
	id, err := s.resolveSubsidiary(ctx, subsidiaryID)
	if err != nil {
		return "", false, err
	}
	subs, err := s.GetSubsidiaries(ctx)
	if err != nil {
		return "", false, err
	}

	root, ok := dimension.ConsolidationRoot(subs, currencyCode, id)
	if !ok {
		s.log.WithFields(logrus.Fields{
			"currency":      currencyCode,
			"subsidiary_id": id,
		}).Info("no valid consolidation root")
		return "", false, nil
	}
	return root, true, nil
}

// GetCurrencies returns the currencies valid as consolidation roots. With a
// subsidiary filter, that is the distinct non-elimination currencies among
// its ancestors; without one, every currency that consolidates somewhere in
// the snapshot.
func (s *LookupService) GetCurrencies(ctx context.Context, subsidiaryID string) ([]dimension.CurrencyItem, error) {
	currencies, err := s.getCurrencyList(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.GetSubsidiaries(ctx)
	if err != nil {
		return nil, err
	}

	var codes []string
	if subsidiaryID == "" {
		codes = dimension.AllValidCurrencies(subs)
	} else {
		id, err := s.resolveSubsidiary(ctx, subsidiaryID)
		if err != nil {
			return nil, err
		}
		codes = dimension.ValidCurrencies(subs, id)
	}

	valid := make(map[string]bool, len(codes))
	for _, c := range codes {
		valid[strings.ToUpper(c)] = true
	}

	out := make([]dimension.CurrencyItem, 0, len(currencies))
	for _, c := range currencies {
		if valid[strings.ToUpper(c.Name)] {
			out = append(out, c)
		}
	}
	return out, nil
}
