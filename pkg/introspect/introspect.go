// Package introspect reads the current catalog state of requested objects.
//
// Requests are grouped by namespace and each namespace is queried once.
// The result is an immutable core.Snapshot holding an entry for every
// requested object, with Kind ObjectUnknown for objects the catalog does
// not know.
package introspect

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/leapstack-labs/ddlsync/pkg/core"
)

// CatalogQuerier runs the per-namespace catalog query.
// It returns one entry per existing object among the requested names.
type CatalogQuerier interface {
	QueryCatalog(ctx context.Context, namespace string, objects []string) ([]core.CatalogObject, error)
}

// Options configures an Introspector.
type Options struct {
	// Concurrency bounds the number of namespaces queried at once.
	Concurrency int

	// RateLimit is a global limit on catalog queries per second. Set to <=0 to disable.
	RateLimit float64
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	return o
}

// Introspector builds catalog snapshots.
type Introspector struct {
	querier          CatalogQuerier
	defaultNamespace string
	opts             Options
	limiter          *rate.Limiter
	logger           *slog.Logger
}

// New creates an Introspector. Objects requested without a namespace are
// looked up in defaultNamespace.
func New(querier CatalogQuerier, defaultNamespace string, opts Options, logger *slog.Logger) *Introspector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts = opts.withDefaults()

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Introspector{
		querier:          querier,
		defaultNamespace: defaultNamespace,
		opts:             opts,
		limiter:          limiter,
		logger:           logger,
	}
}

// IntrospectNames parses dotted names ("ns.name") and introspects them.
func (i *Introspector) IntrospectNames(ctx context.Context, names ...string) (*core.Snapshot, error) {
	refs := make([]core.ObjectRef, len(names))
	for n, name := range names {
		refs[n] = core.ParseObjectRef(name)
	}
	return i.Introspect(ctx, refs)
}

// Introspect queries the catalog for every requested object.
//
// A reference carrying a catalog qualifier fails the whole request before
// any query runs. A failed catalog query fails the request with a
// *core.CatalogQueryError; nothing is retried.
func (i *Introspector) Introspect(ctx context.Context, refs []core.ObjectRef) (*core.Snapshot, error) {
	for _, ref := range refs {
		if ref.Catalog != "" {
			return nil, &core.UnsupportedQualificationError{Ref: ref}
		}
	}

	requested := groupByNamespace(refs)
	namespaces := make([]string, 0, len(requested))
	for ns := range requested {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	var mu sync.Mutex
	objects := make(map[string]map[string]core.ObjectState, len(requested))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.opts.Concurrency)

	for _, ns := range namespaces {
		names := requested[ns]
		g.Go(func() error {
			states, err := i.introspectNamespace(gctx, ns, names)
			if err != nil {
				return err
			}
			mu.Lock()
			objects[ns] = states
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return core.NewSnapshot(objects), nil
}

func (i *Introspector) introspectNamespace(ctx context.Context, ns string, names []string) (map[string]core.ObjectState, error) {
	queryNS := ns
	if queryNS == "" {
		queryNS = i.defaultNamespace
	}

	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("failed to wait for catalog rate limit: %w", err)
		}
	}

	i.logger.Debug("querying catalog", slog.String("namespace", queryNS), slog.Int("objects", len(names)))

	found, err := i.querier.QueryCatalog(ctx, queryNS, names)
	if err != nil {
		return nil, &core.CatalogQueryError{Namespace: queryNS, Err: err}
	}

	states := make(map[string]core.ObjectState, len(names))
	for _, name := range names {
		states[name] = core.ObjectState{Kind: core.ObjectUnknown}
	}
	for _, obj := range found {
		if _, ok := states[obj.Name]; !ok {
			i.logger.Debug("ignoring unrequested catalog object",
				slog.String("namespace", queryNS), slog.String("object", obj.Name))
			continue
		}
		states[obj.Name] = Fold(obj)
	}
	return states, nil
}

// Fold reduces a catalog object to its ObjectState. The partition column is
// the column flagged as partitioning; cluster columns are ordered by
// ascending ordinal and columns without an ordinal are not clustered.
func Fold(obj core.CatalogObject) core.ObjectState {
	state := core.ObjectState{Kind: obj.Kind}

	type clustered struct {
		name    string
		ordinal int
	}
	var cluster []clustered
	for _, c := range obj.Columns {
		if c.IsPartition && state.PartitionColumn == "" {
			state.PartitionColumn = c.Name
		}
		if c.ClusterOrdinal != nil {
			cluster = append(cluster, clustered{name: c.Name, ordinal: *c.ClusterOrdinal})
		}
	}
	slices.SortStableFunc(cluster, func(a, b clustered) int { return a.ordinal - b.ordinal })
	for _, c := range cluster {
		state.ClusterColumns = append(state.ClusterColumns, c.name)
	}
	return state
}

// groupByNamespace keys requests by namespace verbatim and removes duplicate names.
func groupByNamespace(refs []core.ObjectRef) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[core.ObjectRef]bool, len(refs))
	for _, ref := range refs {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		out[ref.Namespace] = append(out[ref.Namespace], ref.Name)
	}
	return out
}
