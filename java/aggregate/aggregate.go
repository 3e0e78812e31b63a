// Package aggregate builds the documented field and method views of a type
// from its declaration, its ancestors and their documentation comments.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/enumconst"
	"github.com/dhamidi/saidoc/java/javadoc"
	"github.com/dhamidi/saidoc/java/link"
)

var log = commonlog.GetLogger("saidoc.aggregate")

type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return "unknown type " + e.Name
}

// Aggregator computes FieldViews and MethodViews. It memoizes per type
// instantiation and per documented member and is safe for concurrent use.
// Returned views share slices and maps with the cache and must be treated
// as read-only.
type Aggregator struct {
	table    java.SymbolTable
	links    *link.Resolver
	notation javadoc.Notation

	group singleflight.Group
	mu    sync.Mutex
	views map[string]viewEntry

	docs  sync.Map // member key -> *memberDoc
	enums sync.Map // class name -> *enumEntry

	computed atomic.Int64
}

type viewEntry struct {
	views []FieldView
	err   error
}

type Option func(*Aggregator)

// WithNotation fixes the comment notation instead of detecting it per
// comment.
func WithNotation(n javadoc.Notation) Option {
	return func(a *Aggregator) {
		a.notation = n
	}
}

// WithLinkResolver replaces the resolver built from the symbol table.
func WithLinkResolver(r *link.Resolver) Option {
	return func(a *Aggregator) {
		a.links = r
	}
}

func New(table java.SymbolTable, opts ...Option) *Aggregator {
	a := &Aggregator{
		table:    table,
		notation: javadoc.Auto,
		views:    make(map[string]viewEntry),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.links == nil {
		a.links = link.NewResolver(table)
	}
	return a
}

// Links returns the resolver used for member comments.
func (a *Aggregator) Links() *link.Resolver {
	return a.links
}

// Computed returns how many type instantiations have been aggregated, not
// counting cache hits.
func (a *Aggregator) Computed() int64 {
	return a.computed.Load()
}

// Fields returns the field views of t in output order: ancestor fields
// first, declaration order within a class, @unwrapped fields replaced by
// the fields of their type. Failures scoped to single fields are joined
// into the error while the remaining views are still returned.
func (a *Aggregator) Fields(ctx context.Context, t java.TypeModel) ([]FieldView, error) {
	views, err := a.declared(ctx, t)
	if views == nil {
		return nil, err
	}
	log.Debugf("expanding %d fields of %s", len(views), t)
	expanded, expandErr := a.expand(ctx, views, []java.TypeModel{t})
	return expanded, errors.Join(err, expandErr)
}

// FieldsAll aggregates types concurrently with at most jobs workers. The
// result at index i belongs to types[i]; a failing type leaves its
// siblings unaffected.
func (a *Aggregator) FieldsAll(ctx context.Context, types []java.TypeModel, jobs int) ([][]FieldView, error) {
	results := make([][]FieldView, len(types))
	errs := make([]error, len(types))

	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, t := range types {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			views, err := a.Fields(ctx, t)
			results[i] = views
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", t, err)
			}
			return nil
		})
	}
	g.Wait()
	return results, errors.Join(errs...)
}

// declared returns the memoized views of t before @unwrapped expansion.
// Concurrent callers for the same key share one computation.
func (a *Aggregator) declared(ctx context.Context, t java.TypeModel) ([]FieldView, error) {
	key := t.Key()
	if e, ok := a.cached(key); ok {
		log.Debugf("field views of %s cached", key)
		return e.views, e.err
	}

	for {
		v, err, _ := a.group.Do(key, func() (any, error) {
			if e, ok := a.cached(key); ok {
				return e, nil
			}
			views, err := a.compute(ctx, t)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e := viewEntry{views: views, err: err}
			a.mu.Lock()
			a.views[key] = e
			a.mu.Unlock()
			a.computed.Add(1)
			return e, nil
		})
		if err != nil {
			// the shared computation was cancelled by another caller
			if ctx.Err() == nil && isCancellation(err) {
				continue
			}
			return nil, err
		}
		e := v.(viewEntry)
		return e.views, e.err
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (a *Aggregator) cached(key string) (viewEntry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.views[key]
	return e, ok
}

// compute collects the fields of t's inheritance chain. A field redeclared
// lower in the chain hides the ancestor's field of the same name.
func (a *Aggregator) compute(ctx context.Context, t java.TypeModel) ([]FieldView, error) {
	links, err := a.chain(ctx, t)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	visible := make([][]*java.FieldModel, len(links))
	for i, l := range links {
		for j := range l.class.Fields {
			f := &l.class.Fields[j]
			if f.IsStatic || seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			visible[i] = append(visible[i], f)
		}
	}

	var views []FieldView
	var errs []error
	for i := len(links) - 1; i >= 0; i-- {
		for _, f := range visible[i] {
			if err := ctx.Err(); err != nil {
				return views, err
			}
			view, err := a.fieldView(links, i, f)
			if err != nil {
				errs = append(errs, &FieldError{Field: links[i].class.Name + "#" + f.Name, Err: err})
				continue
			}
			views = append(views, view)
		}
	}
	return views, errors.Join(errs...)
}

// expand replaces @unwrapped fields with the fields of their type. stack
// holds the types being expanded. A class that comes back on the stack is a
// cycle even when its type arguments differ, since Wrap<T> unwrapping
// Wrap<List<T>> never reaches a fixed point.
func (a *Aggregator) expand(ctx context.Context, views []FieldView, stack []java.TypeModel) ([]FieldView, error) {
	out := make([]FieldView, 0, len(views))
	var errs []error
	for _, v := range views {
		if err := ctx.Err(); err != nil {
			return out, errors.Join(append(errs, err)...)
		}
		if !v.expand {
			out = append(out, v)
			continue
		}

		field := v.Declaring + "#" + v.FieldName
		inner := append(append([]java.TypeModel(nil), stack...), v.Type)
		if onStack(stack, v.Type) {
			errs = append(errs, &CyclicUnwrapError{Field: field, Path: keys(inner)})
			continue
		}

		children, err := a.declared(ctx, v.Type)
		if err != nil {
			errs = append(errs, &FieldError{Field: field, Err: err})
		}
		children, err = a.expand(ctx, children, inner)
		if err != nil {
			errs = append(errs, err)
		}
		for _, child := range children {
			child.Unwrapped = true
			if child.UnwrappedFrom == "" {
				child.UnwrappedFrom = v.FieldName
			}
			out = append(out, child)
		}
	}
	return out, errors.Join(errs...)
}

func onStack(stack []java.TypeModel, t java.TypeModel) bool {
	raw := t.Raw().Key()
	for _, s := range stack {
		if s.Raw().Key() == raw {
			return true
		}
	}
	return false
}

func keys(types []java.TypeModel) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Key()
	}
	return out
}

type enumEntry struct {
	once   sync.Once
	values []enumconst.EnumValue
}

// enumValues resolves the constants of an enum class once.
func (a *Aggregator) enumValues(class *java.ClassModel) []enumconst.EnumValue {
	v, _ := a.enums.LoadOrStore(class.Name, &enumEntry{})
	e := v.(*enumEntry)
	e.once.Do(func() {
		values, err := enumconst.ResolveEnum(class)
		if err != nil {
			log.Warningf("%s", err)
		}
		e.values = values
	})
	return e.values
}
