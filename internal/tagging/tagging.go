// Package tagging is the mutation surface over a store.Store: tag,
// untag, stored-query management, and edit-script application. Every
// method here is the thing that changes tag data, which is exactly the
// set of operations that must invalidate a handler's cached inode
// allocations and materialized query results afterwards.
//
// Grounded on the teacher's extension packages: validate input and call
// the store behind a thin API the cmd package calls into. Audit log
// entries are written by the cmd package, not here.
package tagging

import (
	"context"
	"fmt"

	"github.com/jamesblissett/tagfs/internal/editscript"
	"github.com/jamesblissett/tagfs/internal/fshandler"
	"github.com/jamesblissett/tagfs/internal/query"
	"github.com/jamesblissett/tagfs/internal/store"
	"github.com/jamesblissett/tagfs/internal/validate"
)

// Service wraps a store.Store and invalidates a handler's caches after
// every mutation. A Service with a nil Handler is a valid standalone
// mutator (useful for tests and for CLI invocations that don't have a
// live mount to invalidate).
type Service struct {
	Store   store.Store
	Handler *fshandler.Handler
}

// New returns a Service over s. handler may be nil.
func New(s store.Store, handler *fshandler.Handler) *Service {
	return &Service{Store: s, Handler: handler}
}

func (s *Service) invalidate() {
	if s.Handler != nil {
		s.Handler.Invalidate()
	}
}

// Tag validates path and tag, then records the tagging. Idempotent.
func (s *Service) Tag(ctx context.Context, path, tag string) error {
	p, err := validate.Path(path)
	if err != nil {
		return err
	}
	t, err := validate.Tag(tag)
	if err != nil {
		return err
	}
	if err := s.Store.AddTag(ctx, p, t); err != nil {
		return fmt.Errorf("tag %q with %q: %w", p, t, err)
	}
	s.invalidate()
	return nil
}

// Untag removes a tagging. Idempotent; purges the path if it was its
// last tag.
func (s *Service) Untag(ctx context.Context, path, tag string) error {
	p, err := validate.Path(path)
	if err != nil {
		return err
	}
	t, err := validate.Tag(tag)
	if err != nil {
		return err
	}
	if err := s.Store.RemoveTag(ctx, p, t); err != nil {
		return fmt.Errorf("untag %q from %q: %w", p, t, err)
	}
	s.invalidate()
	return nil
}

// Apply runs an edit script in one transaction.
func (s *Service) Apply(ctx context.Context, script *editscript.Script) error {
	if err := s.Store.ApplyEditScript(ctx, script); err != nil {
		return fmt.Errorf("apply edit script: %w", err)
	}
	s.invalidate()
	return nil
}

// SaveQuery validates the expression and stores it under name.
func (s *Service) SaveQuery(ctx context.Context, name, expression string) error {
	if _, err := query.Parse(expression); err != nil {
		return fmt.Errorf("%w: %w", fshandler.ErrInvalidExpression, err)
	}
	if err := s.Store.SaveQuery(ctx, name, expression); err != nil {
		return fmt.Errorf("save query %q: %w", name, err)
	}
	s.invalidate()
	return nil
}

// DeleteQuery removes a stored query by name.
func (s *Service) DeleteQuery(ctx context.Context, name string) error {
	if err := s.Store.DeleteQuery(ctx, name); err != nil {
		return fmt.Errorf("delete query %q: %w", name, err)
	}
	s.invalidate()
	return nil
}

// Query evaluates expr against the store directly, without going
// through the mount - used by the CLI's "query" command.
func (s *Service) Query(ctx context.Context, expr string, caseFold bool) ([]store.Path, error) {
	e, err := query.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fshandler.ErrInvalidExpression, err)
	}
	return query.Eval(ctx, s.Store, e, caseFold)
}
