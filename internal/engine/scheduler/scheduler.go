// Package scheduler drives target builds one after another.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/redo/internal/adapters/telemetry"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options tunes a single Run.
type Options struct {
	// FailFast stops at the first failed target instead of continuing.
	FailFast bool
}

// Scheduler builds targets strictly in order. A target that already exists is
// a source and is left alone; a missing one is built from its rule.
type Scheduler struct {
	resolver  ports.TargetResolver
	verifier  ports.Verifier
	rules     ports.RuleFinder
	executor  ports.Executor
	store     ports.BuildRecordStore
	hasher    ports.Hasher
	telemetry ports.Telemetry
	logger    ports.Logger
	now       func() time.Time

	mu     sync.RWMutex
	states map[string]domain.BuildState
}

// NewScheduler creates a Scheduler. A nil telemetry records nothing.
func NewScheduler(
	resolver ports.TargetResolver,
	verifier ports.Verifier,
	rules ports.RuleFinder,
	executor ports.Executor,
	store ports.BuildRecordStore,
	hasher ports.Hasher,
	tel ports.Telemetry,
	logger ports.Logger,
) *Scheduler {
	if tel == nil {
		tel = telemetry.Noop{}
	}
	return &Scheduler{
		resolver:  resolver,
		verifier:  verifier,
		rules:     rules,
		executor:  executor,
		store:     store,
		hasher:    hasher,
		telemetry: tel,
		logger:    logger,
		now:       time.Now,
		states:    make(map[string]domain.BuildState),
	}
}

// State returns the last state recorded for the target at path.
func (s *Scheduler) State(path string) (domain.BuildState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[path]
	return state, ok
}

func (s *Scheduler) updateState(path string, next domain.BuildState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.states[path]; ok && !current.IsTerminal() && !current.CanTransition(next) {
		s.logger.Debug(fmt.Sprintf("unexpected state change %s -> %s for %s", current, next, path))
	}
	s.states[path] = next
}

// Run builds each named target in order. Every failure is logged as it
// happens; the returned error wraps domain.ErrBuildFailed when any target
// failed.
func (s *Scheduler) Run(ctx context.Context, inv domain.Invocation, names []string, opts Options) error {
	if len(names) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	var errs error
	failed := 0

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = errors.Join(errs, err)
			break
		}

		if err := s.build(ctx, inv, name); err != nil {
			wrapped := zerr.With(zerr.Wrap(err, "failed to build target"), "target", name)
			s.logger.Error(wrapped)
			errs = errors.Join(errs, wrapped)
			failed++

			if opts.FailFast {
				break
			}
		}
	}

	if errs == nil {
		return nil
	}
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrBuildFailed, errs), "build failed"), "failed", failed)
}

func (s *Scheduler) build(ctx context.Context, inv domain.Invocation, name string) (err error) {
	target, err := s.resolver.ResolveTarget(inv.WorkDir, name)
	if err != nil {
		return err
	}

	ctx, vertex := s.telemetry.Record(ctx, target.Name)
	defer func() {
		if err != nil {
			if stage, ok := s.State(target.Path); ok {
				s.logger.Debug(fmt.Sprintf("%s failed while %s", target.Name, stage))
			}
			s.updateState(target.Path, domain.BuildStateFailed)
		}
		vertex.Complete(err)
	}()

	s.updateState(target.Path, domain.BuildStateUnresolved)

	exists, err := s.verifier.Exists(target.Path)
	if err != nil {
		return err
	}
	if exists {
		s.updateState(target.Path, domain.BuildStateSource)
		vertex.Cached()
		s.logger.Debug(fmt.Sprintf("%s exists, treating it as a source", target.Name))
		return nil
	}

	record := s.loadRecord(target)

	rule, err := s.rules.FindRule(target)
	if err != nil {
		return err
	}
	s.updateState(target.Path, domain.BuildStateRuleFound)
	vertex.Log(domain.LogLevelDebug, "rule "+rule.Path)

	s.logger.Info("redo " + target.Name)
	s.updateState(target.Path, domain.BuildStateExecuting)
	if err := s.executor.Perform(ctx, inv, target, rule); err != nil {
		return err
	}
	s.updateState(target.Path, domain.BuildStatePromoted)

	s.saveRecord(target, record)
	return nil
}

// loadRecord returns the stored record for target, or a fresh one when the
// record is absent or unreadable.
func (s *Scheduler) loadRecord(target domain.Target) *domain.BuildRecord {
	record, err := s.store.Get(target)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring unreadable build record for %s: %v", target.Name, err))
		return domain.NewBuildRecord(target.Name)
	}
	if record == nil {
		return domain.NewBuildRecord(target.Name)
	}
	if record.IsUpToDate() {
		s.logger.Debug(fmt.Sprintf("%s has an up-to-date record but is missing, rebuilding", target.Name))
	}
	record.Name = target.Name
	return record
}

// saveRecord marks target built. The target is already in place, so a
// failure here is only reported.
func (s *Scheduler) saveRecord(target domain.Target, record *domain.BuildRecord) {
	checksum, err := s.hasher.Checksum(target.Path)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("cannot checksum %s: %v", target.Name, err))
	}
	record.MarkBuilt(checksum, s.now().UTC())

	if err := s.store.Put(target, record); err != nil {
		s.logger.Warn(fmt.Sprintf("cannot write build record for %s: %v", target.Name, err))
	}
}
