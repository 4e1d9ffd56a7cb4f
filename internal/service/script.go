package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/scripts/internal/errs"
	"github.com/deppfellow/scripts/internal/lib/job"
	"github.com/deppfellow/scripts/internal/model"
	"github.com/deppfellow/scripts/internal/repository"
	"github.com/deppfellow/scripts/internal/sqlerr"
	"github.com/deppfellow/scripts/internal/validation"
)

// Client-facing messages.
const (
	MsgEntryNotFound     = "Entry not found"
	MsgSomethingWrong    = "Something went wrong"
	MsgAlreadyUpdated    = "Entry already updated"
	MsgMissingIDArgument = "Required argument does not exists: id"
)

// NotifyTimeout bounds how long a write waits on publishing its change event.
const NotifyTimeout = 2 * time.Second

// ScriptFieldRules is the fixed allow-list of writable script columns.
// Every column must be present and non-empty on create and update.
var ScriptFieldRules = validation.NewFieldRules(
	validation.FieldRule{Field: "title", Rules: []validation.Rule{validation.NotEmpty()}},
	validation.FieldRule{Field: "position", Rules: []validation.Rule{validation.NotEmpty()}},
	validation.FieldRule{Field: "status", Rules: []validation.Rule{validation.NotEmpty()}},
)

// ScriptStore is the storage ScriptService needs; *repository.ScriptRepository
// satisfies it.
type ScriptStore interface {
	Find(ctx context.Context, id int64) (*model.Script, error)
	All(ctx context.Context) ([]model.Script, error)
	InsertGetID(ctx context.Context, fields map[string]any) (int64, error)
	UpdateWhereID(ctx context.Context, id int64, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ChangeNotifier publishes an event after a successful write.
type ChangeNotifier interface {
	NotifyScriptChanged(ctx context.Context, action job.Action, script model.Script) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyScriptChanged(context.Context, job.Action, model.Script) error {
	return nil
}

// ScriptService implements read, create, update and delete over the
// scripts table. Every returned error is an *errs.HTTPError.
type ScriptService struct {
	store    ScriptStore
	notifier ChangeNotifier
}

// NewScriptService creates a ScriptService.
func NewScriptService(store ScriptStore, notifier ChangeNotifier) *ScriptService {
	return &ScriptService{store: store, notifier: notifier}
}

// List returns every script ordered by id; never nil.
func (s *ScriptService) List(ctx context.Context) ([]model.Script, error) {
	scripts, err := s.store.All(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return scripts, nil
}

// Get returns one script. An id of 0 means the argument is missing.
func (s *ScriptService) Get(ctx context.Context, id int64) (*model.Script, error) {
	if id <= 0 {
		return nil, missingID()
	}
	return s.find(ctx, id)
}

// Create validates params, inserts the allow-listed fields and returns the
// stored row.
func (s *ScriptService) Create(ctx context.Context, params validation.Params) (*model.Script, error) {
	fields, err := s.validated(params)
	if err != nil {
		return nil, err
	}

	id, err := s.store.InsertGetID(ctx, fields)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if id == 0 {
		return nil, errs.New(errs.KindInternal, MsgSomethingWrong)
	}

	script, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, job.ActionCreated, *script)
	return script, nil
}

// Update validates params and overwrites the allow-listed fields of an
// existing row.
//
// Zero affected rows means the row vanished after it was found and is
// reported as a conflict.
func (s *ScriptService) Update(ctx context.Context, id int64, params validation.Params) (*model.Script, error) {
	if id <= 0 {
		return nil, missingID()
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	fields, err := s.validated(params)
	if err != nil {
		return nil, err
	}

	affected, err := s.store.UpdateWhereID(ctx, id, fields)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if affected == 0 {
		return nil, errs.NewConflictError(MsgAlreadyUpdated)
	}

	script, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, job.ActionUpdated, *script)
	return script, nil
}

// Delete removes an existing row.
func (s *ScriptService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return missingID()
	}
	script, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if !deleted {
		return errs.New(errs.KindInternal, MsgSomethingWrong)
	}

	s.notify(ctx, job.ActionDeleted, *script)
	return nil
}

func (s *ScriptService) find(ctx context.Context, id int64) (*model.Script, error) {
	script, err := s.store.Find(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errs.NewNotFoundError(MsgEntryNotFound, false, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return script, nil
}

// validated runs a fresh Validator over params and projects the allowed fields.
func (s *ScriptService) validated(params validation.Params) (map[string]any, error) {
	if err := validation.New().Validate(params, ScriptFieldRules).Err(); err != nil {
		return nil, err
	}
	return validation.Project(ScriptFieldRules, params)
}

// notify publishes a change event. Failures are logged and never reach the client.
func (s *ScriptService) notify(ctx context.Context, action job.Action, script model.Script) {
	notifyCtx, cancel := context.WithTimeout(ctx, NotifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyScriptChanged(notifyCtx, action, script); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("action", string(action)).
			Int64("script_id", script.ID).
			Msg("failed to publish script change")
	}
}

func missingID() error {
	return errs.NewBadRequestError(MsgMissingIDArgument, false, nil, nil)
}
