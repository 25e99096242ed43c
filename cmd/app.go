package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskdesk.com/taskdesk/internal/client"
	config "taskdesk.com/taskdesk/internal/configs"
	repository "taskdesk.com/taskdesk/internal/repositories"
	"taskdesk.com/taskdesk/internal/services"
	"taskdesk.com/taskdesk/internal/session"
	"taskdesk.com/taskdesk/internal/store"
)

// app wires the session, API client and services for one command run.
type app struct {
	session *session.Session
	api     *client.Client
	closers []func()
}

func newApp(ctx context.Context) (*app, error) {
	a := &app{}

	kv, err := a.openTokenStore()
	if err != nil {
		a.close()
		return nil, err
	}

	a.session, err = session.New(ctx, kv)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	a.api, err = client.New(cfg.APIURL, nil, a.session, logger)
	if err != nil {
		a.close()
		return nil, err
	}

	return a, nil
}

func (a *app) openTokenStore() (store.KeyValueStore, error) {
	switch cfg.TokenStore {
	case config.TokenStoreMemory:
		return store.NewMemoryStore(), nil
	case config.TokenStoreRedis:
		redisClient, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, redisClient.Close)
		return store.NewRedisStore(redisClient, cfg.RedisKeyPrefix), nil
	default:
		db, err := config.NewDatabase(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		return repository.NewSettingRepository(db), nil
	}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// requireLogin fails early when there is no token to send.
func (a *app) requireLogin() error {
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

func (a *app) notifier() services.Notifier {
	return &notifyOnce{Notifier: services.LogNotifier{Logger: logger}}
}

// notified holds the errors a notifier has already shown, so Execute does
// not print them a second time.
var notified reportedErrors

type reportedErrors struct {
	mu   sync.Mutex
	errs []error
}

func (r *reportedErrors) add(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *reportedErrors) has(err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reported := range r.errs {
		if errors.Is(err, reported) {
			return true
		}
	}
	return false
}

type notifyOnce struct {
	services.Notifier
}

func (n *notifyOnce) Failure(msg string, err error) {
	n.Notifier.Failure(msg, err)
	if err != nil {
		notified.add(err)
	}
}

// withApp runs fn with a ready app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
