package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/credentials"
	"github.com/tessro/spot/internal/dispatch"
	"github.com/tessro/spot/internal/logging"
	"github.com/tessro/spot/internal/spotify/client"
)

// session wires the model to its collaborators for one command.
type session struct {
	logger    *slog.Logger
	logCloser io.Closer
	store     credentials.Store
	client    *client.Client
	model     *app.Model
}

func newSession() (*session, error) {
	level := cfg.Log.Level
	if Verbose() {
		level = "debug"
	}
	logger, closer, err := logging.New(level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	store, err := credentials.Open(cfg.Credentials.Backend, cfg.Credentials.Path)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	spotifyClient := client.New(cfg.Spotify.APIURL)
	spotifyClient.SetLogger(logger)

	// Restore the previous login, if any.
	creds, err := store.Load()
	if err != nil {
		logger.Warn("failed to load stored credentials", "error", err)
	} else if creds != nil {
		spotifyClient.UpdateToken(creds.Token)
	}

	model := app.New(app.NewState(), app.Services{
		Credentials: store,
		API:         spotifyClient,
	}, app.WithLogger(logger))

	return &session{
		logger:    logger,
		logCloser: closer,
		store:     store,
		client:    spotifyClient,
		model:     model,
	}, nil
}

func (s *session) Close() {
	_ = s.store.Close()
	_ = s.logCloser.Close()
}

// run applies actions through a dispatcher and calls emit for every record.
// It returns the number of records emitted.
func (s *session) run(ctx context.Context, actions []app.Action, emit func(dispatch.Record) error) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := dispatch.New(s.model,
		dispatch.WithBuffer(cfg.Session.Buffer),
		dispatch.WithLogger(s.logger),
	)

	runErr := make(chan error, 1)
	go func() { runErr <- d.Run(ctx) }()

	go func() {
		defer d.Close()
		for _, a := range actions {
			if err := d.Submit(ctx, a); err != nil {
				return
			}
		}
	}()

	var (
		count   int
		emitErr error
	)
	for r := range d.Records() {
		if emitErr != nil {
			continue
		}
		if err := emit(r); err != nil {
			emitErr = err
			d.Stop()
			continue
		}
		count++
	}

	if err := <-runErr; err != nil {
		return count, err
	}
	return count, emitErr
}
