package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Joker-containers/joker/internal/domain"
	"github.com/Joker-containers/joker/internal/ports"
	"github.com/Joker-containers/joker/internal/wire"
	"github.com/Joker-containers/joker/pkg/log"
)

// Report describes how far a run got.
type Report struct {
	// RunID correlates the log lines of one invocation
	RunID string

	// Daemon is the target of the run
	Daemon domain.Daemon

	// State is the final ship state
	State domain.ShipState

	// Sent lists the names of artifacts whose three frames were fully written
	Sent []string

	// BytesWritten counts every byte put on the connection, including
	// frames of an artifact that was interrupted mid-write
	BytesWritten int64
}

// Shipper sends container artifacts to a daemon over one connection per
// batch. Nothing is read back from the daemon: success means the local
// writes completed, not that the daemon accepted the artifacts.
type Shipper struct {
	dialer ports.Dialer
	source ports.ArtifactSource
	msg    ports.Messenger
	logger ports.Logger
	newID  func() string
}

// NewShipper creates a Shipper. A nil logger discards output.
func NewShipper(dialer ports.Dialer, source ports.ArtifactSource, msg ports.Messenger, logger ports.Logger) *Shipper {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Shipper{
		dialer: dialer,
		source: source,
		msg:    msg,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Run connects to target once and ships paths in order. The first failure
// aborts the batch; artifacts already written stay sent.
func (s *Shipper) Run(ctx context.Context, target domain.Daemon, paths []string) (Report, error) {
	rep := Report{RunID: s.newID(), Daemon: target, State: domain.ShipIdle}
	logger := s.logger
	if l, ok := logger.(interface{ With(...log.Field) log.Logger }); ok {
		logger = l.With(log.String("run_id", rep.RunID), log.String("daemon", target.Name))
	}

	err := s.run(ctx, target, paths, &rep, logger)
	if !rep.State.Terminal() {
		logger.Warn("run stopped in a non-terminal state", log.String("state", rep.State.String()))
	}
	if err != nil {
		logger.Error("run failed",
			log.Err(err),
			log.String("state", rep.State.String()),
			log.Strings("sent", rep.Sent),
			log.Int64("bytes", rep.BytesWritten),
		)
		s.msg.Error(fmt.Sprintf("Error while running containers at daemon %s: %v", target.Name, err))
		return rep, err
	}

	s.msg.Success(fmt.Sprintf("Running containers %s at daemon %s.", strings.Join(paths, ", "), target.Name))
	return rep, nil
}

func (s *Shipper) run(ctx context.Context, target domain.Daemon, paths []string, rep *Report, logger ports.Logger) error {
	step := func(to domain.ShipState) {
		if !domain.CanTransition(rep.State, to) {
			logger.Warn("unexpected ship transition",
				log.String("from", rep.State.String()),
				log.String("to", to.String()),
			)
		}
		rep.State = to
	}

	step(domain.ShipConnecting)
	start := time.Now()
	conn, err := s.dialer.Dial(ctx, target.Addr)
	if err != nil {
		step(domain.ShipConnectFailed)
		return domain.Wrap(domain.ConnectionFailed, target.Addr.String(), err)
	}
	defer conn.Close()
	step(domain.ShipConnected)
	logger.Debug("connected", log.String("addr", target.Addr.String()), log.Duration("took", time.Since(start)))

	cw := &countingWriter{w: conn}
	defer func() { rep.BytesWritten = cw.n }()

	for i, path := range paths {
		step(domain.ShipSending)

		a, err := s.load(path)
		if err != nil {
			step(domain.ShipFailed)
			return err
		}

		if err := wire.WriteArtifact(cw, a); err != nil {
			step(domain.ShipFailed)
			return domain.Wrap(domain.TransferInterrupted, fmt.Sprintf("artifact %d (%s)", i, a.Name), err)
		}
		rep.Sent = append(rep.Sent, a.Name)
		logger.Debug("artifact sent",
			log.Int("index", i),
			log.String("name", a.Name),
			log.Int64("bytes", wire.EncodedSize(a)),
		)
	}

	step(domain.ShipSent)
	logger.Info("batch sent", log.Int("artifacts", len(rep.Sent)), log.Int64("bytes", cw.n))
	return nil
}

// load reads an artifact and its manifest before any of its frames are
// written, so a missing file never leaves a half-sent artifact.
func (s *Shipper) load(path string) (domain.Artifact, error) {
	name, err := domain.ArtifactName(path)
	if err != nil {
		return domain.Artifact{}, err
	}
	payload, err := s.source.ReadFile(path)
	if err != nil {
		return domain.Artifact{}, domain.Wrap(domain.ArtifactUnreadable, path, err)
	}
	manifestPath := domain.ManifestPath(path)
	manifest, err := s.source.ReadFile(manifestPath)
	if err != nil {
		return domain.Artifact{}, domain.Wrap(domain.ManifestUnreadable, manifestPath, err)
	}
	return domain.Artifact{Name: name, Payload: payload, Manifest: manifest}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
