package gridsolver

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"go.uber.org/zap"
)

// Solver drives one challenge widget to the checked state: extract the
// round, submit it to the remote service, replay the answer as clicks,
// retry within the attempt budget
type Solver struct {
	Model *Model

	// Remote solving service
	Client RemoteClient

	// Pacing source
	Delay DelayProvider

	logger *zap.Logger
}

func NewSolver(model *Model) *Solver {
	if model == nil {
		model = new(Model)
	}
	model.applyDefaults()

	solver := &Solver{
		Model:  model,
		Client: NewRemoteClientURL(model.APIKey, model.endpoint()),
		Delay:  RandomDelay{},
		logger: model.logger(),
	}

	if model.Delay != nil {
		solver.Delay = model.Delay
	}

	return solver
}

func (s *Solver) SetClient(client RemoteClient) {
	s.Client = client
}

// Solve the widget on the page. The page must already display it.
// Returns nil on success, otherwise a *SolveError carrying the failure kind
func (s *Solver) Solve(page *rod.Page) error {
	return s.SolveContext(context.Background(), page)
}

func (s *Solver) SolveContext(ctx context.Context, page *rod.Page) error {
	return s.run(ctx, NewChromeWidget(page))
}

func (s *Solver) run(ctx context.Context, widget Widget) error {
	sess := newSession(s.Model.AttemptLimit)
	state := stateInit

	s.logger.Info("solve started",
		zap.String("session", sess.id),
		zap.Int("attempt_limit", sess.attemptLimit))

	for {
		if err := ctx.Err(); err != nil {
			state = sess.fail(UNSOLVED, "solve cancelled", err)
		}

		switch state {
		case stateInit:
			state = s.stepInit(widget, sess)

		case stateRoundSolving:
			state = s.stepRound(ctx, widget, sess)

		case statePolling:
			state = s.stepPolling(ctx, widget, sess)

		case stateSkipRecovery:
			state = s.stepRecovery(ctx, widget, sess)

		case stateSolved:
			s.logger.Info("challenge solved",
				zap.String("session", sess.id),
				zap.Int("attempt", sess.attemptIndex))
			return nil

		case stateFailed:
			s.logger.Info("challenge not solved",
				zap.String("session", sess.id),
				zap.String("kind", sess.failure.Kind.String()),
				zap.Error(sess.failure))
			return sess.failure
		}
	}
}

// Attach to the widget and open the challenge. Opening is idempotent, an
// already visible challenge is not re-triggered and a verified checkbox
// ends the call at once
func (s *Solver) stepInit(widget Widget, sess *challengeSession) solveState {
	if err := widget.FindFrames(); err != nil {
		return sess.fail(FRAME_NOT_FOUND, "cannot locate widget frames", err)
	}

	sess.language = widget.ReadLanguage()

	checked, err := widget.CheckboxChecked()
	if err != nil {
		return sess.fail(FRAME_NOT_FOUND, "cannot read checkbox state", err)
	}
	if checked {
		return stateSolved
	}

	if !widget.ChallengeVisible() {
		if err := widget.ClickCheckbox(); err != nil {
			return sess.fail(FRAME_NOT_FOUND, "cannot open challenge", err)
		}
	}

	return stateRoundSolving
}

// One challenge round: snapshot the widget, submit, dispatch the verdict
func (s *Solver) stepRound(ctx context.Context, widget Widget, sess *challengeSession) solveState {
	checked, err := widget.CheckboxChecked()
	if err != nil {
		return sess.fail(FRAME_NOT_FOUND, "cannot read checkbox state", err)
	}
	if checked {
		return stateSolved
	}

	sess.siteKey = widget.ReadSiteKey()

	if err := widget.WaitForChallenge(CHALLENGE_RENDER_WAIT); err != nil {
		return sess.fail(CHALLENGE_RENDER_TIMEOUT, "challenge body never rendered", err)
	}

	target, err := widget.ReadTarget()
	if err != nil {
		return sess.fail(CHALLENGE_RENDER_TIMEOUT, "challenge instruction unreadable", err)
	}
	sess.target = target

	images, err := widget.ReadTiles()
	if err != nil || len(images) == 0 {
		return sess.fail(TILES_NOT_FOUND, "no clickable tiles on challenge", err)
	}
	sess.images = images

	s.logger.Debug("round submitted",
		zap.String("session", sess.id),
		zap.Int("attempt", sess.attemptIndex),
		zap.String("target", sess.target),
		zap.Int("tiles", len(sess.images)))

	verdict, err := s.Client.Submit(ctx, s.buildPayload(widget, sess))
	if err != nil {
		return sess.fail(REMOTE_SOLVER_ERROR, "submit failed", err)
	}

	switch verdict.Status {
	case VERDICT_SOLVED:
		if err := s.clickSolution(widget, verdict.Solution); err != nil {
			return sess.fail(TILES_NOT_FOUND, "cannot click solution", err)
		}
		return s.finishRound(widget, sess)

	case VERDICT_NEW:
		sess.pending = verdict
		return statePolling

	case VERDICT_SKIP:
		sess.deadline = s.Delay.Now().Add(s.Model.RecoveryTimeout)
		return stateSkipRecovery

	case VERDICT_ERROR:
		return sess.fail(REMOTE_SOLVER_ERROR, verdict.Message, nil)

	default:
		return sess.fail(UNKNOWN_VERDICT, "service answered with status "+verdict.Status, nil)
	}
}

// Poll the pending result until the budget runs out. A solution that never
// arrives is not an error, the round just resubmits
func (s *Solver) stepPolling(ctx context.Context, widget Widget, sess *challengeSession) solveState {
	pending := sess.pending
	sess.pending = nil

	deadline := s.Delay.Now().Add(s.Model.PollTimeout)

	for s.Delay.Now().Before(deadline) {
		if ctx.Err() != nil {
			return sess.fail(UNSOLVED, "solve cancelled", ctx.Err())
		}

		s.Delay.Sleep(s.Model.PollInterval)

		verdict, err := s.Client.PollResult(ctx, pending.URL)
		if err != nil {
			s.logger.Debug("poll failed", zap.String("session", sess.id), zap.Error(err))
			continue
		}

		if verdict.Status == VERDICT_SOLVED {
			if err := s.clickSolution(widget, verdict.Solution); err != nil {
				return sess.fail(TILES_NOT_FOUND, "cannot click solution", err)
			}
			break
		}
	}

	return s.finishRound(widget, sess)
}

// Wait out a challenge type the service cannot handle: reload until a
// structurally different challenge appears or the deadline elapses.
// Recovery consumes one attempt
func (s *Solver) stepRecovery(ctx context.Context, widget Widget, sess *challengeSession) solveState {
	for {
		if ctx.Err() != nil {
			sess.deadline = time.Time{}
			return sess.fail(UNSOLVED, "solve cancelled", ctx.Err())
		}

		if !s.Delay.Now().Before(sess.deadline) {
			sess.deadline = time.Time{}
			return sess.fail(RECOVERY_TIMEOUT, "challenge never changed within recovery budget", nil)
		}

		if err := widget.ClickReload(); err != nil {
			sess.deadline = time.Time{}
			return sess.fail(FRAME_NOT_FOUND, "cannot reload challenge", err)
		}

		s.Delay.Sleep(RECOVERY_RELOAD_INTERVAL)

		target, err := widget.ReadTarget()
		if err != nil || target == "" || target == sess.target {
			continue
		}

		s.logger.Debug("skipped challenge replaced",
			zap.String("session", sess.id),
			zap.String("target", target))

		sess.deadline = time.Time{}

		if !sess.consumeAttempt() {
			return sess.fail(UNSOLVED, "attempts exhausted", nil)
		}
		return stateRoundSolving
	}
}

// Close out a round: press verify, pause briefly, then let the checkbox
// decide
func (s *Solver) finishRound(widget Widget, sess *challengeSession) solveState {
	if err := widget.ClickVerify(); err != nil {
		return sess.fail(FRAME_NOT_FOUND, "cannot submit round", err)
	}

	s.Delay.Sleep(s.Delay.ClickDelay())

	checked, err := widget.CheckboxChecked()
	if err != nil {
		return sess.fail(FRAME_NOT_FOUND, "cannot read checkbox state", err)
	}
	if checked {
		return stateSolved
	}

	if !sess.consumeAttempt() {
		return sess.fail(UNSOLVED, "attempts exhausted", nil)
	}
	return stateRoundSolving
}

func (s *Solver) clickSolution(widget Widget, solution []int) error {
	for _, index := range solution {
		if err := widget.ClickTile(index); err != nil {
			return err
		}
		s.Delay.Sleep(s.Delay.ClickDelay())
	}
	return nil
}

func (s *Solver) buildPayload(widget Widget, sess *challengeSession) *Payload {
	siteURL := s.Model.SiteURL
	if siteURL == "" {
		siteURL = widget.SiteURL()
	}

	return &Payload{
		SoftwareID: SOFTWARE_ID,
		Method:     SOLVE_METHOD,
		SiteURL:    siteURL,
		Language:   sess.language,
		SiteKey:    sess.siteKey,
		Images:     sess.images,
		Target:     sess.target,
	}
}
