package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/flowpath/audio"
	"github.com/lixenwraith/flowpath/config"
	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/motion"
	"github.com/lixenwraith/flowpath/navigation"
	"github.com/lixenwraith/flowpath/parameter"
	"github.com/lixenwraith/flowpath/scenario"
)

const logFileOnly = "file-only"

var (
	styleFloor    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleExplored = tcell.StyleDefault.Background(tcell.ColorNavy)
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStart    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleTarget   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleAgent    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

func newSandboxCmd(a *app) *cobra.Command {
	var (
		file          string
		width, height int
	)
	cmd := &cobra.Command{
		Use:         "sandbox",
		Short:       "Interactive terminal view: edit sources, watch the search expand, follow the curve",
		Annotations: map[string]string{"log": logFileOnly},
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   *navigation.Planner
				err error
			)
			opts := append(a.cfg.PlannerOptions(), navigation.WithLogger(a.log))
			if file != "" {
				_, p, err = a.planner(file)
			} else {
				p, err = navigation.NewPlanner(width, height, opts...)
			}
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			fini := sync.OnceFunc(screen.Fini)
			core.SetCrashRestore(fini)
			defer core.SetCrashRestore(nil)
			defer fini()

			cues := audio.NewCues()
			if a.cfg.Sandbox.Sound {
				if err := cues.Initialize(); err != nil {
					a.log.Warn("audio unavailable", zap.Error(err))
				}
			}
			defer cues.Close()

			var watcher *scenario.Watcher
			if file != "" {
				if watcher, err = scenario.NewWatcher(file, 0); err != nil {
					a.log.Warn("scenario watch disabled", zap.String("file", file), zap.Error(err))
				} else {
					defer watcher.Close()
				}
			}

			s := newSandbox(screen, p, a.cfg.Sandbox, a.log, cues)
			s.file = file
			return s.run(cmd.Context(), watcher, fini)
		},
	}
	cmd.Flags().StringVarP(&file, "scenario", "s", "", "scenario file, reloaded on change")
	cmd.Flags().IntVar(&width, "width", 30, "grid width without a scenario")
	cmd.Flags().IntVar(&height, "height", 16, "grid height without a scenario")
	return cmd
}

// sandbox owns the planner while the terminal view runs; every method is called
// from the loop goroutine
type sandbox struct {
	screen  tcell.Screen
	planner *navigation.Planner
	cfg     config.SandboxConfig
	log     *zap.Logger
	cues    *audio.Cues
	file    string

	cursor   core.Point
	field    *navigation.FlowField
	search   *navigation.Search
	result   navigation.Result
	explored []core.Point
	agent    *motion.Cursor
	message  string

	reloads *rate.Limiter
	pending *scenario.Scenario
}

func newSandbox(screen tcell.Screen, p *navigation.Planner, cfg config.SandboxConfig, log *zap.Logger, cues *audio.Cues) *sandbox {
	return &sandbox{
		screen:  screen,
		planner: p,
		cfg:     cfg,
		log:     log,
		cues:    cues,
		cursor:  p.Start(),
		agent:   motion.NewCursor(nil),
		reloads: rate.NewLimiter(rate.Limit(cfg.ReloadsPerSecond), 1),
	}
}

// run polls terminal events on one goroutine and drives the view on another
// until quit, context cancellation or a crash
func (s *sandbox) run(ctx context.Context, watcher *scenario.Watcher, fini func()) error {
	g, gctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, parameter.SandboxEventBuffer)

	g.Go(core.Guard(func() error {
		for {
			// PollEvent returns nil once the screen is finalized
			ev := s.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	}))

	g.Go(core.Guard(func() error {
		defer fini()
		var (
			changes <-chan *scenario.Scenario
			errs    <-chan error
		)
		if watcher != nil {
			changes, errs = watcher.Events, watcher.Errors
		}
		return s.loop(gctx, events, changes, errs)
	}))

	return g.Wait()
}

func (s *sandbox) loop(ctx context.Context, events <-chan tcell.Event, changes <-chan *scenario.Scenario, errs <-chan error) error {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	s.replan()
	s.draw()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !s.handleEvent(ev) {
				return nil
			}
			s.draw()

		case sc, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			s.pending = sc

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.log.Warn("scenario reload failed", zap.Error(err))
			s.message = err.Error()

		case now := <-ticker.C:
			s.applyPending()
			s.tick(now.Sub(last))
			last = now
			s.draw()
		}
	}
}

func (s *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

// handleKey returns false when the view should close
func (s *sandbox) handleKey(key tcell.Key, r rune) bool {
	w := s.planner.World()
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		s.moveCursor(0, 1, w)
	case tcell.KeyDown:
		s.moveCursor(0, -1, w)
	case tcell.KeyLeft:
		s.moveCursor(-1, 0, w)
	case tcell.KeyRight:
		s.moveCursor(1, 0, w)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 's':
			s.edit(s.planner.SetStart(s.cursor))
		case 't':
			s.edit(s.planner.SetTarget(s.cursor))
		case 'r':
			if s.planner.RemoveSource(s.cursor) {
				s.edit(nil)
			} else {
				s.edit(s.planner.AddSource(s.cursor, 1, navigation.Repel))
			}
		case 'w':
			s.save()
		case ' ':
			s.replan()
		}
	}
	return true
}

func (s *sandbox) moveCursor(dx, dy int, w *navigation.GridWorld) {
	next := s.cursor.Add(core.Point{X: dx, Y: dy})
	if w.InBounds(next) {
		s.cursor = next
	}
}

func (s *sandbox) edit(err error) {
	if err != nil {
		s.message = err.Error()
		return
	}
	s.replan()
}

func (s *sandbox) save() {
	if s.file == "" {
		s.message = "no scenario file"
		return
	}
	if err := scenario.FromPlanner("sandbox", s.planner).Save(s.file); err != nil {
		s.message = err.Error()
		return
	}
	s.message = "saved " + s.file
}

// applyPending reconfigures from the latest reloaded scenario, at most
// ReloadsPerSecond times per second
func (s *sandbox) applyPending() {
	if s.pending == nil || !s.reloads.Allow() {
		return
	}
	sc := s.pending
	s.pending = nil
	if err := sc.Apply(s.planner); err != nil {
		s.message = err.Error()
		return
	}
	if !s.planner.World().InBounds(s.cursor) {
		s.cursor = s.planner.Start()
	}
	s.log.Info("scenario reloaded", zap.String("name", sc.Name))
	s.replan()
}

// replan restarts the stepped search for the current markers
func (s *sandbox) replan() {
	field, err := s.planner.GenerateFlowField()
	if err != nil {
		s.message = err.Error()
		return
	}
	s.field = field
	s.explored = s.explored[:0]
	s.agent.Reset(nil)
	search, err := s.planner.StartSearch(s.onResult)
	if err != nil {
		s.search = nil
		s.message = err.Error()
		return
	}
	s.search = search
	s.result = search.Result()
	if search.Status() == navigation.StatusRunning {
		s.message = "searching"
	}
}

func (s *sandbox) onResult(r navigation.Result) {
	// A superseded search reports Cancelled before its replacement starts
	if r.Status == navigation.StatusCancelled {
		return
	}
	s.result = r
	s.cues.Play(r.Status)
	if !r.Found() {
		s.message = fmt.Sprintf("no path after %d expansions", r.Expansions)
		return
	}
	s.agent.Reset(s.planner.SetPath(r.Path))
	s.message = fmt.Sprintf("path %d cells, cost %.2f, %d expansions", len(r.Path), r.Cost, r.Expansions)
}

// tick advances the running search by one batch, otherwise moves the agent
func (s *sandbox) tick(dt time.Duration) {
	if s.search != nil && s.search.Status() == navigation.StatusRunning {
		s.search.Step(s.cfg.StepsPerTick)
		s.explored = s.search.Explored()
		return
	}
	if s.search != nil {
		s.explored = s.search.Explored()
	}
	if !s.agent.Done() {
		s.agent.Update(dt.Seconds() * s.cfg.AgentSpeed)
	}
}

// draw renders the grid north-up from the top-left corner with a status line below
func (s *sandbox) draw() {
	s.screen.Clear()
	w := s.planner.World()
	h := w.Height()

	explored := make(map[core.Point]bool, len(s.explored))
	for _, c := range s.explored {
		explored[c] = true
	}
	onPath := make(map[core.Point]bool, len(s.result.Path))
	for _, c := range s.result.Path {
		onPath[c] = true
	}
	agent := core.Point{X: -1, Y: -1}
	if s.result.Found() {
		agent = w.WorldToCell(s.agent.Position())
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w.Width(); x++ {
			c := core.Point{X: x, Y: y}
			ch, style := s.cell(c, explored, onPath)
			if c == agent {
				ch, style = '@', styleAgent
			}
			if c == s.cursor {
				style = style.Reverse(true)
			}
			s.screen.SetContent(x, h-1-y, ch, nil, style)
		}
	}

	status := fmt.Sprintf("(%d,%d) %s | arrows move  s start  t target  r repel  w save  space replan  q quit", s.cursor.X, s.cursor.Y, s.message)
	for i, ch := range status {
		s.screen.SetContent(i, h+1, ch, nil, styleStatus)
	}
	s.screen.Show()
}

func (s *sandbox) cell(c core.Point, explored, onPath map[core.Point]bool) (rune, tcell.Style) {
	var bg tcell.Style
	switch {
	case c == s.planner.Start():
		return 'S', styleStart
	case c == s.planner.Target():
		return 'T', styleTarget
	case s.planner.IsBlocked(c):
		return '#', styleWall
	case onPath[c]:
		return '*', stylePath
	case explored[c]:
		bg = styleExplored
	default:
		bg = styleFloor
	}
	if s.field == nil {
		return '.', bg
	}
	return arrowAt(s.field, c), bg
}
