package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/focusdial/internal/adapters/sim"
	"github.com/xvierd/focusdial/internal/services"
)

// Simulator runs the Bubbletea UI next to the controller loop. The
// controller goroutine owns all gadget state; the UI only queues input on
// the board and receives copies of what it shows.
type Simulator struct {
	opts    []tea.ProgramOption
	mu      sync.RWMutex
	program *tea.Program
}

// NewSimulator creates a simulator. Options are passed to the Bubbletea
// program after the defaults.
func NewSimulator(opts ...tea.ProgramOption) *Simulator {
	return &Simulator{opts: opts}
}

// OnBoard forwards a board snapshot to the UI. Use it with sim.WithListener.
func (s *Simulator) OnBoard(snap sim.Snapshot) {
	s.send(boardMsg(snap))
}

// OnStatus forwards a controller status to the UI.
func (s *Simulator) OnStatus(st services.Status) {
	s.send(statusMsg(st))
}

func (s *Simulator) send(msg tea.Msg) {
	s.mu.RLock()
	program := s.program
	s.mu.RUnlock()

	if program != nil {
		program.Send(msg)
	}
}

// Run shows the UI for board and runs loop until the user quits, ctx is
// cancelled, or loop returns.
func (s *Simulator) Run(ctx context.Context, board *sim.Board, loop func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, s.opts...)
	program := tea.NewProgram(NewModel(board, board.Snapshot()), opts...)

	s.mu.Lock()
	s.program = program
	s.mu.Unlock()

	var (
		wg      sync.WaitGroup
		loopErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		loopErr = loop(ctx)
		program.Send(doneMsg{err: loopErr})
	}()
	go func() {
		defer wg.Done()
		<-ctx.Done()
		program.Quit()
	}()

	_, err := program.Run()

	// Signal cancellation and wait for goroutines
	cancel()
	wg.Wait()

	s.mu.Lock()
	s.program = nil
	s.mu.Unlock()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return loopErr
}
