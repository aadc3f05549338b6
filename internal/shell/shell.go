// Package shell implements the line-based interactive menu in front of the
// ledger service.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/services"
)

// Menu option codes
const (
	OptRegister = "1"
	OptQuery    = "2"
	OptStats    = "3"
	OptUpdate   = "4"
	OptDelete   = "5"
	OptExit     = "6"
)

const menu = `
1. Register expense
2. Query expenses
3. Expense statistics
4. Update expense
5. Delete expense
6. Exit`

type Shell struct {
	svc    *services.LedgerService
	in     *bufio.Reader
	out    io.Writer
	logger *log.Logger

	lines   chan line
	done    chan struct{}
	closed  bool
	readErr error
}

// line is one input line or the error that ended input.
type line struct {
	text string
	err  error
}

func New(svc *services.LedgerService, in io.Reader, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.Discard()
	}
	return &Shell{
		svc:    svc,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger.WithComponent(log.ComponentShell),
	}
}

// Run loops over the menu until the user exits, input ends or ctx is done.
// A blocked prompt is abandoned as soon as ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.DebugContext(ctx, "Shell session started")
	defer s.logger.DebugContext(ctx, "Shell session ended")

	s.lines = make(chan line)
	s.done = make(chan struct{})
	defer close(s.done)
	go s.readLines()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.println(menu)
		option, ok := s.ask(ctx, "Select an option: ")
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			s.println("\nExiting.")
			return s.readErr
		}

		switch option {
		case OptRegister:
			s.register(ctx)
		case OptQuery:
			s.query(ctx)
		case OptStats:
			s.stats(ctx)
		case OptUpdate:
			s.update(ctx)
		case OptDelete:
			s.delete(ctx)
		case OptExit:
			s.println("Exiting.")
			return nil
		default:
			s.println("Invalid option.")
		}
	}
}

// errInputClosed aborts an operation whose fields could not all be read.
var errInputClosed = errors.New("input closed")

// fields asks each prompt in turn.
func (s *Shell) fields(ctx context.Context, prompts ...string) ([]string, error) {
	out := make([]string, 0, len(prompts))
	for _, p := range prompts {
		v, ok := s.ask(ctx, p)
		if !ok {
			return nil, errInputClosed
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *Shell) register(ctx context.Context) {
	f, err := s.fields(ctx,
		"Description: ",
		"Category (food, transport, entertainment, etc.): ",
		"Date (YYYY-MM-DD): ",
		"Amount: ",
	)
	if err != nil {
		return
	}
	if _, err := s.svc.Register(ctx, f[0], f[1], f[2], f[3]); err != nil {
		s.report("Could not register expense", err)
		return
	}
	s.println("Expense registered.")
}

func (s *Shell) query(ctx context.Context) {
	criterion, ok := s.ask(ctx, "Search by category (c) or date range (f)? ")
	if !ok {
		return
	}

	var category, start, end string
	switch core.Criterion(criterion) {
	case core.CriterionCategory:
		f, err := s.fields(ctx, "Category: ")
		if err != nil {
			return
		}
		category = f[0]
	case core.CriterionDateRange:
		f, err := s.fields(ctx, "Start date (YYYY-MM-DD): ", "End date (YYYY-MM-DD): ")
		if err != nil {
			return
		}
		start, end = f[0], f[1]
	}

	results, err := s.svc.Query(ctx, criterion, category, start, end)
	if err != nil {
		s.report("Could not query expenses", err)
		return
	}
	if len(results) == 0 {
		s.println("No expenses match the query.")
		return
	}
	for _, e := range results {
		s.println(e.String())
	}
}

func (s *Shell) stats(ctx context.Context) {
	sum, err := s.svc.Statistics(ctx)
	if err != nil {
		s.report("Could not compute statistics", err)
		return
	}
	s.printf("Total expenses: %s\n", core.FormatAmount(sum.Total))
	s.printf("Daily average: %s\n", core.FormatAmount(sum.DailyAverage))
	s.printf("Top category: %s\n", sum.TopCategory)
	s.println("By category:")
	for _, ca := range sum.ByCategory {
		s.printf("  %s: %s\n", ca.Name, core.FormatAmount(ca.Amount))
	}
}

func (s *Shell) update(ctx context.Context) {
	desc, ok := s.ask(ctx, "Description of the expense to update: ")
	if !ok {
		return
	}
	if _, found := s.svc.Find(desc); !found {
		s.println("Expense not found.")
		return
	}
	f, err := s.fields(ctx, "New category: ", "New date (YYYY-MM-DD): ", "New amount: ")
	if err != nil {
		return
	}
	if _, err := s.svc.Update(ctx, desc, f[0], f[1], f[2]); err != nil {
		s.report("Could not update expense", err)
		return
	}
	s.println("Expense updated.")
}

func (s *Shell) delete(ctx context.Context) {
	desc, ok := s.ask(ctx, "Description of the expense to delete: ")
	if !ok {
		return
	}
	if _, err := s.svc.Delete(ctx, desc); err != nil {
		s.report("Could not delete expense", err)
		return
	}
	s.println("Expense deleted.")
}

// report prints a user-facing message for err's kind.
func (s *Shell) report(action string, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		s.println("Expense not found.")
	case errors.Is(err, core.ErrInvalidCriterion):
		s.println("Invalid criterion.")
	case errors.Is(err, core.ErrEmptyDataset):
		s.println("No expenses recorded yet.")
	case errors.Is(err, core.ErrPersistence):
		s.printf("Warning: the change was applied but could not be saved: %v\n", err)
	default:
		s.printf("%s: %v\n", action, err)
	}
}

// readLines feeds s.lines until input ends. Lines have no length limit.
func (s *Shell) readLines() {
	for {
		text, err := s.in.ReadString('\n')
		if text != "" || err == nil {
			select {
			case s.lines <- line{text: strings.TrimRight(text, "\r\n")}:
			case <-s.done:
				return
			}
		}
		if err != nil {
			select {
			case s.lines <- line{err: err}:
			case <-s.done:
			}
			return
		}
	}
}

// ask prompts and waits for a line. It reports false once input has ended
// or ctx is done.
func (s *Shell) ask(ctx context.Context, prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if s.closed {
		return "", false
	}
	select {
	case <-ctx.Done():
		return "", false
	case l := <-s.lines:
		if l.err != nil {
			s.closed = true
			if !errors.Is(l.err, io.EOF) {
				s.readErr = l.err
			}
			return "", false
		}
		return l.text, true
	}
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
