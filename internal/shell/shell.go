package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/novapager/internal/storage"
)

const DefaultPrompt = "db > "

// Pager is the part of storage.Pager the shell drives.
type Pager interface {
	GetPage(pageNum uint32) (*storage.Page, error)
	WritePage(page *storage.Page) error
	Flush(pageNum uint32) error
	NumPages() uint32
	Stats() storage.Stats
}

var (
	_ Pager = (*storage.Pager)(nil)
	_ Pager = (*storage.SyncPager)(nil)
)

var errUsage = errors.New("shell: bad arguments")

// Shell evaluates one line at a time against a Pager and writes results to out.
type Shell struct {
	pager  Pager
	out    io.Writer
	prompt string
}

func New(p Pager, out io.Writer, prompt string) *Shell {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Shell{pager: p, out: out, prompt: prompt}
}

// Exec evaluates a single line. It reports false once the user asked to exit.
func (s *Shell) Exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	fields := strings.Fields(line)
	args := fields[1:]

	var err error
	switch fields[0] {
	case ".exit":
		return false
	case ".help":
		s.help()
	case ".pages":
		fmt.Fprintf(s.out, "pages: %d\n", s.pager.NumPages())
	case ".stats":
		st := s.pager.Stats()
		fmt.Fprintf(s.out, "hits=%d misses=%d evictions=%d writebacks=%d\n",
			st.Hits, st.Misses, st.Evictions, st.WriteBacks)
	case ".get":
		err = s.get(args)
	case ".fill":
		err = s.fill(args)
	case ".flush":
		err = s.flush(args)
	default:
		fmt.Fprintf(s.out, "Unrecognized command '%s'.\n", line)
		return true
	}

	if err != nil {
		slog.Debug("shell: command failed", "line", line, "err", err)
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return true
}

func (s *Shell) help() {
	fmt.Fprintln(s.out, `meta commands:
  .get N        show page N (digest and first bytes)
  .fill N B     set every byte of page N to B and write it
  .flush N      flush page N to disk
  .pages        number of pages in the file
  .stats        cache counters
  .help         show help
  .exit         quit`)
}

func (s *Shell) get(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: .get N", errUsage)
	}
	n, err := parsePageNum(args[0])
	if err != nil {
		return err
	}
	page, err := s.pager.GetPage(n)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, Describe(page))
	return nil
}

func (s *Shell) fill(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: .fill N B", errUsage)
	}
	n, err := parsePageNum(args[0])
	if err != nil {
		return err
	}
	b, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil {
		return fmt.Errorf("%w: byte %q", errUsage, args[1])
	}

	page, err := s.pager.GetPage(n)
	if err != nil {
		return err
	}
	page.Fill(byte(b))
	if err := s.pager.WritePage(page); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "wrote page %d\n", n)
	return nil
}

func (s *Shell) flush(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: .flush N", errUsage)
	}
	n, err := parsePageNum(args[0])
	if err != nil {
		return err
	}
	if err := s.pager.Flush(n); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "flushed page %d\n", n)
	return nil
}

// Run reads lines from r until EOF or .exit, printing the prompt before each.
func (s *Shell) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(s.out, s.prompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if !s.Exec(sc.Text()) {
			return nil
		}
	}
}

// RunInteractive drives the shell from a terminal with line editing.
// historyFile may be empty to keep history in memory only.
func (s *Shell) RunInteractive(historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
		Stdout:          s.out,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			// EOF
			return nil
		}
		if !s.Exec(line) {
			return nil
		}
	}
}

// Describe renders a one-line summary of a page.
func Describe(page *storage.Page) string {
	return fmt.Sprintf("page %d digest=%016x head=% x", page.Number, page.Digest(), page.Data[:16])
}

func parsePageNum(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: page number %q", errUsage, s)
	}
	return uint32(n), nil
}
