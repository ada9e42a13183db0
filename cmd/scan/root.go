package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cours-de-latin/scansion"
	"github.com/cours-de-latin/scansion/internal/config"
	"github.com/cours-de-latin/scansion/internal/logging"
)

// errInvalidLines makes the command fail in strict mode.
var errInvalidLines = errors.New("some lines do not scan")

type scanFlags struct {
	meter             string
	optionalTransform bool
	dactylSmoothing   bool
	workers           int
	json              bool
	lexicon           string
	strict            bool
	logLevel          string
}

func newRootCmd() *cobra.Command {
	f := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan [file ...]",
		Short: "Scan Latin hexameters and hendecasyllables",
		Long: `Scan reads Latin verse, one line per line, and prints the scansion of
every line under its text together with the steps that produced it.

Examples:
  scan aeneid.txt
  echo "Cui dono lepidum novum libellum" | scan -m hendecasyllable
  scan --json --workers 4 georgics.txt > georgics.json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.meter, "meter", "m", scansion.Hexameter, "meter to scan in (hexameter, hendecasyllable)")
	fl.BoolVar(&f.optionalTransform, "optional-transform", false, "start with the permissive semivowel rules")
	fl.BoolVar(&f.dactylSmoothing, "dactyl-smoothing", false, "allow rebuilding failed lines as dactyls and spondees")
	fl.IntVarP(&f.workers, "workers", "w", 8, "lines scanned in parallel (0 for no limit)")
	fl.BoolVar(&f.json, "json", false, "print results as JSON")
	fl.StringVar(&f.lexicon, "lexicon", "", "form<TAB>macronized word list marking long vowels")
	fl.BoolVar(&f.strict, "strict", false, "exit with status 1 when a line does not scan")
	fl.StringVarP(&f.logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")
	return cmd
}

type lineResult struct {
	Index int             `json:"index"`
	Line  string          `json:"line"`
	Verse *scansion.Verse `json:"verse,omitempty"`
	Error string          `json:"error,omitempty"`
}

func runScan(cmd *cobra.Command, f *scanFlags, args []string) error {
	logger := logging.NewWriter(cmd.ErrOrStderr(), config.LogConfig{Level: f.logLevel, Format: "text"})

	opts := []scansion.Option{scansion.WithLogger(logger)}
	if f.lexicon != "" {
		lx, err := scansion.LoadLexicon(f.lexicon)
		if err != nil {
			return err
		}
		opts = append(opts, scansion.WithMacronizer(lx))
	}
	scanner := scansion.New(opts...)

	lines, err := readLines(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	logger.Debug("lines read", slog.Int("count", len(lines)))

	results, err := scanner.ScanLines(cmd.Context(), lines, strings.ToLower(f.meter), scansion.Options{
		OptionalTransform: f.optionalTransform,
		DactylSmoothing:   f.dactylSmoothing,
	}, f.workers)
	if err != nil {
		return err
	}

	out := make([]lineResult, len(results))
	failed := 0
	for i, res := range results {
		out[i] = lineResult{Index: res.Index, Line: lines[res.Index], Verse: res.Verse}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
		if res.Err != nil || !res.Verse.Valid {
			failed++
		}
	}

	if f.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		printText(cmd.OutOrStdout(), out)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d/%d lines scanned\n", len(out)-failed, len(out))
	}

	if f.strict && failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidLines, failed, len(out))
	}
	return nil
}

func printText(w io.Writer, results []lineResult) {
	for _, r := range results {
		fmt.Fprintf(w, "%4d  %s\n", r.Index+1, r.Line)
		if r.Error != "" {
			fmt.Fprintf(w, "      error: %s\n", r.Error)
			continue
		}
		for _, l := range strings.Split(r.Verse.String(), "\n") {
			fmt.Fprintf(w, "      %s\n", l)
		}
	}
}

// readLines collects the verse lines of every named file, or of stdin when
// there are none.
func readLines(stdin io.Reader, paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var lines []string
	for _, p := range paths {
		var err error
		if p == "-" {
			lines, err = appendLines(lines, stdin)
		} else {
			lines, err = appendFileLines(lines, p)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
	}
	return lines, nil
}

func appendFileLines(lines []string, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return appendLines(lines, f)
}

// appendLines adds the verse lines of r, skipping blanks and "#" comments.
func appendLines(lines []string, r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
