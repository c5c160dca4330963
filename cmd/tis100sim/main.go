// Command tis100sim runs puzzle save files against the tile simulator.
//
// Usage:
//
//	tis100sim <puzzleNumber> <saveFilePath>
//	tis100sim all <saveDirectory>
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/nodegrid/tis100sim/tile"
	"github.com/nodegrid/tis100sim/tile/asm"
	"github.com/nodegrid/tis100sim/tilelib"
)

const maxCyclesPerRun = 1 << 20

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		usage()
		return 2
	}

	if args[0] == "all" {
		return runAll(args[1])
	}

	number, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tis100sim: not a puzzle number: %s\n", args[0])
		usage()
		return 2
	}
	return runOne(number, args[1])
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tis100sim <puzzleNumber> <saveFilePath>")
	fmt.Fprintln(os.Stderr, "       tis100sim all <saveDirectory>")
}

// runOne runs a single puzzle for three consecutive test runs, with
// freshly randomized input data between each.
func runOne(number int, saveFilePath string) int {
	puzzle, err := loadPuzzle(number, saveFilePath)
	if err != nil {
		log.Print(err)
		return 1
	}

	for run := 0; run < 3; run++ {
		p := puzzle
		if run > 0 {
			p = tilelib.Refreshed(puzzle, int64(run), 0, 99)
		}
		if !executeRun(number, run, p) {
			return 1
		}
	}
	return 0
}

func executeRun(number, run int, p *tile.Puzzle) bool {
	g, err := tile.NewGrid(p, asm.Parse)
	if err != nil {
		log.Printf("puzzle %d run %d: %+v", number, run, err)
		return false
	}

	result, err := g.RunOnce(maxCyclesPerRun)
	if err != nil {
		log.Printf("puzzle %d run %d [%s]: %+v", number, run, result.RunID, err)
		return false
	}
	if !result.Success {
		log.Printf("puzzle %d run %d [%s]: FAILED after %d cycles (output %d mismatched)", number, run, result.RunID, result.Cycles, result.MismatchAt)
		return false
	}
	log.Printf("puzzle %d run %d [%s]: OK in %d cycles", number, run, result.RunID, result.Cycles)
	return true
}

func loadPuzzle(number int, saveFilePath string) (*tile.Puzzle, error) {
	puzzle, err := tilelib.Lookup(number)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(saveFilePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening save file %s", saveFilePath)
	}
	defer f.Close()

	programs, err := parseSaveFile(f, puzzle)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing save file %s", saveFilePath)
	}
	puzzle.Programs = programs
	return puzzle, nil
}

var sectionHeader = regexp.MustCompile(`^@(\d+)`)

// parseSaveFile reads the `@N` sectioned save-file format: lines before
// the first `@` are discarded, and each section's lines are joined with
// `\n` as the raw assembly for the next working compute cell in
// increasing index order, skipping bad nodes and stack nodes.
func parseSaveFile(r *os.File, puzzle *tile.Puzzle) ([]string, error) {
	programs := make([]string, puzzle.Width*puzzle.Height)

	cellIndices := make([]int, 0, len(programs))
	for i := range programs {
		if puzzle.BadNodes[i] || puzzle.StackNodes[i] {
			continue
		}
		cellIndices = append(cellIndices, i)
	}
	slices.Sort(cellIndices)

	scanner := bufio.NewScanner(r)
	var lines []string
	seenSection := false
	next := 0

	flush := func() error {
		if !seenSection {
			return nil
		}
		if next >= len(cellIndices) {
			if len(lines) == 0 {
				return nil
			}
			return errors.New("save file has more program sections than working compute cells")
		}
		if len(lines) > 0 {
			programs[cellIndices[next]] = strings.Join(lines, "\n") + "\n"
		}
		next++
		lines = lines[:0]
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if sectionHeader.MatchString(line) {
			if err := flush(); err != nil {
				return nil, err
			}
			seenSection = true
			continue
		}
		if !seenSection {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return programs, nil
}

var puzzleFilePrefix = regexp.MustCompile(`^(\d+)\.`)

// runAll iterates every file in dir whose name starts with digits
// followed by '.', treating the integer prefix as the puzzle number.
func runAll(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Print(err)
		return 1
	}

	status := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := puzzleFilePrefix.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		number, _ := strconv.Atoi(m[1])
		if rc := runOne(number, filepath.Join(dir, e.Name())); rc != 0 {
			status = rc
		}
	}
	return status
}
