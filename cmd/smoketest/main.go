// Command smoketest runs the analyzer over every .txt file in a directory
// and reports tokenizer reconstruction failures, analysis coverage and the
// most frequent unanalyzed words.
//
//	go run ./cmd/smoketest [-config file] [-top n] <directory>
package main

import (
	"bytes"
	"cmp"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/az-ai-labs/tr-morph/internal/config"
	"github.com/az-ai-labs/tr-morph/morph"
	"github.com/az-ai-labs/tr-morph/tokenizer"
)

const (
	chunkSize      = 4 << 20 // 4 MB per read chunk
	maxWorkers     = 4
	bytesToMBShift = 20
)

type Stats struct {
	mu              sync.Mutex
	filesScanned    int
	totalBytes      int64
	reconOK         int
	reconFail       int
	tokenTypeCounts map[tokenizer.TokenType]int
	analyzed        int // tokens with a lexicon analysis
	runtime         int // tokens analyzed only by the unidentified-token fallback
	unanalyzed      int
	invalid         int
	analyses        int // sum of analysis counts over analyzed tokens
	unknown         map[string]int
}

func newStats() *Stats {
	return &Stats{
		tokenTypeCounts: make(map[tokenizer.TokenType]int),
		unknown:         make(map[string]int),
	}
}

type fileState struct {
	path            string
	tokenCounts     map[tokenizer.TokenType]int
	totalBytes      int64
	reconFailed     bool
	reconFailLogged bool
	analyzed        int
	runtime         int
	unanalyzed      int
	invalid         int
	analyses        int
	unknown         map[string]int
}

func newFileState(path string) *fileState {
	return &fileState{
		path:        path,
		tokenCounts: make(map[tokenizer.TokenType]int),
		unknown:     make(map[string]int),
	}
}

func main() {
	cfgPath := flag.String("config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	top := flag.Int("top", 20, "number of unanalyzed words to list")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config file] [-top n] <directory>\n", os.Args[0])
		os.Exit(1)
	}
	dirPath := flag.Arg(0)

	cfg, err := config.Load(config.Path(*cfgPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	e, closeEngine, err := config.OpenEngine(cfg, config.NewLogger(cfg.LogLevel, os.Stderr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var filePaths []string
	err = filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		_ = closeEngine()
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to process\n", len(filePaths))
	start := time.Now()

	stats := newStats()
	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, path := range filePaths {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(p string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			processFile(e, p, stats)
		}(path)
	}

	wg.Wait()

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n\n", time.Since(start).Round(time.Millisecond))
	printStats(os.Stdout, stats, *top)

	if err := closeEngine(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing journal: %v\n", err)
	}
}

func processFile(e *morph.Engine, path string, stats *Stats) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error stat %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(os.Stderr, "START %s (%d MB)\n", path, info.Size()>>bytesToMBShift)
	fileStart := time.Now()

	state := newFileState(path)
	if err := state.processReader(e, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		return
	}

	fmt.Fprintf(os.Stderr, "DONE  %s in %s (%d MB processed)\n",
		filepath.Base(path), time.Since(fileStart).Round(time.Millisecond), state.totalBytes>>bytesToMBShift)

	mergeFileState(state, stats)
}

// processReader reads r in chunks cut at line boundaries, so no token
// spans two chunks.
func (fs *fileState) processReader(e *morph.Engine, r io.Reader) error {
	buf := make([]byte, chunkSize)
	var leftover []byte

	for {
		n, err := r.Read(buf)
		if n > 0 {
			leftover = append(leftover, buf[:n]...)
			chunk := leftover

			if err == nil {
				if idx := bytes.LastIndexByte(chunk, '\n'); idx > 0 {
					leftover = make([]byte, len(chunk)-idx-1)
					copy(leftover, chunk[idx+1:])
					chunk = chunk[:idx+1]
				} else {
					leftover = chunk
					continue
				}
			} else {
				leftover = nil
			}

			fs.processChunk(e, chunk)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if len(leftover) > 0 {
		fs.processChunk(e, leftover)
	}
	return nil
}

func (fs *fileState) processChunk(e *morph.Engine, chunk []byte) {
	text := string(chunk)
	fs.totalBytes += int64(len(chunk))

	tokens := tokenizer.Tokenize(text)

	var sb strings.Builder
	if !fs.reconFailed {
		sb.Grow(len(text))
	}
	for _, token := range tokens {
		fs.tokenCounts[token.Type]++
		if !fs.reconFailed {
			sb.WriteString(token.Text)
		}
		if token.IsAnalyzable() {
			fs.analyze(e, token.Text)
		}
	}
	if !fs.reconFailed && sb.String() != text {
		fs.reconFailed = true
		if !fs.reconFailLogged {
			logReconstructionFailure(fs.path, text, sb.String())
			fs.reconFailLogged = true
		}
	}
}

func (fs *fileState) analyze(e *morph.Engine, word string) {
	wa, err := e.Analyze(word)
	switch {
	case err != nil:
		fs.invalid++
	case wa.IsEmpty():
		fs.unanalyzed++
		fs.unknown[wa.Normalized]++
	case wa.Analyses[0].IsRuntime():
		fs.runtime++
	default:
		fs.analyzed++
		fs.analyses += wa.Len()
	}
}

func mergeFileState(fs *fileState, stats *Stats) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	stats.filesScanned++
	stats.totalBytes += fs.totalBytes

	if fs.reconFailed {
		stats.reconFail++
	} else {
		stats.reconOK++
	}

	for tokenType, count := range fs.tokenCounts {
		stats.tokenTypeCounts[tokenType] += count
	}
	stats.analyzed += fs.analyzed
	stats.runtime += fs.runtime
	stats.unanalyzed += fs.unanalyzed
	stats.invalid += fs.invalid
	stats.analyses += fs.analyses
	for w, n := range fs.unknown {
		stats.unknown[w] += n
	}
}

func logReconstructionFailure(path, original, reconstructed string) {
	pos, got, want := firstDivergence(original, reconstructed)
	fmt.Fprintf(os.Stderr, "RECON_FAIL: %s: first divergence at byte %d (got 0x%02x, want 0x%02x)\n",
		path, pos, got, want)
}

// firstDivergence finds the byte position where two strings first differ.
// Returns the position and the differing bytes from each string.
func firstDivergence(original, reconstructed string) (pos int, got, want byte) {
	n := min(len(original), len(reconstructed))
	for i := range n {
		if original[i] != reconstructed[i] {
			return i, reconstructed[i], original[i]
		}
	}
	pos = n
	if pos < len(reconstructed) {
		got = reconstructed[pos]
	}
	if pos < len(original) {
		want = original[pos]
	}
	return pos, got, want
}

type wordCount struct {
	word  string
	count int
}

// topUnknown returns the n most frequent unanalyzed words, ties broken
// alphabetically.
func topUnknown(unknown map[string]int, n int) []wordCount {
	out := make([]wordCount, 0, len(unknown))
	for w, c := range unknown {
		out = append(out, wordCount{w, c})
	}
	slices.SortFunc(out, func(a, b wordCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return strings.Compare(a.word, b.word)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func printStats(w io.Writer, stats *Stats, top int) {
	fmt.Fprintf(w, "Files scanned:           %d\n", stats.filesScanned)
	fmt.Fprintf(w, "Total bytes:             %d\n", stats.totalBytes)
	fmt.Fprintf(w, "Reconstruction OK:       %d\n", stats.reconOK)
	fmt.Fprintf(w, "Reconstruction FAIL:     %d\n", stats.reconFail)
	fmt.Fprintln(w)

	totalTokens := 0
	for _, count := range stats.tokenTypeCounts {
		totalTokens += count
	}
	fmt.Fprintln(w, "Token type distribution:")
	for t := tokenizer.Word; t <= tokenizer.URL; t++ {
		count := stats.tokenTypeCounts[t]
		fmt.Fprintf(w, "  %-15s %d  (%.1f%%)\n", t.String()+":", count, percent(count, totalTokens))
	}
	fmt.Fprintln(w)

	words := stats.analyzed + stats.runtime + stats.unanalyzed + stats.invalid
	fmt.Fprintln(w, "Analysis coverage:")
	fmt.Fprintf(w, "  %-15s %d  (%.1f%%)\n", "Lexicon:", stats.analyzed, percent(stats.analyzed, words))
	fmt.Fprintf(w, "  %-15s %d  (%.1f%%)\n", "Fallback:", stats.runtime, percent(stats.runtime, words))
	fmt.Fprintf(w, "  %-15s %d  (%.1f%%)\n", "None:", stats.unanalyzed, percent(stats.unanalyzed, words))
	fmt.Fprintf(w, "  %-15s %d  (%.1f%%)\n", "Invalid:", stats.invalid, percent(stats.invalid, words))
	if stats.analyzed > 0 {
		fmt.Fprintf(w, "  %-15s %.2f\n", "Ambiguity:", float64(stats.analyses)/float64(stats.analyzed))
	}

	if top > 0 && len(stats.unknown) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Most frequent unanalyzed words:")
		for _, wc := range topUnknown(stats.unknown, top) {
			fmt.Fprintf(w, "  %6d  %s\n", wc.count, wc.word)
		}
	}
}
