// Command trmorph analyzes Turkish words.
//
// Usage:
//
//	trmorph [-config file] [-json] [-add line]... [word ...]
//	trmorph [-config file] -          # analyze running text from stdin
//	trmorph                           # run the dictionary item demo
//
// Each -add value is a lexicon line such as "tweetlemek [Pr:tivitle]" and is
// added to the engine before analysis.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/az-ai-labs/tr-morph/internal/config"
	"github.com/az-ai-labs/tr-morph/morph"
)

const runtimeNote = " (Generated by UnidentifiedTokenParser)"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("trmorph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	asJSON := fs.Bool("json", false, "print analyses as JSON")
	var adds []string
	fs.Func("add", "lexicon `line` to add before analysis (repeatable)", func(s string) error {
		adds = append(adds, s)
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(config.Path(*cfgPath))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger := config.NewLogger(cfg.LogLevel, stderr)

	e, closeEngine, err := config.OpenEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := closeEngine(); err != nil {
			fmt.Fprintf(stderr, "Error closing journal: %v\n", err)
		}
	}()

	for _, line := range adds {
		item, err := morph.ParseLexiconLine(line, nil)
		if err == nil {
			err = e.AddDictionaryItem(item)
		}
		if errors.Is(err, morph.ErrDuplicateItem) {
			fmt.Fprintf(stderr, "Skipping %q: already in lexicon\n", line)
			continue
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: -add %q: %v\n", line, err)
			return 1
		}
	}

	words := fs.Args()
	switch {
	case len(words) == 0:
		err = demo(e, stdout)
	case len(words) == 1 && words[0] == "-":
		err = analyzeStream(e, stdin, stdout, *asJSON)
	default:
		err = analyzeWords(e, words, stdout, *asJSON)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func analyzeWords(e *morph.Engine, words []string, w io.Writer, asJSON bool) error {
	enc := json.NewEncoder(w)
	for _, word := range words {
		wa, err := e.Analyze(word)
		if err != nil {
			return err
		}
		if asJSON {
			if err := enc.Encode(wa); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(w, "Parses for %s\n", word)
		printResults(w, wa)
	}
	return nil
}

func analyzeStream(e *morph.Engine, r io.Reader, w io.Writer, asJSON bool) error {
	enc := json.NewEncoder(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		res, err := e.AnalyzeText(context.Background(), sc.Text())
		if err != nil {
			return err
		}
		for _, ta := range res {
			if asJSON {
				if err := enc.Encode(ta); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(w, "%s\t", ta.Token.Text)
			if ta.Analysis.IsEmpty() {
				fmt.Fprintln(w, "?")
				continue
			}
			for i, a := range ta.Analysis.Analyses {
				if i > 0 {
					fmt.Fprint(w, "\t")
				}
				fmt.Fprint(w, a.FormatLong())
			}
			fmt.Fprintln(w)
		}
	}
	return sc.Err()
}

func printResults(w io.Writer, wa morph.WordAnalysis) {
	if wa.IsEmpty() {
		fmt.Fprintln(w, "No Analysis")
	}
	for i, a := range wa.Analyses {
		s := a.FormatLong()
		if a.IsRuntime() {
			s += runtimeNote
		}
		fmt.Fprintf(w, "%d - %s\n", i+1, s)
	}
}

// demo analyzes each token, adds the item, and analyzes the token again.
func demo(e *morph.Engine, w io.Writer) error {
	cases := []struct {
		title string
		input string
		item  *morph.DictionaryItem
	}{
		{"Proper Noun Test - 1", "Meydan'a", morph.MustDictionaryItem("Meydan", "meydan", "meydan", morph.Noun, morph.ProperNoun)},
		{"Proper Noun Test - 2", "Meeeydan'a", morph.MustDictionaryItem("Meeeydan", "meeeydan", "meeeydan", morph.Noun, morph.ProperNoun)},
		{"Verb Test", "tweetleyeyazdım", morph.MustDictionaryItem("tweetlemek", "tweetle", "tivitle", morph.Verb, morph.NoSecondary)},
	}
	for _, c := range cases {
		fmt.Fprintf(w, "\n%s:\n\n", c.title)
		if err := addAndCompare(e, w, c.input, c.item); err != nil {
			return err
		}
	}
	return nil
}

func addAndCompare(e *morph.Engine, w io.Writer, input string, item *morph.DictionaryItem) error {
	fmt.Fprintf(w, "Parses for %s before adding %s\n", input, item)
	before, err := e.Analyze(input)
	if err != nil {
		return err
	}
	printResults(w, before)

	e.InvalidateCache()
	if err := e.AddDictionaryItem(item); err != nil && !errors.Is(err, morph.ErrDuplicateItem) {
		return err
	}

	after, err := e.Analyze(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Parses for %s after adding %s\n", input, item)
	printResults(w, after)
	return nil
}
