// Command mdtok compiles CommonMark-subset markdown to HTML.
package main

import (
	"bytes"
	"flag"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/google/renameio"
	"github.com/russross/blackfriday"

	"github.com/jcorbin/mdtok/html"
	"github.com/jcorbin/mdtok/mdtok"
)

func main() {
	var (
		outPath string
		legacy  bool
	)
	flag.StringVar(&outPath, "o", "", "write output to this file atomically, instead of stdout")
	flag.BoolVar(&legacy, "legacy", false, "also render with blackfriday and log when the two outputs differ in length")
	flag.Parse()

	src, err := readInput(flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	t := mdtok.ParseDocument(src)
	out := html.Compile(t)

	if legacy {
		compareLegacy(src, out)
	}

	if err := writeOutput(outPath, out); err != nil {
		log.Fatal(err)
	}
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return ioutil.ReadAll(os.Stdin)
	}
	var buf bytes.Buffer
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(&buf, f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeOutput(path string, out []byte) (rerr error) {
	if path == "" {
		_, err := os.Stdout.Write(out)
		return err
	}

	pf, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer func() {
		if rerr == nil {
			rerr = pf.CloseAtomicallyReplace()
		}
		pf.Cleanup()
	}()

	_, err = pf.Write(out)
	return err
}

// compareLegacy renders src through blackfriday for comparison and logs a
// byte-length mismatch; the two renderers are not expected to agree
// byte-for-byte (this repo implements a reduced construct set, see
// SPEC_FULL.md), so this is a coarse sanity signal, not a golden diff.
func compareLegacy(src []byte, out []byte) {
	ext := 0 |
		blackfriday.NoIntraEmphasis |
		blackfriday.FencedCode |
		blackfriday.Autolink |
		blackfriday.HeadingIDs
	legacyOut := blackfriday.Run(src, blackfriday.WithExtensions(ext))
	if len(legacyOut) != len(out) {
		log.Printf("mdtok/blackfriday output length differs: %d vs %d bytes", len(out), len(legacyOut))
	}
}
