package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	cbor "github.com/synadia-labs/cborstream.go/runtime"
)

// CLI defines the cbordiag command-line interface.
//
// The input may hold a single CBOR item or a sequence of items back to
// back; each item is rendered on its own line. With --check nothing is
// printed and the exit status reports well-formedness.
type CLI struct {
	Input  string `arg:"" optional:"" help:"Input file (defaults to stdin)"`
	Hex    bool   `short:"x" help:"Treat input as hex text"`
	JSON   bool   `short:"j" help:"Render JSON instead of diagnostic notation"`
	Check  bool   `short:"c" help:"Only check well-formedness, produce no output"`
	Strict bool   `help:"Reject non-minimal integer and length encodings"`
	Det    bool   `name:"deterministic" help:"Forbid indefinite-length items"`
	MaxLen uint32 `help:"Maximum container or string length (0 = unlimited)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cbordiag"),
		kong.Description("Render CBOR in RFC 8949 diagnostic notation, or as JSON."),
	)

	if err := run(&cli, os.Stdout); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

func run(cli *CLI, out io.Writer) error {
	data, err := readInput(cli)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("empty input")
	}
	if !cli.Hex && cbor.IsLikelyJSON(data) {
		fmt.Fprintln(os.Stderr, "cbordiag: input looks like JSON text, not CBOR (did you mean --hex?)")
	}

	d := cbor.NewDecoderBytes(data)
	d.SetStrictDecode(cli.Strict)
	d.SetDeterministicDecode(cli.Det)
	d.SetMaxContainerLen(cli.MaxLen)

	for item := 1; ; item++ {
		if _, err := d.NextType(); err != nil {
			if err == cbor.ErrShortBytes && item > 1 {
				return nil
			}
			return fmt.Errorf("item %d: %w", item, err)
		}
		if err := renderItem(cli, d, out); err != nil {
			return fmt.Errorf("item %d: %w", item, err)
		}
	}
}

func renderItem(cli *CLI, d *cbor.Decoder, out io.Writer) error {
	switch {
	case cli.Check:
		return d.ValidateWellFormed()
	case cli.JSON:
		s, err := d.JSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	default:
		s, err := d.Diag()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}
}

func readInput(cli *CLI) ([]byte, error) {
	var data []byte
	var err error
	if cli.Input == "" || cli.Input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(cli.Input)
	}
	if err != nil {
		return nil, err
	}
	if cli.Hex {
		clean := strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\t', '\r', '\n':
				return -1
			}
			return r
		}, string(data))
		return hex.DecodeString(clean)
	}
	return data, nil
}
