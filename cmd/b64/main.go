// b64 encodes files to Base64 and back using bounded-round codec sessions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tickwise/base64-stream/buffer"
	"github.com/tickwise/base64-stream/chunk"
	"github.com/tickwise/base64-stream/codec"
	"github.com/tickwise/base64-stream/round"
)

func main() {
	var (
		decode      = pflag.BoolP("decode", "d", false, "decode Base64 text to bytes instead of encoding")
		output      = pflag.StringP("output", "o", "-", "output file, - for stdout")
		tuningPath  = pflag.String("tuning", "", "YAML file with round budgets and chunk limits")
		digest      = pflag.Bool("digest", false, "print the BLAKE3 digest of the result to stderr")
		chunkTrace  = pflag.Bool("chunk-trace", false, "print the destination chunk layout to stderr (encode only)")
		verbose     = pflag.BoolP("verbose", "v", false, "enable debug logging")
		interactive = pflag.BoolP("interactive", "i", false, "interactive mode with TUI")
	)
	pflag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		codec.SetLogger(logger)
		round.SetLogger(logger)
	}

	input := "-"
	switch args := pflag.Args(); len(args) {
	case 0:
	case 1:
		input = args[0]
	default:
		fmt.Fprintln(os.Stderr, "Usage: b64 [flags] [file]")
		fmt.Fprintln(os.Stderr, "       b64 -d [flags] [file]  (decode)")
		fmt.Fprintln(os.Stderr, "       b64 -i [file]          (interactive mode)")
		os.Exit(1)
	}

	tuning := codec.DefaultTuning()
	if *tuningPath != "" {
		var err error
		tuning, err = codec.LoadTuning(*tuningPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(input, *decode, tuning); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(input, *output, tuning, *decode, *digest, *chunkTrace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output string, tuning codec.Tuning, decode, digest, chunkTrace bool) error {
	ctx := context.Background()

	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var out []byte
	if decode {
		out, err = decodeBytes(ctx, data, tuning)
	} else {
		out, err = encodeBytes(ctx, data, tuning, chunkTrace)
	}
	if err != nil {
		return err
	}

	if digest {
		sum := blake3.Sum256(out)
		fmt.Fprintf(os.Stderr, "blake3 %x\n", sum)
	}

	return writeOutput(output, out)
}

func encodeBytes(ctx context.Context, data []byte, tuning codec.Tuning, chunkTrace bool) ([]byte, error) {
	enc := codec.NewEncoderWithTuning(tuning)
	task := enc.ConsumeTask(buffer.FromBytes(data))
	if err := round.Run(ctx, task); err != nil {
		enc.Release()
		return nil, err
	}

	text, err := enc.Finish()
	if err != nil {
		return nil, err
	}
	defer text.Release()

	if chunkTrace {
		for i, seg := range text.Segments() {
			fmt.Fprintf(os.Stderr, "chunk %d: %d characters\n", i, len(seg))
		}
		fmt.Fprintf(os.Stderr, "%d bytes in %d rounds\n", len(data), task.Rounds())
	}

	return append([]byte(text.String()), '\n'), nil
}

func decodeBytes(ctx context.Context, data []byte, tuning codec.Tuning) ([]byte, error) {
	// whitespace from shells, editors, and line wrapping is not payload
	src := chunk.NewWithLimit(tuning.ChunkLimit)
	src.Append(stripSpace(string(data)))

	dec := codec.NewDecoderWithTuning(tuning)
	if err := dec.Consume(ctx, src); err != nil {
		dec.Release()
		return nil, err
	}

	decoded, err := dec.Finish()
	if err != nil {
		dec.Release()
		return nil, err
	}
	out := make([]byte, decoded.Len())
	copy(out, decoded.Bytes())
	decoded.Release()
	return out, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
