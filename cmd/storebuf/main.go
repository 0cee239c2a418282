// storebuf inspects and builds sealed storebuf envelopes.
//
// Usage:
//
//	storebuf inspect --base64 <sealed> [--payload] [--format text|yaml]
//	storebuf inspect --file <path>
//	storebuf seal --codec BitPacked [--compression Zstd] [--compressed-strings] [--little-endian] [--strict] --payload-base64 <payload>
package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/storebuf/envelope"
	"github.com/arloliu/storebuf/format"
	"github.com/arloliu/storebuf/store"
)

const usage = `storebuf: inspect and build sealed storebuf payloads

Commands:
  inspect   print the envelope header of a sealed payload
  seal      wrap a raw payload in an envelope header

Run "storebuf <command> --help" for command flags.
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("missing command")
	}

	switch args[0] {
	case "inspect":
		return runInspect(args[1:], stdout, stderr)
	case "seal":
		return runSeal(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newFlagSet(name string, stderr io.Writer, verbose *bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVarP(verbose, "verbose", "v", false, "log decoder diagnostics to stderr")

	return fs
}

func setupLogging(verbose bool) (func(), error) {
	if !verbose {
		return func() {}, nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	store.SetLogger(logger)

	return func() {
		_ = logger.Sync()
		store.SetLogger(nil)
	}, nil
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	var (
		encoded     string
		path        string
		showPayload bool
		output      string
		verbose     bool
	)

	fs := newFlagSet("inspect", stderr, &verbose)
	fs.StringVar(&encoded, "base64", "", "sealed payload as standard base64")
	fs.StringVar(&path, "file", "", "read the sealed payload from a file")
	fs.BoolVar(&showPayload, "payload", false, "also print the payload as base64")
	fs.StringVar(&output, "format", "text", "output format: text or yaml")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return err
	}

	cleanup, err := setupLogging(verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := readSealed(encoded, path)
	if err != nil {
		return err
	}

	h, payload, err := envelope.Open(data)
	if err != nil {
		return fmt.Errorf("open envelope: %w", err)
	}

	report := headerReport{
		Version:     h.Version,
		Codec:       h.Codec.String(),
		Compression: compressionName(h.Compression),
		Flags:       h.Flags.Describe(envelope.FlagNames),
		Length:      h.PayloadLength,
		Checksum:    fmt.Sprintf("0x%08X", h.Checksum),
	}
	if showPayload {
		report.Payload = base64.StdEncoding.EncodeToString(payload)
	}

	return report.write(stdout, output)
}

// headerReport is the printable form of an envelope header.
type headerReport struct {
	Version     uint8  `yaml:"version"`
	Codec       string `yaml:"codec"`
	Compression string `yaml:"compression"`
	Flags       string `yaml:"flags"`
	Length      uint32 `yaml:"length"`
	Checksum    string `yaml:"checksum"`
	Payload     string `yaml:"payload,omitempty"`
}

func (r headerReport) write(w io.Writer, output string) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()
	case "text":
		fmt.Fprintf(w, "version:     %d\n", r.Version)
		fmt.Fprintf(w, "codec:       %s\n", r.Codec)
		fmt.Fprintf(w, "compression: %s\n", r.Compression)
		fmt.Fprintf(w, "flags:       %s\n", r.Flags)
		fmt.Fprintf(w, "length:      %d\n", r.Length)
		fmt.Fprintf(w, "checksum:    %s\n", r.Checksum)
		if r.Payload != "" {
			fmt.Fprintf(w, "payload:     %s\n", r.Payload)
		}

		return nil
	default:
		return fmt.Errorf("unknown --format %q (want text or yaml)", output)
	}
}

func runSeal(args []string, stdout, stderr io.Writer) error {
	var (
		codecName    string
		compName     string
		payloadB64   string
		wrapped      bool
		littleEndian bool
		strict       bool
		verbose      bool
	)

	fs := newFlagSet("seal", stderr, &verbose)
	fs.StringVar(&codecName, "codec", format.CodecBitPacked.String(), "codec that produced the payload (ByteAligned, VarWidth, BitPacked)")
	fs.StringVar(&compName, "compression", format.CompressionNone.String(), "string compression (None, Deflate, Zstd, S2, LZ4)")
	fs.StringVar(&payloadB64, "payload-base64", "", "raw payload as standard base64")
	fs.BoolVar(&wrapped, "compressed-strings", false, "mark strings as written through the compression wrapper (implied unless --compression is None)")
	fs.BoolVar(&littleEndian, "little-endian", false, "mark the payload as little-endian")
	fs.BoolVar(&strict, "strict", false, "mark the payload for strict string reads")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return err
	}

	cleanup, err := setupLogging(verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	codec, err := format.ParseCodecType(codecName)
	if err != nil {
		return err
	}
	compression, err := format.ParseCompressionType(compName)
	if err != nil {
		return err
	}
	payload, err := base64.StdEncoding.DecodeString(payloadB64)
	if err != nil {
		return fmt.Errorf("decode --payload-base64: %w", err)
	}

	h := envelope.NewHeader(codec, compression).
		With(envelope.FlagCompressedStrings, wrapped || compression != format.CompressionNone).
		With(envelope.FlagLittleEndian, littleEndian).
		With(envelope.FlagStrictReads, strict)

	sealed, err := envelope.Seal(h, payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, base64.StdEncoding.EncodeToString(sealed))

	return nil
}

func readSealed(encoded, path string) ([]byte, error) {
	switch {
	case encoded != "" && path != "":
		return nil, errors.New("--base64 and --file are mutually exclusive")
	case encoded != "":
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decode --base64: %w", err)
		}

		return data, nil
	case path != "":
		return os.ReadFile(path)
	default:
		return nil, errors.New("one of --base64 or --file is required")
	}
}

func compressionName(c format.CompressionType) string {
	if c == 0 {
		return "Custom"
	}

	return c.String()
}
