// Command kernelc checks WGSL compute kernels against the descriptor
// layout convention and cross-compiles them to HLSL.
//
// Usage:
//
//	kernelc [options] <kernel.wgsl>
//
// Examples:
//
//	kernelc saxpy.wgsl                          # Print bindings
//	kernelc -grid 1000 saxpy.wgsl               # Validate a dispatch
//	kernelc -grid 512,512 -group 8,8 blur.wgsl  # Explicit group size
//	kernelc -hlsl saxpy.hlsl saxpy.wgsl         # Write HLSL
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/compute"
)

func main() {
	flag.Usage = usage
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		usage()
		os.Exit(1)
	}

	if cfg.verbose {
		compute.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	input          string
	grid           []int
	group          []int
	hlslOut        string
	implicitOutput bool
	verbose        bool
}

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	var (
		cfg   config
		grid  string
		group string
	)
	fs.StringVar(&grid, "grid", "", "validate a dispatch over `gx[,gy[,gz]]` threads")
	fs.StringVar(&group, "group", "", "group extents `sx[,sy[,sz]]` (default: @workgroup_size)")
	fs.StringVar(&cfg.hlslOut, "hlsl", "", "write HLSL to `file`")
	fs.BoolVar(&cfg.implicitOutput, "implicit-output", false, "kernel writes an implicit output texture at @group(1) @binding(0)")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if fs.NArg() != 1 {
		return config{}, errors.New("expected exactly one input file")
	}
	cfg.input = fs.Arg(0)

	var err error
	if grid != "" {
		if cfg.grid, err = parseExtent(grid); err != nil {
			return config{}, fmt.Errorf("-grid: %w", err)
		}
	}
	if group != "" {
		if cfg.group, err = parseExtent(group); err != nil {
			return config{}, fmt.Errorf("-group: %w", err)
		}
	}
	return cfg, nil
}

func run(cfg config, w io.Writer) error {
	source, err := os.ReadFile(cfg.input)
	if err != nil {
		return err
	}

	k, err := loadKernel(string(source), cfg.implicitOutput)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.input, err)
	}
	if err := k.print(w); err != nil {
		return err
	}

	if cfg.grid != nil {
		if err := k.checkDispatch(w, cfg.grid, cfg.group); err != nil {
			return err
		}
	}

	if cfg.hlslOut != "" {
		code, err := k.hlsl()
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.input, err)
		}
		if err := os.WriteFile(cfg.hlslOut, []byte(code), 0o644); err != nil { //nolint:gosec // generated source is not secret
			return err
		}
		fmt.Fprintf(w, "wrote %s (%d bytes)\n", cfg.hlslOut, len(code))
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: kernelc [options] <kernel.wgsl>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  kernelc saxpy.wgsl                  Print bindings\n")
	fmt.Fprintf(os.Stderr, "  kernelc -grid 1000 saxpy.wgsl       Validate a dispatch\n")
	fmt.Fprintf(os.Stderr, "  kernelc -hlsl out.hlsl saxpy.wgsl   Write HLSL\n")
}
