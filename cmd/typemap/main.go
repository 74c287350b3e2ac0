package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/suparena/typereg"
	"github.com/suparena/typereg/config"
	"github.com/suparena/typereg/datastore/ddb"
	"github.com/suparena/typereg/format/jsonfmt"
	"github.com/suparena/typereg/format/yamlfmt"
	"github.com/suparena/typereg/registry"
	"github.com/suparena/typereg/untagged"
)

var (
	versionFlag  = flag.Bool("version", false, "Show version information")
	vFlag        = flag.Bool("v", false, "Show version information (short)")
	registryFlag = flag.String("registry", "", "Registry definition file (YAML)")
	inFlag       = flag.String("in", "-", "Input file, - for stdin")
	fromFlag     = flag.String("from", "yaml", "Input format: yaml or json")
	toFlag       = flag.String("to", "json", "Output format: yaml or json")
	getFlag      = flag.String("ddb-get", "", "Read the map with this ID from DynamoDB instead of -in")
	putFlag      = flag.String("ddb-put", "", "Store the decoded map under this ID in DynamoDB")
	typesFlag    = flag.Bool("types", false, "List the type names usable in registry files")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := typereg.GetVersionInfo()
		fmt.Printf("typereg typemap version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if *typesFlag {
		fmt.Println(strings.Join(registry.TypeNames(), "\n"))
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(context.Background(), logger, os.Stdout); err != nil {
		logger.Error("typemap failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, out io.Writer) error {
	if *registryFlag == "" {
		return fmt.Errorf("-registry is required")
	}
	reg, file, err := config.LoadRegistry(*registryFlag)
	if err != nil {
		return err
	}

	var store *ddb.Store
	if *getFlag != "" || *putFlag != "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		var opts []ddb.Option
		opts = append(opts, ddb.WithLogger(logger))
		if len(file.IndexMap) > 0 {
			opts = append(opts, ddb.WithIndexMap(file.IndexMap))
		}
		store, err = ddb.NewFromConfig(ctx, cfg.AWS, reg, opts...)
		if err != nil {
			return err
		}
	}

	var typeMap *untagged.TypeMap[string]
	if *getFlag != "" {
		typeMap, err = store.GetOne(ctx, *getFlag)
	} else {
		typeMap, err = decodeInput(reg)
	}
	if err != nil {
		return err
	}
	logger.Debug("decoded type map", "entries", typeMap.Len())

	if *putFlag != "" {
		if err := store.Put(ctx, *putFlag, typeMap); err != nil {
			return err
		}
		logger.Info("stored type map", "id", *putFlag, "entries", typeMap.Len())
	}

	return encodeOutput(out, typeMap, *toFlag)
}

func decodeInput(reg *untagged.TypeReg[string]) (*untagged.TypeMap[string], error) {
	var r io.Reader = os.Stdin
	if *inFlag != "-" {
		data, err := os.ReadFile(*inFlag)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}

	switch *fromFlag {
	case "yaml":
		return yamlfmt.DecodeReader(reg, r)
	case "json":
		return jsonfmt.DecodeReader(reg, r)
	default:
		return nil, fmt.Errorf("unknown input format %q", *fromFlag)
	}
}

func encodeOutput(w io.Writer, m *untagged.TypeMap[string], format string) error {
	switch format {
	case "yaml":
		return yamlfmt.EncodeTo(w, m)
	case "json":
		return jsonfmt.EncodeIndent(w, m, "  ")
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
