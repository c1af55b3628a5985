package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	specflow "github.com/specflow/specflow-go"
	"github.com/specflow/specflow-go/importer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "lint":
		lintCmd(os.Args[2:])
	case "fmt":
		fmtCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "specflow CLI\n\nUsage:\n  specflow lint -f schema.(json|yaml)\n  specflow fmt -f schema.(json|yaml)\n\nNotes:\n  - lint reconstructs the document through the builders and reports the first violated rule.\n  - fmt prints the canonical JSON form of a valid document.")
}

func lintCmd(args []string) {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	var file string
	fs.StringVar(&file, "f", "", "schema document to check")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}

	if _, err := importFile(file); err != nil {
		if se, ok := specflow.AsSchemaError(err); ok {
			fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", file, se.Error(), se.Code)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
		}
		os.Exit(1)
	}
	fmt.Println("ok")
}

func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	var file string
	fs.StringVar(&file, "f", "", "schema document to canonicalize")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}

	s, err := importFile(file)
	if err != nil {
		fatalf("%s: %v", file, err)
	}
	out, err := json.MarshalIndent(s.Document(), "", "  ")
	if err != nil {
		fatalf("encode: %v", err)
	}
	fmt.Println(string(out))
}

func importFile(path string) (specflow.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return importer.ImportYAML(data)
	default:
		return importer.ImportJSON(data)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
