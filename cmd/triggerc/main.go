// triggerc compiles and runs trigger-function source files through the
// core package's [core.Session] façade.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/triggerlang/core"
	"github.com/triggerlang/core/bccache"
	"github.com/triggerlang/core/diag"
)

const version = "0.1.0"

func printUsage() {
	fmt.Fprintf(os.Stderr, `triggerc v%s

USAGE:
    %s [OPTIONS] <file>

OPTIONS:
    -dbg <path>       Write bytecode disassembly for <file> to <path> ("-" for stdout)
    -cache <path>     Bytecode cache file to consult and update
    -color            Enable ANSI-coloured diagnostics
    -v, --version     Show version information
    -h, --help        Show this help message
`, version, os.Args[0])
}

func main() {
	flag.Usage = printUsage
	dbgFlag := flag.String("dbg", "", "write bytecode disassembly to this path")
	cacheFlag := flag.String("cache", "", "bytecode cache file")
	colorFlag := flag.Bool("color", false, "enable ANSI-coloured diagnostics")
	versionFlag := flag.Bool("version", false, "show version information")
	flag.BoolVar(versionFlag, "v", false, "show version information")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("triggerc v%s\n", version)
		return
	}

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	loader := fileLoader{}
	sink := &diag.ANSISink{Writer: os.Stderr, Color: *colorFlag}
	sess := core.NewSession(loader, sink)

	if *cacheFlag != "" {
		cache, err := bccache.Open(*cacheFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "triggerc: opening cache: %v\n", err)
			os.Exit(1)
		}
		sess.Cache = cache
	}

	_, failed, err := sess.Compile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "triggerc: %v\n", err)
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
	// Written here rather than deferred: every path out of main ends in
	// os.Exit, which skips deferred calls.
	if sess.Cache != nil {
		if err := sess.Cache.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "triggerc: writing cache: %v\n", err)
		}
	}

	if *dbgFlag != "" {
		if err := emitDebug(sess, path, *dbgFlag); err != nil {
			fmt.Fprintf(os.Stderr, "triggerc: %v\n", err)
			os.Exit(1)
		}
	}

	outcomes, err := sess.Run(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "triggerc: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, o := range outcomes {
		if o.IsError {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func emitDebug(sess *core.Session, path, dbgPath string) error {
	if dbgPath == "-" {
		return sess.EmitDebug(path, os.Stdout)
	}
	f, err := os.Create(dbgPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return sess.EmitDebug(path, f)
}

// fileLoader resolves a source name as a filesystem path, the only loader a
// CLI driver needs; the core package stays agnostic of where text comes from
// (spec.md §1).
type fileLoader struct{}

func (fileLoader) Load(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
