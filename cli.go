package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/strager/sdtac/ast"
	"github.com/strager/sdtac/sdt"
	"github.com/strager/sdtac/symtab"
	"github.com/strager/sdtac/tac"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `sdtac - A syntax-directed front end that lowers programs to three-address code

Usage:
    sdtac <command> [arguments]

Commands:
    build <file>    Compile a .mc file to a three-address code listing
    eval <code>     Compile inline code and print its three-address code
    check <file>    Parse a .mc file and build its symbol table
    help            Show this help message

Examples:
    sdtac build -o add.tac add.mc
    sdtac eval 'int f(int a) { return a * 2; }'
    sdtac check -policy strict myfile.mc

Use "sdtac <command> -h" for more information about a command.
`)
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <filename>.tac)")
	numbered := fs.Bool("n", false, "Prefix each quad with its index")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	var opts sdt.Options
	fs.Var(&opts.Policy, "policy", "Undeclared identifier policy: tolerant or strict")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sdtac build [-o output] [-n] [-policy p] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .mc file to a three-address code listing\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)

	// Determine output filename
	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".mc") + ".tac"
	}

	if *verbose {
		fmt.Printf("Compiling %s to %s...\n", filename, outputFile)
	}

	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	// Add null terminator as required by lexer
	input := append(sourceBytes, '\x00')

	c, err := compileProgram(input, opts, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	err = os.WriteFile(outputFile, []byte(tac.Format(c.Quads, *numbered)), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing TAC file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d quads)\n", outputFile, len(c.Quads))
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	numbered := fs.Bool("n", false, "Prefix each quad with its index")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	var opts sdt.Options
	fs.Var(&opts.Policy, "policy", "Undeclared identifier policy: tolerant or strict")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sdtac eval [-n] [-policy p] [-v] <code>\n")
		fmt.Fprintf(os.Stderr, "Compile inline code and print its three-address code\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	code := fs.Arg(0)

	if *verbose {
		fmt.Printf("Evaluating: %s\n", code)
	}

	// Add null terminator as required by lexer
	input := []byte(code + "\x00")

	c, err := compileProgram(input, opts, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(tac.Format(c.Quads, *numbered))
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	var opts sdt.Options
	fs.Var(&opts.Policy, "policy", "Undeclared identifier policy: tolerant or strict")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sdtac check [-policy p] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse a .mc file and build its symbol table\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
		opts.ScopeExited = func(function string, scope *symtab.Scope) {
			fmt.Printf("Exited scope of %s: %s\n", function, scopeToSExpr("scope "+quote(function), scope))
		}
	}

	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	// Add null terminator as required by lexer
	input := append(sourceBytes, '\x00')

	// Parse and build the symbol table (but don't generate code)
	c, err := analyzeProgram(input, opts)
	if err != nil {
		fmt.Printf("Errors in %s:\n%v\n", filename, err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", ast.ToSExpr(c.Program))
		fmt.Printf("Globals: %s\n", scopeToSExpr("global", c.Symbols.Global()))
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		buildCommand(args)
	case "eval":
		evalCommand(args)
	case "check":
		checkCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
