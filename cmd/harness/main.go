package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"pkt.systems/harness"
)

func main() {
	file := flag.StringP("file", "f", "harness.conf", "keyword configuration file")
	mode := flag.StringP("mode", "m", "line", "colorization method: 'line' or 'word'")
	style := flag.StringP("style", "s", "8bit", "color style: '4bit', '8bit', or '24bit'")
	ignore := flag.BoolP("ignore", "i", false, "ignore case when matching keywords")
	noColor := flag.Bool("no-color", false, "disable colorized output, even when writing to a TTY")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] command [args...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := harness.Options{
		ConfigFile: *file,
		IgnoreCase: *ignore,
		NoColor:    *noColor || !stdoutIsTerminal(),
	}
	var err error
	if opts.Mode, err = harness.ParseMode(*mode); err != nil {
		usageError(err)
	}
	if opts.Style, err = harness.ParseStyle(*style); err != nil {
		usageError(err)
	}

	code, err := harness.Run(flag.Args(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "harness: %v\n", err)
	}
	os.Exit(code)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func usageError(err error) {
	fmt.Fprintf(os.Stderr, "harness: %v\n", err)
	flag.Usage()
	os.Exit(2)
}
