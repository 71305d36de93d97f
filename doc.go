// Package harness wraps a child command and colorizes its output as it is
// produced, based on a KEY=COLOR keyword table. Lines are rewritten the
// moment their terminator arrives, so long-running commands stay live;
// stdout and stderr are drained concurrently and the child's exit code is
// preserved.
//
// A configuration file maps keywords to colors, one per line. The reserved
// key "base" sets the fallback color for tokens that match no keyword:
//
//	# harness.conf
//	base=white
//	fail=red
//	ok=green
//
// Basic usage:
//
//	opts := harness.Options{
//		ConfigFile: "harness.conf",
//		Mode:       harness.ModeWord,
//		Style:      harness.Style8Bit,
//	}
//	code, err := harness.Run([]string{"make", "test"}, opts)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.Exit(code)
//
// The pieces compose individually as well: LoadConfig builds the rule table,
// Colorizer rewrites single lines, and Pump streams any pair of readers to a
// writer with per-line serialization.
package harness
