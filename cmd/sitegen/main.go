// Command sitegen fills a directory with a sample document tree for the
// web server: sections of files covering the known content types, index
// pages, listable directories and a share of files hidden from others.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/astaxie/beego/logs"
)

func main() {
	dirFlag := flag.String("dir", "./www", "document root to populate")
	countFlag := flag.Int("count", 40, "number of files to create")
	sizesFlag := flag.String("sizes", "1KB,16KB,256KB", "comma separated list of target file sizes")
	maxBytesFlag := flag.String("max-bytes", "10MB", "maximum total bytes to generate (0 for no limit)")
	workersFlag := flag.Int("workers", 4, "number of concurrent writers")
	privateFlag := flag.Float64("private", 0.1, "fraction of files created without read permission for others")
	seedFlag := flag.Int64("seed", 0, "random seed (0 picks one)")
	flag.Parse()

	log := logs.NewLogger()
	if err := log.SetLogger(logs.AdapterConsole); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		log.Critical("invalid sizes: %v", err)
		os.Exit(1)
	}
	maxBytes, err := parseByteSize(*maxBytesFlag)
	if err != nil {
		log.Critical("invalid max-bytes: %v", err)
		os.Exit(1)
	}

	plan, err := buildPlan(Options{
		Root:     *dirFlag,
		Count:    *countFlag,
		Sizes:    sizes,
		MaxBytes: maxBytes,
		Private:  *privateFlag,
		Seed:     *seedFlag,
	})
	if err != nil {
		log.Critical("%v", err)
		os.Exit(1)
	}
	if len(plan.Files) == 0 {
		log.Warn("no files generated due to constraints")
		return
	}
	if err := generate(plan, *workersFlag, log); err != nil {
		log.Critical("failed to create files: %v", err)
		os.Exit(1)
	}
	log.Info("generated %d file(s) totalling %s under %s", len(plan.Files), humanReadable(plan.TotalBytes), *dirFlag)
}
