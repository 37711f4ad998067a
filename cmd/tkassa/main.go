// Command tkassa extracts a club's participation records from Eventor
// and prints a per-person ledger of owed entry fees for a date range.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/erikaderstedt/tkassa/internal/eventor"
	"github.com/erikaderstedt/tkassa/internal/extract"
	"github.com/erikaderstedt/tkassa/internal/iof"
	"github.com/erikaderstedt/tkassa/internal/report"
	sqlitecache "github.com/erikaderstedt/tkassa/internal/storage/sqlite"
	"github.com/erikaderstedt/tkassa/pkg/logging"
)

var (
	quiet    = pflag.BoolP("quiet", "q", false, "hide additional information while running")
	ignore   = pflag.StringP("ignore", "i", "", "comma-separated list of event IDs to ignore")
	cacheDir = pflag.StringP("cache", "c", ".", "cache folder for requests")
	orgID    = pflag.Uint64P("org-id", "o", 224, "organisation id") // 224 = Kungälvs OK
	help     = pflag.BoolP("help", "h", false, "show this help menu")
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tkassa [options] <API key> <from date YYYY-MM-DD> <to date YYYY-MM-DD>")
	fmt.Fprintln(os.Stderr, "The API key may be omitted when EVENTOR_API_KEY is set.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprint(os.Stderr, pflag.CommandLine.FlagUsages())
}

func fatalUsage(problem string) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", problem)
	usage()
	os.Exit(1)
}

func main() {
	pflag.Usage = usage
	pflag.Parse()
	if *help {
		usage()
		return
	}

	_ = godotenv.Load()

	var apiKey, fromDate, toDate string
	switch args := pflag.Args(); len(args) {
	case 3:
		apiKey, fromDate, toDate = args[0], args[1], args[2]
	case 2:
		apiKey = strings.TrimSpace(os.Getenv("EVENTOR_API_KEY"))
		fromDate, toDate = args[0], args[1]
		if apiKey == "" {
			fatalUsage("Too few arguments.")
		}
	default:
		fatalUsage("Too few arguments.")
	}
	if len(fromDate) < 4 {
		fatalUsage("Starting date is too short.")
	}
	referenceYear, ok := iof.YearFromDate(fromDate)
	if !ok {
		fatalUsage("Invalid starting year.")
	}

	if *quiet {
		logging.SetupWithLevel(slog.LevelWarn)
	} else {
		logging.Setup()
	}

	cache, err := sqlitecache.New(filepath.Join(*cacheDir, "eventor-cache.db"))
	if err != nil {
		slog.Error("Failed to open response cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	client := eventor.New(eventor.DefaultBaseURL, apiKey, cache)
	extractor := extract.New(client, *orgID, parseIgnoreList(*ignore), referenceYear)

	ledger, err := extractor.Run(context.Background(), fromDate, toDate)
	if err != nil {
		slog.Error("Extraction failed", "error", err)
		os.Exit(1)
	}

	if err := report.Write(os.Stdout, ledger.Persons()); err != nil {
		slog.Error("Failed to write report", "error", err)
		os.Exit(1)
	}
}

// parseIgnoreList splits a comma-separated id list, dropping anything
// that does not parse.
func parseIgnoreList(raw string) []uint64 {
	var ids []uint64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
