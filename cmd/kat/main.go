// Command kat runs the built-in known-answer vectors and prints the report
// as JSON. With -rsp it validates a NIST response file instead.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"trustaes/internal/logger"
	"trustaes/internal/modes"
	"trustaes/internal/services/vector"
)

func main() {
	rsp := flag.String("rsp", "", "validate this .rsp file instead of the built-in vectors")
	mode := flag.String("mode", "CBC", "mode of the -rsp file: ECB, CBC or CTR")
	test := flag.String("test", "MMT", "test type of the -rsp file: KAT, MMT or MCT")
	flag.Parse()

	lg, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer lg.Sync()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *rsp == "" {
		kas, err := vector.RunKnownAnswers()
		if err != nil {
			lg.Fatalw("known answers", "error", err)
		}
		_ = enc.Encode(kas)
		for _, ka := range kas {
			if !ka.OK {
				lg.Errorw("mismatch", "name", ka.Name)
				os.Exit(1)
			}
		}
		return
	}

	m, err := modes.ParseMode(*mode)
	if err != nil {
		lg.Fatalw("bad -mode", "error", err)
	}
	tm, err := vector.ParseTestMode(*test)
	if err != nil {
		lg.Fatalw("bad -test", "error", err)
	}
	f, err := os.Open(*rsp)
	if err != nil {
		lg.Fatalw("open", "error", err)
	}
	defer f.Close()
	recs, err := vector.ParseRSP(f)
	if err != nil {
		lg.Fatalw("parse", "file", *rsp, "error", err)
	}
	res, err := vector.Validate(m, tm, recs)
	if err != nil {
		lg.Fatalw("validate", "file", *rsp, "error", err)
	}
	_ = enc.Encode(res)
	if res.Failed > 0 {
		os.Exit(1)
	}
}
