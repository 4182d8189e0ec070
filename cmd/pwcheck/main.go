package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/5w1tchy/pwstrength/internal/cli"
	"github.com/5w1tchy/pwstrength/internal/config"
	"github.com/5w1tchy/pwstrength/internal/logger"
	"github.com/5w1tchy/pwstrength/internal/repository/sqlconnect"
	"github.com/5w1tchy/pwstrength/internal/security/password"
	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/5w1tchy/pwstrength/internal/strength"
	"github.com/rs/zerolog"
)

func main() {
	jsonOut := flag.Bool("json", false, "print the assessment as JSON")
	hash := flag.Bool("hash", false, "also print an argon2id hash when the password is not Weak")
	record := flag.Bool("record", false, "store the assessment (never the password) in DATABASE_URL")
	envFile := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	// JSON output keeps stdout machine-readable.
	promptTo := io.Writer(os.Stdout)
	if *jsonOut {
		promptTo = os.Stderr
	}
	fmt.Fprint(promptTo, cli.Prompt)

	pwd, err := cli.ReadPassword(os.Stdin)
	if err != nil {
		log.Fatal().Err(err).Msg("read failed")
	}

	var a strength.Assessment
	var phc string
	if *hash {
		policy := password.NewPolicy(password.NewHasher(password.ParamsFromConfig(cfg.Argon2)))
		phc, a, err = policy.HashIfAccepted(pwd)
		if err != nil && !errors.Is(err, password.ErrTooWeak) {
			log.Fatal().Err(err).Msg("hash failed")
		}
	} else {
		a = strength.Check(pwd)
	}

	if *record {
		recordAssessment(cfg.DatabaseURL, a, log)
	}

	if *jsonOut {
		err = cli.RenderJSON(os.Stdout, a, phc)
	} else {
		err = cli.Render(os.Stdout, a)
		if err == nil && phc != "" {
			_, err = fmt.Fprintf(os.Stdout, "Hash: %s\n", phc)
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}
}

func recordAssessment(dsn string, a strength.Assessment, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := sqlconnect.ConnectDB(ctx, dsn)
	if err != nil {
		log.Warn().Err(err).Msg("assessment not recorded")
		return
	}
	defer db.Close()

	if err := assessments.New(db).InsertBatch(ctx, []assessments.Record{assessments.NewRecord(a, assessments.SourceCLI)}); err != nil {
		log.Warn().Err(err).Msg("assessment not recorded")
	}
}
