package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	arg "github.com/alexflint/go-arg"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/h64/homework-cloner/classroom"
	"github.com/h64/homework-cloner/config"
	"github.com/h64/homework-cloner/envutil"
)

// repoNamePattern rejects repository names before any network call.
var repoNamePattern = regexp.MustCompile(`^\w`)

type args struct {
	Repo    string `arg:"positional,required" help:"name of the homework repository"`
	Config  string `help:"path to the configuration file"`
	Target  string `help:"directory to clone submissions into (defaults to the repo name)"`
	Workers int    `help:"number of concurrent clones"`
	DryRun  bool   `arg:"--dry-run" help:"report what would be cloned without cloning"`
}

func main() {
	start := time.Now()

	parsed := args{
		Config:  envutil.GetenvDefault("HOMEWORK_CLONER_CONFIG", "./config.yaml"),
		Workers: 4,
	}
	parser := arg.MustParse(&parsed)

	if !repoNamePattern.MatchString(parsed.Repo) {
		parser.Fail(fmt.Sprintf("invalid repository name %q", parsed.Repo))
	}
	if parsed.Target == "" {
		parsed.Target = parsed.Repo
	}

	cfg := config.MustLoad(parsed.Config)

	fetcher, err := classroom.NewFetcher(classroom.FetcherOptions{
		HostName: cfg.HostName,
		Username: cfg.Username,
		Token:    cfg.GithubToken,
		OrgName:  cfg.OrgName,
	})
	if err != nil {
		log.Fatalln(err)
	}

	pulls, err := fetcher.OpenPullRequests(context.Background(), parsed.Repo)
	if err != nil {
		log.Fatalln(err)
	}

	roster := cfg.Roster()
	subs := classroom.FilterSubmissions(pulls, roster)

	authUser := cfg.Username
	if authUser == "" {
		authUser = "token" // basic-auth username must be non-empty, any value works
	}

	results := classroom.CloneSubmissions(subs, classroom.CloneOptions{
		TargetDir: parsed.Target,
		BaseURL:   fmt.Sprintf("https://%s", cfg.HostName),
		Auth: &githttp.BasicAuth{
			Username: authUser,
			Password: cfg.GithubToken,
		},
		Workers: parsed.Workers,
		DryRun:  parsed.DryRun,
	})

	if errs := classroom.FailedErrors(results); errs != nil {
		log.Printf("%d clone(s) failed:\n%v", errs.Len(), errs)
	}

	classroom.ReportMissing(os.Stdout, subs, roster)
	classroom.Summarize(os.Stdout, results, time.Since(start))
}
