package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/younsl/rightsizer/pkg/aws"
	"github.com/younsl/rightsizer/pkg/config"
	"github.com/younsl/rightsizer/pkg/logging"
	"github.com/younsl/rightsizer/pkg/summarize"
)

func main() {
	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(logging.VerbosityForLevel(cfg.LogLevel)).WithName("lambda")

	awsCfg, err := aws.LoadConfig(context.Background(), cfg.Region)
	if err != nil {
		log.Error(err, "failed to load AWS config")
		os.Exit(1)
	}

	var summarizer summarize.Summarizer
	if cfg.Summarizer != nil {
		summarizer = summarize.NewTogetherClient(*cfg.Summarizer, log).WithPrompt(summarize.NotesPrompt)
	}

	h := newHandler(aws.NewS3ClientFromConfig(awsCfg, ""), summarizer, log)
	lambda.Start(h.Handle)
}
