package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/mrled/humantime/internal/lambdahandlers/httpapi"
	"github.com/mrled/humantime/internal/lambdahandlers/streamer"
	"github.com/mrled/humantime/internal/logger"
)

const defaultHandler = "httpapi"

// starters build a handler and return the function lambda.Start receives
var starters = map[string]func() (any, error){
	"httpapi": func() (any, error) {
		h, err := httpapi.NewHandler()
		if err != nil {
			return nil, err
		}
		return h.Handle, nil
	},
	"streamer": func() (any, error) {
		h, err := streamer.NewHandler()
		if err != nil {
			return nil, err
		}
		return h.Handle, nil
	},
}

func main() {
	log := logger.WithExecutable(logger.NewDefaultLogger(), "lambda")
	logger.SetDefault(log)

	name := os.Getenv("LAMBDA_HANDLER")
	if name == "" {
		name = defaultHandler
	}

	start, ok := starters[name]
	if !ok {
		valid := make([]string, 0, len(starters))
		for k := range starters {
			valid = append(valid, k)
		}
		sort.Strings(valid)
		log.Error("Invalid LAMBDA_HANDLER value", slog.String("handler", name))
		fmt.Fprintf(os.Stderr, "Error: invalid LAMBDA_HANDLER %q (valid: %s)\n", name, strings.Join(valid, ", "))
		os.Exit(1)
	}

	handler, err := start()
	if err != nil {
		log.Error("Failed to initialize handler", slog.String("handler", name), slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("Starting Lambda handler", slog.String("handler", name))
	lambda.Start(handler)
}
