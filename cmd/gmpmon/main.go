package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/agbru/gmpmon/internal/app"
	apperrors "github.com/agbru/gmpmon/internal/errors"
)

func main() {
	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(apperrors.ExitSuccess)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
