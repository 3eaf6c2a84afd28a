// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"coquito/internal/config"
	"coquito/internal/lsp"
)

const lsName = "coquito" // Name identifier for the language server

var version = "0.1.0"

var log = commonlog.GetLogger("coquito.lsp")

func main() {
	flags := pflag.NewFlagSet(lsName+"-lsp", pflag.ContinueOnError)
	config.BindFlags(flags)
	verbosity := flags.CountP("verbose", "v", "increase log verbosity")
	logFile := flags.String("log-file", "", "write logs to this file instead of stderr")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	// stdout carries the protocol, so logs go to stderr or a file
	var logPath *string
	if *logFile != "" {
		logPath = logFile
	}
	commonlog.Configure(1+*verbosity, logPath)

	cfgFile, _ := flags.GetString("config")
	cfg, err := config.Load(cfgFile, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// editing sessions have no deadline; only the nesting and token limits apply
	handler := lsp.NewHandler(lsName, version, cfg.ParserOptions(context.Background())...)

	s := server.NewServer(handler.Protocol(), lsName, false)

	log.Noticef("starting %s language server %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
