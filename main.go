package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"gopkg.in/yaml.v3"

	"github.com/mattn/prettier-langserver/core"
	"github.com/mattn/prettier-langserver/lsp"
	"github.com/mattn/prettier-langserver/types"
)

const (
	name    = "prettier-langserver"
	version = "0.1.0"
)

var revision = "HEAD"

func main() {
	var yamlfile string
	var logfile string
	var dump bool
	var showVersion bool
	flag.StringVar(&yamlfile, "c", "", "path to server config.yaml")
	flag.StringVar(&logfile, "log", "", "path to log file")
	flag.BoolVar(&dump, "d", false, "dump the effective server configuration and exit")
	flag.BoolVar(&showVersion, "v", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("%s %s (rev: %s)\n", name, version, revision)
		return
	}

	config := &types.ServerConfig{}
	if yamlfile != "" {
		loaded, err := core.LoadServerConfig(yamlfile)
		if err != nil {
			log.Fatalf("cannot load %v: %v", yamlfile, err)
		}
		config = loaded
	}

	if dump {
		if err := yaml.NewEncoder(os.Stdout).Encode(config); err != nil {
			log.Fatal(err)
		}
		return
	}

	if logfile == "" {
		logfile = config.LogFile
	}
	config.LogWriter = os.Stderr
	if logfile != "" {
		f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("cannot open log file %v: %v", logfile, err)
		}
		defer f.Close()
		config.LogWriter = f
	}
	logger := log.New(config.LogWriter, "", log.LstdFlags)

	logger.Printf("%s %s starting", name, version)
	if err := run(logger, config); err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger, config *types.ServerConfig) error {
	langHandler := core.NewHandler(logger, config)
	handler := lsp.NewHandler(langHandler, logger)

	var connOpt []jsonrpc2.ConnOpt
	conn := jsonrpc2.NewConn(
		context.Background(),
		jsonrpc2.NewBufferedStream(stdrwc{}, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(handler.Handle),
		connOpt...)

	<-conn.DisconnectNotify()
	logger.Println("connection closed")
	return nil
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
