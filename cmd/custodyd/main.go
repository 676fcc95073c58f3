package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodylabs/custody"
	"github.com/custodylabs/custody/cmd/custodyd/app"
	"github.com/custodylabs/custody/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".custody")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("custodyd")
	fmt.Println("        Vault and escrow custody node")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Initialize app state in genesis file")
	fmt.Println("        [native ticker] [funded address]")
	fmt.Println("start   Run the abci server")
	fmt.Println("        -bind -metrics_bind -log_level -debug override " + server.ConfigFile)
	fmt.Println("version Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.custody")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "custody")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "version":
		fmt.Println(custody.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
