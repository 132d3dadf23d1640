// Command coinsphere tracks a crypto portfolio with exact decimal arithmetic.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/coinsphere/coinsphere/cmd"
	"github.com/coinsphere/coinsphere/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	completion().Complete("coinsphere")

	flag.Parse()
	cmd.LoadEnv()

	if name := flag.Arg(0); name != "" && !cmd.IsCommand(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"portfolio-file": predict.Files("*"),
			"env-file":       predict.Files("*"),
			"currency":       predict.Something,
		},
	}
	for _, names := range cmd.Commands() {
		for _, name := range names {
			root.Sub[name] = &complete.Command{}
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{Args: predict.Set(commandNames())}
	}
	root.Sub["calc"].Args = predict.Set{"add", "sub", "mul", "div", "pct", "wavg", "round", "sum", "max", "min"}
	topics, _ := docs.GetAllTopics()
	root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	root.Sub["topic"].Flags = map[string]complete.Predictor{"l": predict.Nothing, "raw": predict.Nothing}
	root.Sub["calc"].Flags = map[string]complete.Predictor{"r": predict.Something}
	root.Sub["prices"].Flags = map[string]complete.Predictor{"c": predict.Something, "redis": predict.Something, "cache-dir": predict.Dirs("*")}
	for _, name := range []string{"value", "allocation", "performance"} {
		root.Sub[name].Flags = map[string]complete.Predictor{"json": predict.Nothing, "u": predict.Nothing, "redis": predict.Something, "cache-dir": predict.Dirs("*")}
	}
	root.Sub["performance"].Flags["top"] = predict.Something
	root.Sub["history"].Flags = map[string]complete.Predictor{"json": predict.Nothing, "s": predict.Something}
	tx := map[string]complete.Predictor{"s": predict.Something, "a": predict.Something, "p": predict.Something, "fee": predict.Something, "notes": predict.Something}
	root.Sub["sell"].Flags = tx
	root.Sub["add"].Flags = map[string]complete.Predictor{"n": predict.Something, "source": predict.Something, "source-id": predict.Something}
	for k, v := range tx {
		root.Sub["add"].Flags[k] = v
	}
	return root
}

func commandNames() []string {
	var names []string
	for _, group := range cmd.Commands() {
		names = append(names, group...)
	}
	return names
}
