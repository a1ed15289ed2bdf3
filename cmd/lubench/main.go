// SPDX-License-Identifier: MIT

// Command lubench times the LUP factorizer on Matrix Market files and checks
// its solutions against a reference solver.
//
//	lubench run --dir practicum/homework --runs 5 --workers 4
//	lubench solve matrices/west0067.mtx
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lubench"
	app.Usage = "benchmark dense LU factorization with partial pivoting"
	app.Flags = runFlags
	app.Action = runAction
	app.Commands = []cli.Command{
		RunCommand,
		SolveCommand,
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
