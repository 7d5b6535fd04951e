package main

import (
	"os"

	"github.com/astaxie/beego/logs"

	"github.com/syncopasoft/webserver/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:], os.Stdout); err != nil {
		logs.Critical("%v", err)
		logs.GetBeeLogger().Flush()
		os.Exit(1)
	}
}
