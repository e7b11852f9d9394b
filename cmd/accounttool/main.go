package main

import (
	"github.com/nimbusworks/nimbus/internal/accounttool"
	"github.com/nimbusworks/nimbus/internal/common/logtrace"
)

func init() {
	logtrace.InitConsoleLogger()
}

func main() {
	accounttool.Execute()
}
