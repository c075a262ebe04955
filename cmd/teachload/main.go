package main

import (
	"github.com/function61/gokit/app/aws/lambdautils"
	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlcli"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlexperiment"
)

func main() {
	if lambdautils.InLambda() {
		osutil.ExitIfError(tlexperiment.LambdaEntrypoint())
		return
	}

	osutil.ExitIfError(tlcli.Entrypoint().Execute())
}
