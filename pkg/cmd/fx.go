package cmd

import (
	"github.com/osdevtools/efscript/pkg/executor"
	"go.uber.org/fx"
)

var Module = fx.Module("cli",
	fx.Provide(
		func() executor.Runner { return executor.New() },
		fx.Annotate(create, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(envs, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(script, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
