// cppdoc generates a static documentation site for a C++ project from an
// AST dump and hand-authored tutorial pages.
package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cppdoc/cmd/cppdoc/commands"
	"git.home.luguber.info/inful/cppdoc/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("cppdoc"),
		kong.Description("C++ documentation site generator"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli)
	ctx.FatalIfErrorf(err)
}
