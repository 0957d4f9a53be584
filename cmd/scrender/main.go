package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "scrender"
	app.Usage = "GRP sprite and tileset table utility"
	app.Version = "1.0.0"

	app.Commands = []*cli.Command{
		{
			Name:  "grp",
			Usage: "Inspect and convert GRP sprite containers",
			Subcommands: []*cli.Command{
				{
					Name:      "info",
					Usage:     "Print container and frame dimensions",
					ArgsUsage: "FILE",
					Action:    grpInfo,
				},
				{
					Name:      "export",
					Usage:     "Decode every frame to PNG through a palette",
					ArgsUsage: "FILE",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "palette", Aliases: []string{"p"}, Usage: "palette file (wpe)", Required: true},
						&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: "output directory"},
						&cli.IntFlag{Name: "scale", Value: 1, Usage: "integer upscale factor"},
					},
					Action: grpExport,
				},
				{
					Name:      "build",
					Usage:     "Encode paletted PNG frames into a GRP container",
					ArgsUsage: "PNG [PNG...]",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "out.grp", Usage: "output file"},
					},
					Action: grpBuild,
				},
			},
		},
		{
			Name:  "tileset",
			Usage: "Build and preview tileset tables",
			Subcommands: []*cli.Command{
				{
					Name:      "import",
					Usage:     "Quantize a PNG into vr4/vx4/wpe tables plus a map grid",
					ArgsUsage: "PNG",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "imported", Usage: "output base name"},
					},
					Action: tilesetImport,
				},
				{
					Name:      "export",
					Usage:     "Render a megatile contact sheet to PNG",
					ArgsUsage: "BASENAME",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "tiles.png", Usage: "output file"},
						&cli.IntFlag{Name: "scale", Value: 1, Usage: "integer upscale factor"},
					},
					Action: tilesetExport,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func requireArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		cli.ShowSubcommandHelpAndExit(c, 1)
	}
	return c.Args().First(), nil
}

func exit(err error) error {
	return cli.Exit(fmt.Sprintf("scrender: %v", err), 1)
}
