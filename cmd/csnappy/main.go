// Command csnappy compresses and decompresses files using the
// page-indexed block container format, with a choice of codec for the
// page payloads. It takes the place of block_compressor.c's
// -c {lzo|snappy|zlib} [-d] ifile ofile interface, the driver this
// command is ported from, as a kong-parsed subcommand pair instead of
// getopt; the codec choices are snappy, lz4 (in the LZO slot) and zlib.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"

	"github.com/calmh/csnappy/internal/container"
	"github.com/calmh/csnappy/internal/logger"
)

var cli struct {
	Compress   compressCmd   `cmd:"" help:"Compress a file into a page container."`
	Decompress decompressCmd `cmd:"" help:"Decompress a page container."`
}

type compressCmd struct {
	Codec string `help:"Codec for page payloads." enum:"snappy,lz4,zlib" default:"snappy" short:"c"`
	In    string `arg:"" type:"existingfile" help:"Input file."`
	Out   string `arg:"" type:"path" help:"Output file."`
}

type decompressCmd struct {
	Codec     string `help:"Codec the container's pages were compressed with." enum:"snappy,lz4,zlib" default:"snappy" short:"c"`
	CacheSize int    `help:"Number of decompressed pages to keep cached." default:"32"`
	In        string `arg:"" type:"existingfile" help:"Input file."`
	Out       string `arg:"" type:"path" help:"Output file."`
}

func (c *compressCmd) Run(log *logger.Logger) error {
	codec, err := container.Lookup(c.Codec)
	if err != nil {
		return errors.Wrap(err, "compress")
	}
	in, err := os.Open(c.In)
	if err != nil {
		return errors.Wrap(err, "compress")
	}
	defer in.Close()
	out, err := os.Create(c.Out)
	if err != nil {
		return errors.Wrap(err, "compress")
	}
	defer out.Close()

	log.Infof("compressing %s with %s", c.In, c.Codec)
	if err := container.Compress(out, in, codec, log); err != nil {
		return errors.Wrap(err, "compress")
	}
	return nil
}

func (c *decompressCmd) Run(log *logger.Logger) error {
	codec, err := container.Lookup(c.Codec)
	if err != nil {
		return errors.Wrap(err, "decompress")
	}
	in, err := os.Open(c.In)
	if err != nil {
		return errors.Wrap(err, "decompress")
	}
	defer in.Close()
	out, err := os.Create(c.Out)
	if err != nil {
		return errors.Wrap(err, "decompress")
	}
	defer out.Close()

	log.Infof("decompressing %s with %s", c.In, c.Codec)
	if err := container.Decompress(out, in, codec, c.CacheSize, log); err != nil {
		return errors.Wrap(err, "decompress")
	}
	return nil
}

func main() {
	log := logger.New()
	log.SetFlags(0)
	ctx := kong.Parse(&cli,
		kong.Name("csnappy"),
		kong.Description("Page-indexed block compressor."),
		kong.Bind(log),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
