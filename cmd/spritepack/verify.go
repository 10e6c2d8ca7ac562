package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woozymasta/spritepack"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file.pspr>",
	Short: "Decompress a container and check its integrity",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	sprite, err := spritepack.ReadContainerFile(args[0])
	if err != nil {
		return err
	}

	zr := sprite.ZoomRange()
	fmt.Printf("%s: ok, %dx%d, zoom %s..%s, %s unpacked\n",
		args[0], sprite.Width(), sprite.Height(), zr.Min, zr.Max,
		formatBytes(int64(sprite.Size())))

	return nil
}
