package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woozymasta/spritepack"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.pspr>",
	Short: "Display the layout of a packed sprite container",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, args []string) error {
	info, err := spritepack.ReadContainerInfoFile(args[0])
	if err != nil {
		return err
	}

	printInfo(args[0], info)

	return nil
}

func printInfo(path string, info *spritepack.ContainerInfo) {
	fmt.Println()
	fmt.Printf("  File:    %s\n", path)
	fmt.Printf("  Size:    %dx%d\n", info.Width, info.Height)
	fmt.Printf("  Offset:  %+d%+d\n", info.XOffset, info.YOffset)
	fmt.Printf("  Flags:   %s\n", info.Flags)
	fmt.Printf("  Zoom:    %s..%s\n", info.Zoom.Min, info.Zoom.Max)
	fmt.Println()

	for z := spritepack.ZoomMin; z <= spritepack.ZoomMax; z++ {
		if !info.Zoom.Contains(z) {
			continue
		}
		lv := info.Levels[z]
		fmt.Printf("  %-8s %5dx%-5d stride %-6d %s\n",
			z, lv.Width, lv.Height(), lv.RowStride,
			formatBytes(int64(lv.PayloadSize())))
	}
	fmt.Println()

	var total int64
	for i, blk := range info.Blocks {
		fmt.Printf("  block %d: %s %s\n", i, blk.Magic, formatBytes(int64(blk.Size)))
		total += int64(blk.Size)
	}
	fmt.Printf("  total:   %s on disk\n", formatBytes(total))
	fmt.Println()
}
