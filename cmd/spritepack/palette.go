package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/spf13/cobra"
)

var paletteOutput string

var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Derive a palette file from artwork",
	Long: `Quantizes an image down to 255 representative colours and writes them
as a 768-byte palette file for pack --palette. Index zero stays black,
matching its reserved role.`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().StringVarP(&paletteOutput, "output", "o", "palette.pal", "output file")
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(_ *cobra.Command, args []string) error {
	img, err := decodeImage(args[0])
	if err != nil {
		return err
	}

	q := quantize.MedianCutQuantizer{}
	colours := q.Quantize(make(color.Palette, 0, 255), img)
	logVerbose("quantized to %d colours", len(colours))

	data := make([]byte, 768)
	for i, c := range colours {
		r, g, b, _ := c.RGBA()
		// Channels come back 16 bit wide.
		data[(i+1)*3] = uint8(r >> 8)   // #nosec G115
		data[(i+1)*3+1] = uint8(g >> 8) // #nosec G115
		data[(i+1)*3+2] = uint8(b >> 8) // #nosec G115
	}

	if err := os.WriteFile(paletteOutput, data, 0o600); err != nil {
		return fmt.Errorf("write palette %s: %w", paletteOutput, err)
	}

	fmt.Printf("%s: %d colours\n", paletteOutput, len(colours))

	return nil
}
