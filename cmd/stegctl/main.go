// Command stegctl embeds and extracts encrypted payloads in PNG, BMP, and
// WAV carriers via LSB steganography, the command-line counterpart to the
// HTTP service defined at the module root. Grounded on the
// andresmejia3/hide CLI's Cobra + zerolog + progressbar stack, the pack's
// only other steganography command-line tool.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("stegctl failed")
		os.Exit(exitCodeFor(err))
	}
}
