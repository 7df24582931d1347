package main

import (
	"github.com/spf13/cobra"

	"github.com/rfani/stegolock/models"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stegctl",
		Short:         "Embed and extract encrypted payloads in image and audio carriers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	return root
}

// exitCodeFor maps a models.Error's Kind to the exit codes recommended for
// the CLI surface: 0 success, 2 input validation, 3 capacity exceeded, 4
// decrypt/auth failure, 5 I/O error.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	perr, ok := err.(*models.Error)
	if !ok {
		return 5
	}
	switch perr.Kind {
	case models.KindUnsupportedFormat, models.KindDepthPolicy, models.KindCarrierCorrupt:
		return 2
	case models.KindCapacityExceeded:
		return 3
	case models.KindDecryptFailure, models.KindNoHiddenData:
		return 4
	default:
		return 5
	}
}
