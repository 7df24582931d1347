package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rfani/stegolock/models"
	"github.com/rfani/stegolock/service"
	"github.com/rfani/stegolock/validate"
)

type decodeFlags struct {
	in       string
	out      string
	password string
	depth    int
	platform string
	expert   bool
}

func newDecodeCmd() *cobra.Command {
	f := &decodeFlags{}
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Extract and decrypt a payload from a stego carrier",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(f)
		},
	}

	cmd.Flags().StringVar(&f.in, "in", "", "path to the stego carrier file")
	cmd.Flags().StringVar(&f.out, "out", "", "path to write the recovered payload to")
	cmd.Flags().StringVar(&f.password, "password", "", "decryption password (falls back to STEGCTL_PASSWORD, then a terminal prompt)")
	cmd.Flags().IntVar(&f.depth, "depth", 1, "LSB depth, 1-4")
	cmd.Flags().StringVar(&f.platform, "platform", "desktop", "desktop or mobile")
	cmd.Flags().BoolVar(&f.expert, "expert", false, "allow LSB depths above 1")

	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}

func runDecode(f *decodeFlags) error {
	stegoData, err := os.ReadFile(f.in)
	if err != nil {
		return err
	}

	kind, err := validate.SniffCarrierKind(stegoData)
	if err != nil {
		return err
	}

	password, err := resolvePassword(f.password)
	if err != nil {
		return err
	}

	platform := models.PlatformDesktop
	if f.platform == "mobile" {
		platform = models.PlatformMobile
	}

	bar := progressbar.NewOptions(2,
		progressbar.OptionSetDescription("decoding"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	svc := service.NewStegoService(service.NewCryptographyService(), service.NewAudioService())

	bar.Describe("extracting and decrypting")
	bar.Add(1)
	decoded, err := svc.Decode(stegoData, kind, password, models.DecodeOptions{
		LSBDepth: f.depth,
		Platform: platform,
		Expert:   f.expert,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(f.out, decoded.Bytes, 0o644); err != nil {
		return err
	}
	bar.Add(1)

	log.Info().Str("out", f.out).Str("kind", string(decoded.Kind)).Msg("recovered payload")
	return nil
}
