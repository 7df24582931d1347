package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rfani/stegolock/models"
	"github.com/rfani/stegolock/service"
	"github.com/rfani/stegolock/validate"
)

type encodeFlags struct {
	in           string
	text         string
	file         string
	out          string
	password     string
	depth        int
	highSecurity bool
	noCompress   bool
	platform     string
	expert       bool
}

func newEncodeCmd() *cobra.Command {
	f := &encodeFlags{}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Embed an encrypted payload into a carrier",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(f)
		},
	}

	cmd.Flags().StringVar(&f.in, "in", "", "path to the carrier file (PNG, BMP, or WAV)")
	cmd.Flags().StringVar(&f.text, "text", "", "secret text to embed")
	cmd.Flags().StringVar(&f.file, "file", "", "path to a secret file to embed")
	cmd.Flags().StringVar(&f.out, "out", "", "path to write the stego carrier to")
	cmd.Flags().StringVar(&f.password, "password", "", "encryption password (falls back to STEGCTL_PASSWORD, then a terminal prompt)")
	cmd.Flags().IntVar(&f.depth, "depth", 1, "LSB depth, 1-4")
	cmd.Flags().BoolVar(&f.highSecurity, "high-security", false, "use a higher PBKDF2 iteration count")
	cmd.Flags().BoolVar(&f.noCompress, "no-compress", false, "disable gzip compression of the payload before encryption")
	cmd.Flags().StringVar(&f.platform, "platform", "desktop", "desktop or mobile")
	cmd.Flags().BoolVar(&f.expert, "expert", false, "allow LSB depths above 1")

	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")
	cmd.MarkFlagsOneRequired("text", "file")

	return cmd
}

func runEncode(f *encodeFlags) error {
	if f.in == "" || f.out == "" {
		return models.NewUnsupportedFormatError("--in and --out are required")
	}

	carrierData, err := os.ReadFile(f.in)
	if err != nil {
		return err
	}

	kind, err := validate.SniffCarrierKind(carrierData)
	if err != nil {
		return err
	}

	payload, err := loadPayload(f.text, f.file)
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

	bar := progressbar.NewOptions(3,
		progressbar.OptionSetDescription("encoding"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)

	svc := service.NewStegoService(service.NewCryptographyService(), service.NewAudioService())

	bar.Describe("deriving key and embedding")
	bar.Add(1)
	result, err := svc.Encode(carrierData, kind, *payload, password, models.EncodeOptions{
		LSBDepth:     f.depth,
		HighSecurity: f.highSecurity,
		Compress:     !f.noCompress,
		Platform:     platform,
		Expert:       f.expert,
	})
	if err != nil {
		return err
	}
	bar.Add(1)

	if err := os.WriteFile(f.out, result.StegoBytes, 0o644); err != nil {
		return err
	}
	bar.Add(1)

	log.Info().Str("out", f.out).Float64("psnr_db", result.PSNR).Msg("embedded payload")
	for _, w := range result.Warnings {
		log.Warn().Msg(w)
	}
	return nil
}

func loadPayload(text, file string) (*models.Payload, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return &models.Payload{
			Kind:  models.PayloadFile,
			Bytes: data,
			Name:  filepath.Base(file),
		}, nil
	}
	return &models.Payload{Kind: models.PayloadText, Bytes: []byte(text)}, nil
}
