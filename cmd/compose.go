package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kozaktomas/huetone/internal/client"
	"github.com/kozaktomas/huetone/internal/imaging"
)

var composeCmd = &cobra.Command{
	Use:   "compose <image-file>",
	Short: "Request an AI styled composite for a local photo",
	Long: `Send a local photo to a running relay's compose endpoint and save the
styled composite. Which provider produces the image depends on the relay's
COMPOSE_PROVIDER setting.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)

	composeCmd.Flags().String("color-type", "", "Personal color season (spring, summer, autumn, winter)")
	composeCmd.Flags().String("color-name", "", "Display name of the selected color palette")
	composeCmd.Flags().String("example-url", "", "Example styling image URL (required by the faceswap provider)")
	composeCmd.Flags().String("output", "", "Output file path (default: derived from the color name)")
}

func runCompose(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image file: %w", err)
	}

	img, err := imaging.NormalizeBytes(data)
	if err != nil {
		return fmt.Errorf("normalizing image: %w", err)
	}

	c, err := client.New(serverURL)
	if err != nil {
		return err
	}

	colorType := mustGetString(cmd, "color-type")
	colorName := mustGetString(cmd, "color-name")

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Composing"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)
	ticker := time.NewTicker(100 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				bar.Add(1)
			case <-done:
				return
			}
		}
	}()

	source, err := c.Compose(context.Background(), client.ComposeRequest{
		UserImage:       img.DataURI,
		ColorType:       colorType,
		ColorName:       colorName,
		ExampleImageURL: mustGetString(cmd, "example-url"),
	})
	ticker.Stop()
	close(done)
	bar.Finish()
	fmt.Println()
	if err != nil {
		return err
	}

	if !imaging.IsDataURI(source) {
		fmt.Printf("Styled composite: %s\n", source)
		return nil
	}

	outPath := mustGetString(cmd, "output")
	if outPath == "" {
		name := colorName
		if name == "" {
			name = colorType
		}
		outPath = fmt.Sprintf("huetone-%s.png", slugify(name))
	}

	payload, _, err := imaging.DecodeDataURI(source)
	if err != nil {
		return fmt.Errorf("decoding composite: %w", err)
	}
	if err := os.WriteFile(outPath, payload, 0600); err != nil {
		return fmt.Errorf("saving composite: %w", err)
	}
	fmt.Printf("Styled composite saved to %s\n", outPath)
	return nil
}

// slugify turns a color name into a safe filename fragment. Color names from
// the workflow may carry diacritics or punctuation.
func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)
	s = strings.ToLower(s)

	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "composite"
	}
	return slug
}
