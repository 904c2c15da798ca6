package slider

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"coldcalc/internal/config"
	"coldcalc/internal/format"
	"coldcalc/internal/slider"
)

// NewSliderCmd creates the slider command
func NewSliderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slider",
		Short: "Convert between slider positions and email volumes",
		Long: `Convert between a 0-100 slider position and a monthly email volume.

The scale is piecewise linear so that low volumes get finer control:
  0-50   covers 0 to 10,000 emails
  50-80  covers 10,000 to 100,000 emails
  80-100 covers 100,000 to 500,000 emails`,
	}

	cmd.AddCommand(newToVolumeCmd())
	cmd.AddCommand(newToPositionCmd())

	return cmd
}

func newToVolumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-volume POSITION",
		Short: "Print the email volume for a slider position",
		Example: `  # Volume at the middle of the third quarter
  coldcalc slider to-volume 65`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseNumber("position", args[0])
			if err != nil {
				return err
			}
			fm := format.New(config.Config.Locale)
			fmt.Fprintf(cmd.OutOrStdout(), "%s emails/mo\n", fm.Count(slider.Default.ToVolumeRounded(p)))
			return nil
		},
	}
}

func newToPositionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "to-position VOLUME",
		Short: "Print the slider position for an email volume",
		Example: `  # Where 55,000 emails sits on the slider
  coldcalc slider to-position 55000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseNumber("volume", args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", strconv.FormatFloat(slider.Default.ToPosition(v), 'f', 2, 64))
			return nil
		},
	}
}

func parseNumber(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, s)
	}
	return v, nil
}
