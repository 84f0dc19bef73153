package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jroosing/apphelpers/internal/buildinfo"
	"github.com/jroosing/apphelpers/internal/climate"
	"github.com/jroosing/apphelpers/internal/helpers"
	"github.com/jroosing/apphelpers/internal/urlcodec"
	"github.com/spf13/cobra"
)

func newURLEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "urlencode <text>",
		Short: "Form-encode text (space to +, non-alphanumerics to %XX)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(urlcodec.Encode(args[0]))
			return nil
		},
	}
}

func newURLDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "urldecode <text>",
		Short: "Decode form-encoded text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := urlcodec.Decode(args[0])
			if err != nil {
				return err
			}
			cmd.Println(out)
			return nil
		},
	}
}

func newBuildDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builddate <\"Mmm dd yyyy\"> <hh:mm:ss>",
		Short: "Parse a compiler style build stamp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := buildinfo.ParseDateTime(args[0], args[1])
			if err != nil {
				return err
			}
			cmd.Printf("%s %s\n", dt.Time().Format(time.RFC3339), dt.Weekday())
			return nil
		},
	}
}

func parseFloatArg(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return v, nil
}

func newC2FCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "c2f <celsius>",
		Short: "Convert Celsius to Fahrenheit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseFloatArg("temperature", args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%.2f\n", climate.CelsiusToFahrenheit(c))
			return nil
		},
	}
}

func newF2CCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "f2c <fahrenheit>",
		Short: "Convert Fahrenheit to Celsius",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFloatArg("temperature", args[0])
			if err != nil {
				return err
			}
			cmd.Printf("%.2f\n", climate.FahrenheitToCelsius(f))
			return nil
		},
	}
}

func newDewpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dewpoint",
		Short: "Dewpoint in °C from relative humidity and temperature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rh, err := cmd.Flags().GetFloat64("rh")
			if err != nil {
				return fmt.Errorf("failed to get rh flag: %w", err)
			}
			temp, err := cmd.Flags().GetFloat64("temp")
			if err != nil {
				return fmt.Errorf("failed to get temp flag: %w", err)
			}
			dp, err := climate.Dewpoint(rh, temp)
			if err != nil {
				return err
			}
			cmd.Printf("%.2f\n", dp)
			return nil
		},
	}
	cmd.Flags().Float64("rh", 0, "relative humidity in percent")
	cmd.Flags().Float64("temp", 0, "temperature in °C")
	_ = cmd.MarkFlagRequired("rh")
	_ = cmd.MarkFlagRequired("temp")
	return cmd
}

func newAltitudeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "altitude",
		Short: "Altitude in metres from measured and sea level pressure (hPa)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cmd.Flags().GetFloat64("pressure")
			if err != nil {
				return fmt.Errorf("failed to get pressure flag: %w", err)
			}
			p0, err := cmd.Flags().GetFloat64("sea-level")
			if err != nil {
				return fmt.Errorf("failed to get sea-level flag: %w", err)
			}
			alt, err := climate.PressureAltitude(p, p0)
			if err != nil {
				return err
			}
			cmd.Printf("%.1f\n", alt)
			return nil
		},
	}
	cmd.Flags().Float64("pressure", 0, "measured pressure in hPa")
	cmd.Flags().Float64("sea-level", climate.StandardSeaLevelP, "sea level pressure in hPa")
	_ = cmd.MarkFlagRequired("pressure")
	return cmd
}

func newSeaLevelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sealevel",
		Short: "Reduce a measured pressure (hPa) to sea level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := cmd.Flags().GetFloat64("pressure")
			if err != nil {
				return fmt.Errorf("failed to get pressure flag: %w", err)
			}
			alt, err := cmd.Flags().GetFloat64("altitude")
			if err != nil {
				return fmt.Errorf("failed to get altitude flag: %w", err)
			}
			p0, err := climate.SeaLevelPressure(p, alt)
			if err != nil {
				return err
			}
			cmd.Printf("%.2f\n", p0)
			return nil
		},
	}
	cmd.Flags().Float64("pressure", 0, "measured pressure in hPa")
	cmd.Flags().Float64("altitude", 0, "altitude of the measurement in metres")
	_ = cmd.MarkFlagRequired("pressure")
	return cmd
}

func newSortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort <n>...",
		Short: "Bubble sort integers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := cmd.Flags().GetBool("desc")
			if err != nil {
				return fmt.Errorf("failed to get desc flag: %w", err)
			}
			buf := make([]int64, 0, len(args))
			for _, a := range args {
				v, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid integer %q: %w", a, err)
				}
				buf = append(buf, v)
			}
			if desc {
				helpers.SortBubbleDesc(buf, len(buf))
			} else {
				helpers.SortBubbleAsc(buf, len(buf))
			}
			out := make([]string, len(buf))
			for i, v := range buf {
				out[i] = strconv.FormatInt(v, 10)
			}
			cmd.Println(strings.Join(out, " "))
			return nil
		},
	}
	cmd.Flags().Bool("desc", false, "sort in descending order")
	return cmd
}

func newDigitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digits <n>",
		Short: "Count the decimal digits of an integer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer %q: %w", args[0], err)
			}
			cmd.Println(helpers.CalculateDigits(v))
			return nil
		},
	}
}
