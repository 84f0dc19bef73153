package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jroosing/apphelpers/internal/helpers"
	"github.com/jroosing/apphelpers/internal/timefmt"
	"github.com/jroosing/apphelpers/internal/uptime"
	"github.com/spf13/cobra"
)

func parseSeconds(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds %q: %w", s, err)
	}
	return v, nil
}

func newClockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clock <seconds>",
		Short: "Render seconds as HH:MM:SS (hours modulo 24)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secs, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			cmd.Println(timefmt.FormatClock(secs))
			return nil
		},
	}
}

func newPeriodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period <seconds>",
		Short: "Render seconds as a period like 3d 8h 17m 5s",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dense, err := cmd.Flags().GetBool("dense")
			if err != nil {
				return fmt.Errorf("failed to get dense flag: %w", err)
			}
			secs, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			if dense {
				cmd.Println(timefmt.FormatPeriodDense(secs))
			} else {
				cmd.Println(timefmt.FormatPeriod(secs))
			}
			return nil
		},
	}
	cmd.Flags().Bool("dense", false, "omit the spaces between units")
	return cmd
}

func newDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "date <epoch-seconds>",
		Short: "Render a 32-bit Unix timestamp as DD.MM.YYYY HH:MM:SS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid epoch %q: %w", args[0], err)
			}
			cmd.Println(timefmt.FormatEpochDate(uint32(v)))
			return nil
		},
	}
}

func newUptimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uptime",
		Short: "Sample a tick source and print the accumulated uptime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := cmd.Flags().GetString("source")
			if err != nil {
				return fmt.Errorf("failed to get source flag: %w", err)
			}
			offset, err := cmd.Flags().GetInt("offset-ms")
			if err != nil {
				return fmt.Errorf("failed to get offset-ms flag: %w", err)
			}
			samples, err := cmd.Flags().GetInt("samples")
			if err != nil {
				return fmt.Errorf("failed to get samples flag: %w", err)
			}
			interval, err := cmd.Flags().GetDuration("interval")
			if err != nil {
				return fmt.Errorf("failed to get interval flag: %w", err)
			}

			log := newLogger(cmd)
			clock := clockwork.NewRealClock()
			src, err := uptime.NewSource(source, helpers.ClampIntToUint32(offset), clock)
			if err != nil {
				return err
			}
			acc := uptime.NewAccumulator(uptime.State{})
			sampler, err := uptime.NewSampler(log, &uptime.SamplerConfig{
				Clock:       clock,
				Source:      src,
				Accumulator: acc,
				Interval:    max(interval, time.Millisecond),
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			var last uptime.Sample
			for i := range max(samples, 1) {
				if i > 0 {
					if err := helpers.Wait(ctx, clock, interval); err != nil {
						return err
					}
				}
				last, err = sampler.SampleOnce(ctx)
				if err != nil {
					return err
				}
				log.Debug("sample", "raw_tick_ms", last.RawTickMs, "total_seconds", last.TotalSeconds, "wrapped", last.Wrapped)
			}

			cmd.Printf("%s (%s, %d s, source=%s)\n",
				timefmt.FormatPeriod(last.TotalSeconds),
				timefmt.FormatClock(last.TotalSeconds),
				last.TotalSeconds,
				source,
			)
			return nil
		},
	}
	cmd.Flags().String("source", uptime.SourceMonotonic, "tick source: monotonic, host or process")
	cmd.Flags().Int("offset-ms", 0, "add a fixed offset to every raw tick (modulo 2^32)")
	cmd.Flags().Int("samples", 1, "number of samples to take")
	cmd.Flags().Duration("interval", time.Second, "delay between samples")
	return cmd
}
