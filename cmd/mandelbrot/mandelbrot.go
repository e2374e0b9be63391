package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelbrot/pkg/band"
	"github.com/willbeason/mandelbrot/pkg/imagefile"
	"github.com/willbeason/mandelbrot/pkg/parse"
	"github.com/willbeason/mandelbrot/pkg/plane"
	"github.com/willbeason/mandelbrot/pkg/render"
	"github.com/willbeason/mandelbrot/pkg/transforms"
	"log/slog"
	"os"
)

const (
	workersFlag = "workers"
	limitFlag   = "limit"
	shadeFlag   = "shade"
	juliaFlag   = "julia"
	verboseFlag = "verbose"
)

var (
	errShade = errors.New("unknown shade")
	errLimit = errors.New("iteration limit must be positive")
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mandelbrot <output-file> <WIDTHxHEIGHT> <UPPER_LEFT_RE,UPPER_LEFT_IM> <LOWER_RIGHT_RE,LOWER_RIGHT_IM>",
		Short: "Render the Mandelbrot set as a grayscale image",
		Example: "  mandelbrot mandel.png 1000x750 -1.20,0.35 -1,0.20\n" +
			"  mandelbrot --julia -0.8,0.156 julia.tiff 1920x1080 -1.6,0.9 1.6,-0.9",
		Args:              cobra.ExactArgs(4),
		PersistentPreRunE: setupLogging,
		RunE:              runCmd,
	}

	cmd.PersistentFlags().IntP(workersFlag, "w", band.DefaultWorkers, "number of bands rendered in parallel")
	cmd.PersistentFlags().Int(limitFlag, render.DefaultLimit, "maximum iterations per pixel")
	cmd.PersistentFlags().String(shadeFlag, "inverse", "gray mapping of escape times: inverse or linear")
	cmd.PersistentFlags().String(juliaFlag, "", "render the Julia set for constant RE,IM instead")
	cmd.PersistentFlags().BoolP(verboseFlag, "v", false, "log each band")

	// Corners such as -1,1 look like shorthand flags; stop parsing flags at
	// the output file so they stay positional.
	cmd.Flags().SetInterspersed(false)

	cmd.AddCommand(serveCmd())

	return cmd
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool(verboseFlag)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	render.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// renderOptions reads the flags shared by all commands.
func renderOptions(cmd *cobra.Command) (render.Options, int, error) {
	flags := cmd.Flags()

	workers, err := flags.GetInt(workersFlag)
	if err != nil {
		return render.Options{}, 0, err
	}
	if workers < 1 {
		return render.Options{}, 0, fmt.Errorf("%w: got %d", band.ErrWorkers, workers)
	}

	limit, err := flags.GetInt(limitFlag)
	if err != nil {
		return render.Options{}, 0, err
	}
	if limit < 1 {
		return render.Options{}, 0, fmt.Errorf("%w: got %d", errLimit, limit)
	}
	opts := render.Options{Limit: limit}

	shade, err := flags.GetString(shadeFlag)
	if err != nil {
		return render.Options{}, 0, err
	}
	switch shade {
	case "inverse":
		opts.Shader = render.Inverse
	case "linear":
		opts.Shader = render.Linear(limit)
	default:
		return render.Options{}, 0, fmt.Errorf("%w %q", errShade, shade)
	}

	julia, err := flags.GetString(juliaFlag)
	if err != nil {
		return render.Options{}, 0, err
	}
	if julia != "" {
		c, err := parse.Complex(julia)
		if err != nil {
			return render.Options{}, 0, err
		}
		opts.Fractal = transforms.Julia2{C: c}
	}

	return opts, workers, nil
}

// parseRegion reads the image size and plane corners.
func parseRegion(bounds, upperLeft, lowerRight string) (plane.Bounds, plane.Rect, error) {
	b, err := parse.Bounds(bounds)
	if err != nil {
		return plane.Bounds{}, plane.Rect{}, err
	}

	ul, err := parse.Complex(upperLeft)
	if err != nil {
		return plane.Bounds{}, plane.Rect{}, err
	}

	lr, err := parse.Complex(lowerRight)
	if err != nil {
		return plane.Bounds{}, plane.Rect{}, err
	}

	r := plane.Rect{UpperLeft: ul, LowerRight: lr}
	if err := r.Validate(); err != nil {
		return plane.Bounds{}, plane.Rect{}, err
	}

	return b, r, nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	b, r, err := parseRegion(args[1], args[2], args[3])
	if err != nil {
		return err
	}
	opts, workers, err := renderOptions(cmd)
	if err != nil {
		return err
	}

	// Arguments are valid; later failures aren't usage errors.
	cmd.SilenceUsage = true

	pixels, err := render.Image(b, r, workers, opts)
	if err != nil {
		return err
	}

	err = imagefile.WriteFile(args[0], pixels, b.Width, b.Height)
	if err != nil {
		return err
	}

	render.Logger().Info("wrote image", "path", args[0])
	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
