package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/spf13/cobra"
	"github.com/willbeason/mandelbrot/pkg/imagefile"
	"github.com/willbeason/mandelbrot/pkg/render"
	"net/http"
	"os"
	"os/signal"
	"time"
)

const (
	addrFlag      = "addr"
	maxPixelsFlag = "max-pixels"
)

var errTooLarge = errors.New("image too large")

// renderRequest asks for one image, with fields in the command line syntax.
type renderRequest struct {
	Bounds     string `json:"bounds"`
	UpperLeft  string `json:"upper_left"`
	LowerRight string `json:"lower_right"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render images requested over a websocket",
		Long: "Serve accepts websocket connections on /ws. Each JSON request\n" +
			`{"bounds":"WxH","upper_left":"RE,IM","lower_right":"RE,IM"}` + "\n" +
			"is answered with a binary PNG message, or a JSON error message.",
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String(addrFlag, ":8080", "address to listen on")
	cmd.Flags().Int(maxPixelsFlag, 4096*4096, "largest image a request may ask for")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString(addrFlag)
	if err != nil {
		return err
	}
	maxPixels, err := cmd.Flags().GetInt(maxPixelsFlag)
	if err != nil {
		return err
	}
	opts, workers, err := renderOptions(cmd)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true

	mux := http.NewServeMux()
	mux.Handle("/ws", renderHandler(workers, maxPixels, opts))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	render.Logger().Info("listening", "addr", addr)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// renderHandler upgrades to a websocket and renders requests until the client
// closes the connection.
func renderHandler(workers, maxPixels int, opts render.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			render.Logger().Warn("websocket accept", "err", err)
			return
		}
		defer c.CloseNow()

		ctx := r.Context()
		log := render.Logger().With("remote", r.RemoteAddr)

		for {
			var req renderRequest
			err := wsjson.Read(ctx, c, &req)
			switch {
			case websocket.CloseStatus(err) == websocket.StatusNormalClosure:
				return
			case err != nil:
				log.Warn("reading request", "err", err)
				return
			}

			img, err := serveRequest(req, workers, maxPixels, opts)
			if err != nil {
				log.Info("rejected request", "err", err)
				err = wsjson.Write(ctx, c, errorResponse{Error: err.Error()})
			} else {
				err = c.Write(ctx, websocket.MessageBinary, img)
			}
			if err != nil {
				log.Warn("writing response", "err", err)
				return
			}
		}
	}
}

// serveRequest renders req and returns it encoded as a PNG.
func serveRequest(req renderRequest, workers, maxPixels int, opts render.Options) ([]byte, error) {
	b, rect, err := parseRegion(req.Bounds, req.UpperLeft, req.LowerRight)
	if err != nil {
		return nil, err
	}
	if b.Len() > maxPixels {
		return nil, fmt.Errorf("%w: %s exceeds %d pixels", errTooLarge, b, maxPixels)
	}

	pixels, err := render.Image(b, rect, workers, opts)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	err = imagefile.Encode(buf, pixels, b.Width, b.Height, imagefile.PNG)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
